package source

import "context"

// MockSource is a Source whose behaviour is supplied by FetchFunc.
type MockSource struct {
	FetchFunc func(ctx context.Context, path string) ([]byte, error)
	Name      string
}

// Fetch calls FetchFunc, or returns nil data if it is unset.
func (m *MockSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	if m.FetchFunc == nil {
		return nil, nil
	}
	return m.FetchFunc(ctx, path)
}

func (m *MockSource) String() string {
	if m.Name == "" {
		return "mock"
	}
	return m.Name
}
