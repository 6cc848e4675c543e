package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTP fetches resources relative to a base URL.
type HTTP struct {
	base   string
	client *http.Client
}

// NewHTTP creates an HTTP source. A nil client uses http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{base: strings.TrimSuffix(base, "/"), client: client}
}

// Fetch GETs base/path. Any non-2xx status is an error.
func (h *HTTP) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := h.base + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func (h *HTTP) String() string {
	return h.base
}
