package source_test

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deevus/congress-tui/internal/source"
)

func TestDir_Fetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), []byte(`{"members":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	src := source.NewDir(dir)
	b, err := src.Fetch(context.Background(), "meta.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"members":[]}` {
		t.Errorf("unexpected content %q", b)
	}
	if src.String() != dir {
		t.Errorf("expected String()=%s, got %s", dir, src.String())
	}
}

func TestDir_Fetch_Missing(t *testing.T) {
	src := source.NewDir(t.TempDir())
	_, err := src.Fetch(context.Background(), "nope.json")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestDir_Fetch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := source.NewDir(t.TempDir()).Fetch(ctx, "meta.json")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHTTP_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/records.json":
			w.Write([]byte(`{"votes":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := source.NewHTTP(srv.URL+"/data/", srv.Client())
	b, err := src.Fetch(context.Background(), "records.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"votes":[]}` {
		t.Errorf("unexpected content %q", b)
	}
}

func TestHTTP_Fetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	src := source.NewHTTP(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background(), "missing.json")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestOpen_Dir(t *testing.T) {
	src, err := source.Open(context.Background(), "./data", source.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*source.Dir); !ok {
		t.Errorf("expected *source.Dir, got %T", src)
	}
}

func TestOpen_FileURI(t *testing.T) {
	src, err := source.Open(context.Background(), "file:///srv/congress", source.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*source.Dir); !ok {
		t.Errorf("expected *source.Dir, got %T", src)
	}
}

func TestOpen_HTTP(t *testing.T) {
	src, err := source.Open(context.Background(), "https://example.com/data", source.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*source.HTTP); !ok {
		t.Errorf("expected *source.HTTP, got %T", src)
	}
}

func TestOpen_SSH_RequiresConfig(t *testing.T) {
	_, err := source.Open(context.Background(), "ssh://host/data", source.Options{})
	if err == nil {
		t.Fatal("expected error without ssh config")
	}
}

func TestOpen_Errors(t *testing.T) {
	for _, uri := range []string{"", "ftp://host/data"} {
		if _, err := source.Open(context.Background(), uri, source.Options{}); err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}

func TestMockSource(t *testing.T) {
	m := &source.MockSource{}
	b, err := m.Fetch(context.Background(), "x")
	if err != nil || b != nil {
		t.Errorf("expected nil, nil from unset mock, got %q, %v", b, err)
	}
	if m.String() != "mock" {
		t.Errorf("expected default name mock, got %s", m.String())
	}
}
