package source

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source fetches a named resource, such as "Senate114Metadata.json".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	// String describes where resources come from, for display and logging.
	String() string
}

// Options holds backend-specific settings used by Open.
type Options struct {
	S3  S3Config
	SSH *SSHConfig
}

// Open returns a Source for uri. Plain paths and file:// URIs read from a
// local directory; http(s)://, s3:// and ssh:// select the remote backends.
func Open(ctx context.Context, uri string, opts Options) (Source, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty source")
	}
	if !strings.Contains(uri, "://") {
		return NewDir(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing source %q: %w", uri, err)
	}

	switch u.Scheme {
	case "file":
		return NewDir(filepath.FromSlash(u.Path)), nil
	case "http", "https":
		return NewHTTP(uri, nil), nil
	case "s3":
		cfg := opts.S3
		cfg.Bucket = u.Host
		cfg.Prefix = strings.TrimPrefix(u.Path, "/")
		return NewS3(ctx, cfg)
	case "ssh":
		if opts.SSH == nil {
			return nil, fmt.Errorf("source %q requires an [ssh] config section", uri)
		}
		cfg := *opts.SSH
		cfg.Host = u.Hostname()
		if p := u.Port(); p != "" {
			var port int
			if _, err := fmt.Sscanf(p, "%d", &port); err != nil {
				return nil, fmt.Errorf("invalid ssh port %q: %w", p, err)
			}
			cfg.Port = port
		}
		if u.User != nil && u.User.Username() != "" {
			cfg.Username = u.User.Username()
		}
		cfg.Dir = u.Path
		return NewSSH(cfg)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}
