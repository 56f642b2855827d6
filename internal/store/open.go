// Package store selects a storage backend from a database URL.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justestif/wellness-journal/internal/db"
	"github.com/justestif/wellness-journal/internal/journal"
	"github.com/justestif/wellness-journal/internal/sqlite"
)

// ErrUnsupportedURL is returned for a database URL with an unknown scheme.
var ErrUnsupportedURL = errors.New("unsupported database URL")

// Backend is a Store whose schema can be brought up to date.
type Backend interface {
	journal.Store
	Migrate(ctx context.Context) error
}

// Open connects to the backend named by url. postgres:// and postgresql://
// URLs select PostgreSQL; sqlite:<path> selects an embedded SQLite file, with
// sqlite::memory: for a throwaway database.
func Open(ctx context.Context, url string) (Backend, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		pg, err := db.New(ctx, url)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case strings.HasPrefix(url, "sqlite:"):
		path := strings.TrimPrefix(strings.TrimPrefix(url, "sqlite:"), "//")
		if path == "" {
			return nil, fmt.Errorf("%w: missing sqlite path", ErrUnsupportedURL)
		}
		lite, err := sqlite.New(ctx, path)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(url))
	}
}

// redact drops credentials from url before it is logged.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
