// Package store persists portal records keyed by their derived identity.
package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"portal-import/internal/importer/model"
)

// Store is the document collection the importer writes to.
type Store interface {
	// Upsert inserts rec or overwrites the fields it carries, keyed by rec.ID.
	Upsert(ctx context.Context, rec model.Portal) error
	// DeleteAll empties the collection and returns how many records it removed.
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

type Options struct {
	Database   string // mongo database; ignored by the other backends
	Collection string // collection, table or redis hash name
}

// Open connects to the backend selected by the URI scheme and verifies the
// connection. Any failure here is fatal for an import run.
func Open(ctx context.Context, uri string, opts Options) (Store, error) {
	if opts.Database == "" {
		opts.Database = "portalDB"
	}
	if opts.Collection == "" {
		opts.Collection = "portals"
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("store uri: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return openMongo(ctx, uri, opts)
	case "postgres", "postgresql":
		return openPostgres(ctx, uri, opts)
	case "redis", "rediss":
		return openRedis(ctx, uri, opts)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store uri: unsupported scheme %q", u.Scheme)
	}
}
