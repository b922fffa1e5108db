// Package storage persists settings and the durable key/value slots that
// hold application data.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"tempo/internal/core/model"
)

// Slots is a durable key/value store. Load returns nil data and no error for
// a key that was never written.
type Slots interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	io.Closer
}

// OpenSlots opens the slot store for backend inside dataDir.
func OpenSlots(ctx context.Context, backend model.Backend, dataDir string) (Slots, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	switch backend {
	case model.BackendFile, "":
		return NewFileSlots(dataDir), nil
	case model.BackendSQLite:
		return OpenSQLiteSlots(ctx, SQLitePath(dataDir))
	default:
		return nil, fmt.Errorf("open slots: unknown backend %q", backend)
	}
}
