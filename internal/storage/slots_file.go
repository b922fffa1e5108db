package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSlots keeps every slot in its own JSON file.
type FileSlots struct {
	dir string
}

// NewFileSlots stores slots under dir.
func NewFileSlots(dir string) *FileSlots {
	return &FileSlots{dir: dir}
}

// Path returns the file backing key.
func (slots *FileSlots) Path(key string) string {
	return filepath.Join(slots.dir, key+".json")
}

// Load implements Slots.
func (slots *FileSlots) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(slots.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %s: %w", key, err)
	}
	return data, nil
}

// Save implements Slots.
func (slots *FileSlots) Save(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(slots.dir, 0o755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}
	if err := writeFileAtomic(slots.Path(key), data, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// Close implements Slots.
func (slots *FileSlots) Close() error {
	return nil
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return fmt.Errorf("invalid slot key %q", key)
	}
	return nil
}
