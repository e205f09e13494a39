package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

type dispatchCursorFile struct {
	Dispatched int64 `json:"dispatchedIndex"`
}

// FileDispatchCursor keeps the dispatch cursor in a small JSON file replaced atomically.
// A missing file means only the genesis block has been dispatched.
type FileDispatchCursor struct {
	path string
}

func NewFileDispatchCursor(path string) (*FileDispatchCursor, error) {
	if path == "" {
		return nil, errors.New("dispatch cursor path is required")
	}
	return &FileDispatchCursor{path: filepath.Clean(path)}, nil
}

func (c *FileDispatchCursor) Dispatched(_ context.Context) (int64, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read dispatch cursor: %w", err)
	}
	var f dispatchCursorFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("decode dispatch cursor %s: %w", c.path, err)
	}
	return f.Dispatched, nil
}

func (c *FileDispatchCursor) MarkDispatched(_ context.Context, index int64) error {
	data, err := json.Marshal(dispatchCursorFile{Dispatched: index})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o750); err != nil {
		return fmt.Errorf("create dispatch cursor directory: %w", err)
	}
	if err := renameio.WriteFile(c.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write dispatch cursor: %w", err)
	}
	return nil
}
