package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type fileFormat struct {
	Validators []model.Validator `json:"validators"`
}

// LoadFile reads a validators file. A missing file yields an error wrapping fs.ErrNotExist.
func LoadFile(path string) ([]model.Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read validators file: %w", err)
		}
		return nil, fmt.Errorf("%w: read validators file: %w", model.ErrPersistence, err)
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode validators file %s: %w", model.ErrConsistency, path, err)
	}
	return f.Validators, nil
}

// SaveFile atomically replaces the validators file. The file holds encrypted private
// keys and is written owner-only.
func SaveFile(path string, validators []model.Validator) error {
	if validators == nil {
		validators = []model.Validator{}
	}
	data, err := json.MarshalIndent(fileFormat{Validators: validators}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode validators: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("%w: create validators dir: %w", model.ErrPersistence, err)
	}
	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write validators file: %w", model.ErrPersistence, err)
	}
	return nil
}
