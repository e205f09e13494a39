// Package validator keeps the set of block-producing authorities.
package validator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

const (
	lockSuffix     = ".lock"
	lockRetryDelay = 20 * time.Millisecond
)

var (
	ErrDuplicateValidator = errors.New("duplicate validator")
	ErrValidatorNotFound  = errors.New("validator not found")
)

// Directory is an in-memory validator registry. When backed by a file, every mutation
// is written to disk before it becomes visible; a failed write leaves the directory unchanged.
// Mutations hold an advisory lock on the file and reload it first, so validators another
// process (validator-keygen) registered are kept rather than overwritten.
// Validators are never removed, only deactivated.
type Directory struct {
	logger *zap.Logger
	path   string

	mu    sync.RWMutex
	byID  map[string]model.Validator
	order []string
}

// NewDirectory creates an empty, memory-only directory.
func NewDirectory(logger *zap.Logger) *Directory {
	return &Directory{
		logger: logger.Named("validators"),
		byID:   make(map[string]model.Validator),
	}
}

// OpenDirectory loads the directory from path, starting empty if the file does not exist,
// and persists later mutations back to it.
func OpenDirectory(path string, logger *zap.Logger) (*Directory, error) {
	d := NewDirectory(logger)
	d.path = path
	d.logger = d.logger.With(zap.String("path", path))

	validators, err := LoadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	for _, v := range validators {
		if err := d.insert(v); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	d.logger.Info("validator directory opened", zap.Int("validators", len(validators)))
	return d, nil
}

// Register adds a new validator. Id and public key must both be unique.
func (d *Directory) Register(ctx context.Context, v model.Validator) error {
	if v.ID == "" {
		return fmt.Errorf("%w: validator id is empty", model.ErrValidation)
	}
	if _, err := crypto.ParsePublicKey(v.PublicKey); err != nil {
		return fmt.Errorf("%w: validator %s: %w", model.ErrValidation, v.ID, err)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.withFileLocked(ctx, func() error {
		if err := d.checkUniqueLocked(v); err != nil {
			return err
		}
		next := append(d.listLocked(), v.Clone())
		if err := d.persistLocked(next); err != nil {
			return err
		}
		d.byID[v.ID] = v.Clone()
		d.order = append(d.order, v.ID)
		return nil
	})
	if err != nil {
		return err
	}

	d.logger.Info("validator registered",
		zap.String("validator_id", v.ID),
		zap.String("name", v.Name),
		zap.Int("priority", v.Priority),
		zap.Bool("active", v.IsActive),
		zap.String("key", crypto.Fingerprint(v.PublicKey)),
	)
	return nil
}

func (d *Directory) Activate(ctx context.Context, id string) error {
	return d.update(ctx, id, func(v *model.Validator) { v.IsActive = true })
}

func (d *Directory) Deactivate(ctx context.Context, id string) error {
	return d.update(ctx, id, func(v *model.Validator) { v.IsActive = false })
}

// UpdateStatistics records that validator id produced a block at the given time.
func (d *Directory) UpdateStatistics(ctx context.Context, id string, at time.Time) error {
	at = at.UTC()
	return d.update(ctx, id, func(v *model.Validator) {
		v.LastBlockCreatedAt = &at
		v.TotalBlocksCreated++
	})
}

// ApplyStatistics overwrites proposer statistics in one step. Validators missing from
// stats are reset to never having produced a block.
func (d *Directory) ApplyStatistics(ctx context.Context, stats map[string]model.ValidatorStats) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.withFileLocked(ctx, func() error {
		for id := range stats {
			if _, ok := d.byID[id]; !ok {
				return fmt.Errorf("%w: %s", ErrValidatorNotFound, id)
			}
		}
		next := d.listLocked()
		for i := range next {
			s := stats[next[i].ID]
			next[i].LastBlockCreatedAt = nil
			if s.LastBlockCreatedAt != nil {
				at := s.LastBlockCreatedAt.UTC()
				next[i].LastBlockCreatedAt = &at
			}
			next[i].TotalBlocksCreated = s.TotalBlocksCreated
		}
		if err := d.persistLocked(next); err != nil {
			return err
		}
		for _, v := range next {
			d.byID[v.ID] = v
		}
		return nil
	})
}

func (d *Directory) Get(_ context.Context, id string) (model.Validator, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.byID[id]
	if !ok {
		return model.Validator{}, fmt.Errorf("%w: %s", ErrValidatorNotFound, id)
	}
	return v.Clone(), nil
}

// List returns every validator in registration order.
func (d *Directory) List(_ context.Context) []model.Validator {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.listLocked()
}

// ActiveValidators returns the validators currently allowed to propose.
func (d *Directory) ActiveValidators(_ context.Context) ([]model.Validator, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]model.Validator, 0, len(d.order))
	for _, id := range d.order {
		if v := d.byID[id]; v.IsActive {
			out = append(out, v.Clone())
		}
	}
	return out, nil
}

// ByPublicKey finds the validator owning publicKey.
func (d *Directory) ByPublicKey(_ context.Context, publicKey string) (model.Validator, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, id := range d.order {
		if v := d.byID[id]; v.PublicKey == publicKey {
			return v.Clone(), nil
		}
	}
	return model.Validator{}, fmt.Errorf("%w: no validator with key %s", ErrValidatorNotFound, crypto.Fingerprint(publicKey))
}

func (d *Directory) update(ctx context.Context, id string, mutate func(v *model.Validator)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.withFileLocked(ctx, func() error {
		v, ok := d.byID[id]
		if !ok {
			return fmt.Errorf("%w: %s", ErrValidatorNotFound, id)
		}
		v = v.Clone()
		mutate(&v)

		next := d.listLocked()
		for i := range next {
			if next[i].ID == id {
				next[i] = v
			}
		}
		if err := d.persistLocked(next); err != nil {
			return err
		}
		d.byID[id] = v
		return nil
	})
}

// withFileLocked runs fn under the file lock after reloading the file, which picks up
// validators written by other processes. Memory-only directories run fn directly. The caller holds d.mu.
func (d *Directory) withFileLocked(ctx context.Context, fn func() error) error {
	if d.path == "" {
		return fn()
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o750); err != nil {
		return fmt.Errorf("%w: create validators dir: %w", model.ErrPersistence, err)
	}
	lock := flock.New(d.path + lockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("%w: lock validators file: %w", model.ErrPersistence, err)
	}
	if !locked {
		return fmt.Errorf("%w: validators file is locked", model.ErrPersistence)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			d.logger.Warn("unlock validators file failed", zap.Error(err))
		}
	}()

	if err := d.reloadLocked(); err != nil {
		return err
	}
	return fn()
}

// reloadLocked replaces the in-memory set with the file contents. Every write goes through
// the file, so the file is at least as new as memory.
func (d *Directory) reloadLocked() error {
	onDisk, err := LoadFile(d.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	byID := make(map[string]model.Validator, len(onDisk))
	order := make([]string, 0, len(onDisk))
	keys := make(map[string]string, len(onDisk))
	for _, v := range onDisk {
		if _, dup := byID[v.ID]; dup {
			return fmt.Errorf("%w: validators file lists %s twice", model.ErrConsistency, v.ID)
		}
		if owner, dup := keys[v.PublicKey]; dup {
			return fmt.Errorf("%w: validators %s and %s share a public key", model.ErrConsistency, owner, v.ID)
		}
		if _, known := d.byID[v.ID]; !known {
			d.logger.Info("validator adopted from file",
				zap.String("validator_id", v.ID),
				zap.Bool("active", v.IsActive),
				zap.String("key", crypto.Fingerprint(v.PublicKey)),
			)
		}
		byID[v.ID] = v.Clone()
		keys[v.PublicKey] = v.ID
		order = append(order, v.ID)
	}
	d.byID, d.order = byID, order
	return nil
}

func (d *Directory) insert(v model.Validator) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.checkUniqueLocked(v); err != nil {
		return err
	}
	d.byID[v.ID] = v.Clone()
	d.order = append(d.order, v.ID)
	return nil
}

func (d *Directory) checkUniqueLocked(v model.Validator) error {
	if _, exists := d.byID[v.ID]; exists {
		return fmt.Errorf("%w: id %s already registered", ErrDuplicateValidator, v.ID)
	}
	for _, existing := range d.byID {
		if existing.PublicKey == v.PublicKey {
			return fmt.Errorf("%w: public key already registered to %s", ErrDuplicateValidator, existing.ID)
		}
	}
	return nil
}

func (d *Directory) listLocked() []model.Validator {
	out := make([]model.Validator, 0, len(d.order)+1)
	for _, id := range d.order {
		out = append(out, d.byID[id].Clone())
	}
	return out
}

func (d *Directory) persistLocked(validators []model.Validator) error {
	if d.path == "" {
		return nil
	}
	return SaveFile(d.path, validators)
}
