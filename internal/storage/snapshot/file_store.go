// Package snapshot persists ledger snapshots as JSON files with rotating backups.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// ErrNotFound is returned by Load when no snapshot has been written. It is always joined
// with fs.ErrNotExist.
var ErrNotFound = errors.New("snapshot not found")

const (
	backupSuffix     = ".bak"
	backupTimeLayout = "20060102-150405"
	filePerm         = 0o600
	dirPerm          = 0o750
)

// FileStore writes snapshots with write-then-rename so a crash never leaves a torn file.
// Before each replacement the previous snapshot is copied to
// <path>.<yyyyMMdd-HHmmss>.bak and only the newest keepBackups copies are retained.
// Two saves within the same second share a backup name; the later copy wins.
type FileStore struct {
	path        string
	keepBackups int
	logger      *zap.Logger
	metrics     Metrics
	now         func() time.Time
}

// NewFileStore creates a store for the snapshot at path.
func NewFileStore(path string, keepBackups int, logger *zap.Logger, metrics Metrics) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("snapshot path is required")
	}
	if metrics == nil {
		return nil, errors.New("snapshot store metrics is required")
	}
	if keepBackups < 0 {
		keepBackups = 0
	}
	return &FileStore{
		path:        filepath.Clean(path),
		keepBackups: keepBackups,
		logger:      logger.Named("snapshotStore").With(zap.String("path", path)),
		metrics:     metrics,
		now:         time.Now,
	}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Save atomically replaces the snapshot. If ctx is canceled before the rename, the
// pending file is discarded and the previous snapshot stays intact.
func (s *FileStore) Save(ctx context.Context, snap model.Snapshot) error {
	started := time.Now()
	size, err := s.save(ctx, snap)
	s.metrics.ObserveSave(err, size, started)
	return err
}

func (s *FileStore) save(ctx context.Context, snap model.Snapshot) (int, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("%w: encode snapshot: %w", model.ErrPersistence, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return 0, fmt.Errorf("%w: create snapshot dir: %w", model.ErrPersistence, err)
	}

	pf, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(filePerm))
	if err != nil {
		return 0, fmt.Errorf("%w: create pending snapshot: %w", model.ErrPersistence, err)
	}
	defer func() {
		if cleanupErr := pf.Cleanup(); cleanupErr != nil {
			s.logger.Warn("pending snapshot cleanup failed", zap.Error(cleanupErr))
		}
	}()

	if _, err := pf.Write(data); err != nil {
		return 0, fmt.Errorf("%w: write pending snapshot: %w", model.ErrPersistence, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	backup, err := s.backupCurrent()
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("%w: replace snapshot: %w", model.ErrPersistence, err)
	}

	if err := s.prune(); err != nil {
		s.logger.Warn("backup pruning failed", zap.Error(err))
	}
	s.logger.Debug("snapshot written",
		zap.Int("bytes", len(data)),
		zap.Int("blocks", len(snap.Chain)),
		zap.String("backup", backup),
	)
	return len(data), nil
}

// Load reads and decodes the snapshot. A missing file yields ErrNotFound; a file that
// cannot be decoded yields model.ErrConsistency.
func (s *FileStore) Load(ctx context.Context) (model.Snapshot, error) {
	started := time.Now()
	snap, err := s.load(ctx)
	s.metrics.ObserveLoad(err, started)
	return snap, err
}

func (s *FileStore) load(ctx context.Context) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Snapshot{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: read snapshot: %w", model.ErrPersistence, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: decode snapshot: %w", model.ErrConsistency, err)
	}
	return snap, nil
}

// Backups lists backup files, newest first.
func (s *FileStore) Backups() ([]string, error) {
	dir, base := filepath.Split(s.path)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: list backups: %w", model.ErrPersistence, err)
	}

	prefix := base + "."
	var backups []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), backupSuffix)
		if _, err := time.Parse(backupTimeLayout, stamp); err != nil {
			continue
		}
		backups = append(backups, filepath.Join(dir, name))
	}
	// The timestamp layout sorts lexicographically.
	slices.Sort(backups)
	slices.Reverse(backups)
	return backups, nil
}

func (s *FileStore) backupCurrent() (string, error) {
	if s.keepBackups == 0 {
		return "", nil
	}
	current, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: read current snapshot: %w", model.ErrPersistence, err)
	}
	name := fmt.Sprintf("%s.%s%s", s.path, s.now().UTC().Format(backupTimeLayout), backupSuffix)
	if err := renameio.WriteFile(name, current, filePerm); err != nil {
		return "", fmt.Errorf("%w: write backup: %w", model.ErrPersistence, err)
	}
	return name, nil
}

func (s *FileStore) prune() error {
	backups, err := s.Backups()
	if err != nil {
		return err
	}
	if len(backups) <= s.keepBackups {
		return nil
	}
	var errs []error
	for _, stale := range backups[s.keepBackups:] {
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
