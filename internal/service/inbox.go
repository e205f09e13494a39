package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/clock"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/metrics"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

const (
	inboxAcceptedDir = "accepted"
	inboxRejectedDir = "rejected"
)

// InboxService feeds signed transactions from a spool directory into the ledger.
// Producers drop one JSON transaction per *.json file, written atomically; files are taken
// in name order, then moved to accepted/ or, with a .reason file, to rejected/.
type InboxService struct {
	logger   *zap.Logger
	metrics  InboxMetrics
	sleep    func(context.Context, time.Duration) error
	interval time.Duration
	dir      string
	ledger   Ledger
	notify   chan<- struct{}

	// stuck maps accepted files that could be neither moved nor removed to their content
	// digest; a file with the same name and digest is never submitted again.
	stuck  map[string]string
	rename func(oldpath, newpath string) error
	remove func(name string) error
}

// NewInboxService creates the spool layout under dir. notify, if set, receives a
// non-blocking signal after transactions were accepted.
func NewInboxService(
	dir string,
	ledger Ledger,
	metrics InboxMetrics,
	logger *zap.Logger,
	notify chan<- struct{},
) (*InboxService, error) {
	if dir == "" {
		return nil, errors.New("inbox directory is required")
	}
	if ledger == nil {
		return nil, errors.New("inbox requires a ledger")
	}
	if metrics == nil {
		return nil, errors.New("inbox metrics is required")
	}
	for _, sub := range []string{inboxAcceptedDir, inboxRejectedDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o750); err != nil {
			return nil, fmt.Errorf("create inbox layout: %w", err)
		}
	}
	return &InboxService{
		logger:   logger.Named("inbox").With(zap.String("dir", dir)),
		metrics:  metrics,
		sleep:    clock.SleepWithContext,
		interval: inboxInterval,
		dir:      dir,
		ledger:   ledger,
		notify:   notify,
		stuck:    make(map[string]string),
		rename:   os.Rename,
		remove:   os.Remove,
	}, nil
}

// Run polls the spool directory until the context is canceled.
func (s *InboxService) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		more, err := s.run(ctx)
		if err != nil {
			s.logger.Warn("inbox scan failed, backing off", zap.Error(err), zap.Duration("sleep", s.interval))
		}
		if more && err == nil {
			continue
		}
		if sleepErr := s.sleep(ctx, s.interval); sleepErr != nil {
			return sleepErr
		}
	}
}

// run processes one batch and reports whether files were left over.
func (s *InboxService) run(ctx context.Context) (bool, error) {
	names, err := s.pending()
	if err != nil {
		return false, err
	}
	more := len(names) > inboxBatchLimit
	if more {
		names = names[:inboxBatchLimit]
	}

	accepted := 0
	defer func() {
		if accepted > 0 {
			s.signal()
		}
	}()
	for _, name := range names {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		outcome, err := s.ingest(name)
		s.metrics.ObserveFile(outcome)
		if err != nil {
			return false, err
		}
		if outcome == metrics.InboxAccepted {
			accepted++
		}
	}
	if accepted > 0 {
		s.logger.Debug("transactions accepted", zap.Int("count", accepted))
	}
	return more, nil
}

func (s *InboxService) pending() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ".json" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *InboxService) ingest(name string) (string, error) {
	path := filepath.Join(s.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return metrics.InboxError, fmt.Errorf("read %s: %w", name, err)
	}

	digest := crypto.HashHex(raw)
	if s.stuck[name] == digest {
		if err := s.retire(name); err == nil {
			delete(s.stuck, name)
		}
		return metrics.InboxDuplicate, nil
	}

	var tx model.Transaction
	if err := json.Unmarshal(raw, &tx); err != nil {
		return s.reject(name, fmt.Errorf("decode transaction: %w", err))
	}
	if err := s.ledger.AddTransaction(tx); err != nil {
		if errors.Is(err, model.ErrValidation) {
			return s.reject(name, err)
		}
		return metrics.InboxError, fmt.Errorf("add transaction %s: %w", tx.ID, err)
	}

	if err := s.retire(name); err != nil {
		s.logger.Error("accepted file left in inbox; later polls skip it",
			zap.String("file", name), zap.String("tx_id", tx.ID), zap.Error(err))
		s.stuck[name] = digest
	}
	return metrics.InboxAccepted, nil
}

// retire takes an accepted file out of the spool, deleting it when the move fails.
func (s *InboxService) retire(name string) error {
	path := filepath.Join(s.dir, name)
	err := s.rename(path, filepath.Join(s.dir, inboxAcceptedDir, name))
	if err == nil {
		return nil
	}
	s.logger.Warn("move accepted file failed; removing", zap.String("file", name), zap.Error(err))
	if rmErr := s.remove(path); rmErr != nil {
		return errors.Join(err, rmErr)
	}
	return nil
}

func (s *InboxService) reject(name string, reason error) (string, error) {
	s.logger.Info("transaction rejected", zap.String("file", name), zap.Error(reason))
	target := filepath.Join(s.dir, inboxRejectedDir, name)
	if err := renameio.WriteFile(target+".reason", []byte(reason.Error()+"\n"), 0o600); err != nil {
		return metrics.InboxError, fmt.Errorf("write rejection reason for %s: %w", name, err)
	}
	if err := s.rename(filepath.Join(s.dir, name), target); err != nil {
		return metrics.InboxError, fmt.Errorf("move rejected %s: %w", name, err)
	}
	return metrics.InboxRejected, nil
}

func (s *InboxService) signal() {
	if s.notify == nil {
		return
	}
	select {
	case s.notify <- struct{}{}:
	default:
	}
}
