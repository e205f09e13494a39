package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/archive"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/archive/clickhouse"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/archive/leveldb"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/metrics"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/service"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/pkg/batcher"
)

const (
	archiveNone       = "none"
	archiveClickhouse = "clickhouse"
	archiveLevelDB    = "leveldb"
)

type archiveConfig struct {
	Backend       string `long:"backend" env:"BACKEND" description:"archive backend" choice:"none" choice:"clickhouse" choice:"leveldb" default:"none"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	LevelDBPath   string `long:"leveldb-path" env:"LEVELDB_PATH" description:"LevelDB archive directory" default:"data/archive"`
	FlushSize     int    `long:"flush-size" env:"FLUSH_SIZE" description:"blocks per archive batch" default:"100"`
}

type repository interface {
	archive.Repository
	Close() error
}

type nodeArchive struct {
	writer *archive.Writer
	repo   repository
	logger *zap.Logger
}

// openArchive starts the archive writer and queues the blocks the backend has not seen yet.
// With the "none" backend it returns an inert archive.
func openArchive(ctx context.Context, cfg archiveConfig, chain []model.Block, logger *zap.Logger) (*nodeArchive, error) {
	a := &nodeArchive{logger: logger}

	switch cfg.Backend {
	case "", archiveNone:
		return a, nil
	case archiveClickhouse:
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewArchiveRepository(metrics.ArchiveClickhouse))
		if err != nil {
			return nil, err
		}
		a.repo = repo
	case archiveLevelDB:
		repo, err := leveldb.Open(cfg.LevelDBPath, metrics.NewArchiveRepository(metrics.ArchiveLevelDB))
		if err != nil {
			return nil, err
		}
		a.repo = repo
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}

	w, err := archive.NewWriter(a.repo, logger, batcher.Config{FlushSize: cfg.FlushSize})
	if err != nil {
		_ = a.repo.Close()
		return nil, err
	}
	a.writer = w
	// The writer outlives ctx so blocks queued during shutdown still reach the backend.
	w.Start(context.WithoutCancel(ctx))

	if _, err := w.Backfill(ctx, chain); err != nil {
		a.close()
		return nil, err
	}
	logger.Info("archive enabled", zap.String("backend", cfg.Backend))
	return a, nil
}

func (a *nodeArchive) archiver() service.BlockArchiver {
	if a.writer == nil {
		return nil
	}
	return a.writer
}

func (a *nodeArchive) close() {
	if a.writer != nil {
		a.writer.Stop()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil {
			a.logger.Error("archive close failed", zap.Error(err))
		}
	}
}
