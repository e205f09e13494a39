package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract/builtin"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/ledger"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/metrics"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/service"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/storage/snapshot"
)

type config struct {
	SnapshotPath     string `long:"snapshot-path" env:"LEDGER_SNAPSHOT_PATH" description:"ledger snapshot file" default:"data/blockchain.json"`
	UnsafeNoSigCheck bool   `long:"unsafe-disable-signature-enforcement" description:"skip signature checks"`
	Replay           bool   `long:"replay-contracts" description:"re-execute every confirmed transaction and report contract state"`
	SuppliersPath    string `long:"suppliers-path" env:"LEDGER_SUPPLIERS_PATH" description:"supplier records used during replay" default:"data/suppliers.json"`

	DeliveryGracePeriod   time.Duration `long:"delivery-grace-period" env:"LEDGER_DELIVERY_GRACE_PERIOD" description:"tolerance past the expected delivery date" default:"0s"`
	PaymentThresholdMinor int64         `long:"payment-threshold" env:"LEDGER_PAYMENT_THRESHOLD" description:"minimum payment in minor currency units" default:"0"`
}

type report struct {
	Valid        bool                      `json:"valid"`
	Reason       string                    `json:"reason,omitempty"`
	Height       int64                     `json:"height"`
	Blocks       int                       `json:"blocks"`
	Transactions int                       `json:"transactions"`
	Pending      int                       `json:"pending"`
	Contracts    map[string]map[string]any `json:"contracts,omitempty"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	valid, err := run(ctx, cfg, os.Stdout, logger)
	if err != nil {
		logger.Fatal("ledger verify failed", zap.Error(err))
	}
	if !valid {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, out io.Writer, logger *zap.Logger) (bool, error) {
	store, err := snapshot.NewFileStore(cfg.SnapshotPath, 0, logger, metrics.NewSnapshotStore())
	if err != nil {
		return false, err
	}
	ledgerCfg := ledger.DefaultConfig()
	ledgerCfg.EnforceSignatures = !cfg.UnsafeNoSigCheck
	chain, err := ledger.New(ledgerCfg, ledger.WithLogger(logger), ledger.WithStore(store))
	if err != nil {
		return false, err
	}

	rep := report{Valid: true}
	loaded, err := chain.Load(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return false, err
	case err != nil:
		rep.Valid = false
		rep.Reason = err.Error()
	case !loaded:
		return false, fmt.Errorf("no snapshot at %s", store.Path())
	}

	blocks := chain.Chain()
	rep.Height = chain.Height()
	rep.Blocks = len(blocks)
	rep.Pending = chain.PendingCount()
	for _, b := range blocks {
		rep.Transactions += len(b.Transactions)
	}

	if rep.Valid && cfg.Replay {
		suppliers, err := service.LoadSupplierFile(cfg.SuppliersPath)
		if err != nil {
			return false, fmt.Errorf("load suppliers: %w", err)
		}
		states, err := replay(ctx, blocks, suppliers, builtin.Config{
			DeliveryGracePeriod:   cfg.DeliveryGracePeriod,
			PaymentThresholdMinor: cfg.PaymentThresholdMinor,
		}, logger)
		if err != nil {
			return false, err
		}
		rep.Contracts = states
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return false, fmt.Errorf("write report: %w", err)
	}
	return rep.Valid, nil
}
