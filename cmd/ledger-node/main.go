package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/consensus"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract/builtin"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/ledger"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/metrics"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/service"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/storage/snapshot"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/validator"
)

type config struct {
	SnapshotPath    string `long:"snapshot-path" env:"LEDGER_SNAPSHOT_PATH" description:"ledger snapshot file" default:"data/blockchain.json"`
	KeepBackups     int    `long:"keep-backups" env:"LEDGER_KEEP_BACKUPS" description:"number of snapshot backups to retain" default:"5"`
	CursorPath      string `long:"dispatch-cursor-path" env:"LEDGER_DISPATCH_CURSOR_PATH" description:"index of the last block dispatched to contracts" default:"data/dispatched.json"`
	ValidatorsPath  string `long:"validators-path" env:"LEDGER_VALIDATORS_PATH" description:"validators file" default:"data/validators.json"`
	ValidatorSecret string `long:"validator-secret" env:"LEDGER_VALIDATOR_SECRET" description:"secret protecting validator private keys" required:"true"`
	InboxDir        string `long:"inbox-dir" env:"LEDGER_INBOX_DIR" description:"spool directory for signed transactions" default:"data/inbox"`
	SuppliersPath   string `long:"suppliers-path" env:"LEDGER_SUPPLIERS_PATH" description:"supplier records by shipment id" default:"data/suppliers.json"`
	EventsPath      string `long:"events-path" env:"LEDGER_EVENTS_PATH" description:"append contract events as JSON lines to this file"`

	ProduceInterval  time.Duration `long:"produce-interval" env:"LEDGER_PRODUCE_INTERVAL" description:"block production interval" default:"5s"`
	RetryInterval    time.Duration `long:"retry-interval" env:"LEDGER_RETRY_INTERVAL" description:"back-off after a failed production round" default:"2s"`
	UnsafeNoSigCheck bool          `long:"unsafe-disable-signature-enforcement" env:"LEDGER_UNSAFE_DISABLE_SIGNATURE_ENFORCEMENT" description:"accept unsigned transactions and blocks"`

	DeliveryGracePeriod   time.Duration `long:"delivery-grace-period" env:"LEDGER_DELIVERY_GRACE_PERIOD" description:"tolerance past the expected delivery date" default:"0s"`
	PaymentThresholdMinor int64         `long:"payment-threshold" env:"LEDGER_PAYMENT_THRESHOLD" description:"minimum payment in minor currency units" default:"0"`

	Archive archiveConfig `group:"archive" namespace:"archive" env-namespace:"LEDGER_ARCHIVE"`

	MetricsAddr string `long:"metrics-addr" env:"LEDGER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("ledger node failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	store, err := snapshot.NewFileStore(cfg.SnapshotPath, cfg.KeepBackups, logger, metrics.NewSnapshotStore())
	if err != nil {
		return fmt.Errorf("init snapshot store: %w", err)
	}

	ledgerCfg := ledger.DefaultConfig()
	ledgerCfg.EnforceSignatures = !cfg.UnsafeNoSigCheck
	chain, err := ledger.New(ledgerCfg,
		ledger.WithLogger(logger),
		ledger.WithMetrics(metrics.NewLedger()),
		ledger.WithStore(store),
	)
	if err != nil {
		return fmt.Errorf("init ledger: %w", err)
	}
	if _, err := chain.Load(ctx); err != nil {
		// A rejected snapshot leaves the ledger at genesis; the node keeps running on it.
		logger.Error("snapshot not loaded", zap.Error(err))
	}

	validators, err := validator.OpenDirectory(cfg.ValidatorsPath, logger)
	if err != nil {
		return fmt.Errorf("open validators: %w", err)
	}

	poa, err := consensus.NewEngine(chain, validators, consensus.DecryptingKeyProvider{}, metrics.NewConsensus(), logger)
	if err != nil {
		return err
	}
	if err := poa.ReconcileStatistics(ctx); err != nil {
		return fmt.Errorf("reconcile validator statistics: %w", err)
	}

	contracts, err := contract.NewEngine(metrics.NewContractEngine(), logger)
	if err != nil {
		return err
	}
	if err := builtin.DeployAll(contracts, builtin.Config{
		DeliveryGracePeriod:   cfg.DeliveryGracePeriod,
		PaymentThresholdMinor: cfg.PaymentThresholdMinor,
	}); err != nil {
		return err
	}

	suppliers, err := service.LoadSupplierFile(cfg.SuppliersPath)
	if err != nil {
		return fmt.Errorf("load suppliers: %w", err)
	}

	events := service.EventSinks{service.NewLogEventSink(logger)}
	if cfg.EventsPath != "" {
		f, err := os.OpenFile(cfg.EventsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err != nil {
			return fmt.Errorf("open events file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		events = append(events, service.NewJSONLinesEventSink(f))
	}

	arch, err := openArchive(ctx, cfg.Archive, chain.Chain(), logger)
	if err != nil {
		return fmt.Errorf("init archive: %w", err)
	}
	defer arch.close()

	cursor, err := service.NewFileDispatchCursor(cfg.CursorPath)
	if err != nil {
		return err
	}

	wake := make(chan struct{}, 1)

	producer, err := service.NewBlockProducerService(
		chain,
		poa,
		contracts,
		suppliers,
		events,
		arch.archiver(),
		cursor,
		metrics.NewBlockProducer(),
		service.ProducerConfig{
			Secret:        cfg.ValidatorSecret,
			Interval:      cfg.ProduceInterval,
			RetryInterval: cfg.RetryInterval,
		},
		logger,
		wake,
	)
	if err != nil {
		return err
	}

	// Contracts start empty; rebuild them from the loaded chain before new blocks arrive.
	if err := producer.Recover(ctx, chain.Chain()); err != nil {
		return fmt.Errorf("recover contract state: %w", err)
	}

	inbox, err := service.NewInboxService(cfg.InboxDir, chain, metrics.NewInbox(), logger, wake)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return producer.Run(gctx) })
	g.Go(func() error { return inbox.Run(gctx) })
	err = g.Wait()

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if saveErr := chain.Save(saveCtx); saveErr != nil {
		logger.Error("final snapshot not saved", zap.Error(saveErr))
	}

	if errors.Is(err, context.Canceled) {
		logger.Info("ledger node stopped", zap.Int64("height", chain.Height()))
		return nil
	}
	return err
}
