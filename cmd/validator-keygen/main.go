package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/validator"
)

type config struct {
	ValidatorsPath string `long:"validators-path" env:"LEDGER_VALIDATORS_PATH" description:"validators file" default:"data/validators.json"`
	Secret         string `long:"validator-secret" env:"LEDGER_VALIDATOR_SECRET" description:"secret protecting validator private keys" required:"true"`
	Name           string `long:"name" description:"validator display name" required:"true"`
	Priority       int    `long:"priority" description:"proposer priority, lower goes first" default:"1"`
	Inactive       bool   `long:"inactive" description:"register the validator deactivated"`
	ExportPrivate  bool   `long:"export-private-key" description:"print the unencrypted private key once"`
}

func main() {
	cfg := config{}

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

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Fatal("validator keygen failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	if cfg.Priority < 0 {
		return fmt.Errorf("priority must be non-negative, got %d", cfg.Priority)
	}
	dir, err := validator.OpenDirectory(cfg.ValidatorsPath, logger)
	if err != nil {
		return err
	}

	v, privateKey, err := validator.Generate(cfg.Name, cfg.Priority, cfg.Secret, time.Now())
	if err != nil {
		return err
	}
	v.IsActive = !cfg.Inactive
	if err := dir.Register(ctx, v); err != nil {
		return err
	}

	logger.Info("validator registered",
		zap.String("id", v.ID),
		zap.String("name", v.Name),
		zap.Int("priority", v.Priority),
		zap.Bool("active", v.IsActive),
		zap.String("fingerprint", crypto.Fingerprint(v.PublicKey)),
	)
	fmt.Println(v.PublicKey)
	if cfg.ExportPrivate {
		fmt.Println(privateKey)
	}
	return nil
}
