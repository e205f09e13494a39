package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/crypto"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type config struct {
	InboxDir   string `long:"inbox-dir" env:"LEDGER_INBOX_DIR" description:"node spool directory" default:"data/inbox"`
	PrivateKey string `long:"private-key" env:"LEDGER_TX_PRIVATE_KEY" description:"sender private key (base64 PKCS#8)"`
	Type       string `long:"type" description:"transaction type, e.g. ShipmentCreated"`
	Payload    string `long:"payload" description:"JSON payload, or @path to read it from a file"`
	Keygen     bool   `long:"keygen" description:"print a new sender key pair and exit"`
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("ledger tx failed", zap.Error(err))
	}
}

func run(cfg config, logger *zap.Logger) error {
	if cfg.Keygen {
		pub, priv, err := crypto.GenerateKeyPair()
		if err != nil {
			return err
		}
		fmt.Println(pub)
		fmt.Println(priv)
		return nil
	}

	tx, err := buildTransaction(cfg, time.Now().UTC())
	if err != nil {
		return err
	}
	path, err := spool(cfg.InboxDir, tx)
	if err != nil {
		return err
	}
	logger.Info("transaction queued",
		zap.String("id", tx.ID),
		zap.Stringer("type", tx.Type),
		zap.String("sender", crypto.Fingerprint(tx.SenderPublicKey)),
		zap.String("file", path),
	)
	return nil
}

func buildTransaction(cfg config, now time.Time) (model.Transaction, error) {
	if cfg.PrivateKey == "" {
		return model.Transaction{}, errors.New("private key is required")
	}
	txType, err := model.ParseTransactionType(cfg.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	payload, err := readPayload(cfg.Payload)
	if err != nil {
		return model.Transaction{}, err
	}
	pub, err := crypto.PublicKeyFromPrivate(cfg.PrivateKey)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.NewTransaction(txType, pub, payload, now).Sign(cfg.PrivateKey)
}

func readPayload(arg string) (string, error) {
	if path, ok := strings.CutPrefix(arg, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read payload: %w", err)
		}
		arg = string(data)
	}
	if arg != "" && !json.Valid([]byte(arg)) {
		return "", fmt.Errorf("%w: payload is not valid JSON", model.ErrValidation)
	}
	return arg, nil
}

// spool writes tx atomically so the node never picks up a partial file.
func spool(dir string, tx model.Transaction) (string, error) {
	data, err := json.Marshal(tx)
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	name := fmt.Sprintf("%s-%s.json", tx.Timestamp.Format("20060102T150405.000000000"), tx.ID)
	path := filepath.Join(dir, name)
	if err := renameio.WriteFile(path, data, 0o640); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
