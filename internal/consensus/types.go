package consensus

import (
	"context"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		CreateBlock(proposerPublicKey string) (model.Block, error)
		AddBlock(block model.Block) error
		Chain() []model.Block
	}
	ValidatorDirectory interface {
		List(ctx context.Context) []model.Validator
		ActiveValidators(ctx context.Context) ([]model.Validator, error)
		UpdateStatistics(ctx context.Context, id string, at time.Time) error
		ApplyStatistics(ctx context.Context, stats map[string]model.ValidatorStats) error
	}
	// KeyProvider yields the decrypted private key of the selected proposer.
	KeyProvider interface {
		PrivateKey(ctx context.Context, v model.Validator, secret string) (string, error)
	}
	Metrics interface {
		ObserveCreateBlock(validatorID string, err error, started time.Time)
		SetDeferredStatistics(n int)
	}
)
