package service

import (
	"context"
	"time"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		AddTransaction(tx model.Transaction) error
		PendingCount() int
		Save(ctx context.Context) error
	}
	BlockProposer interface {
		CreateBlock(ctx context.Context, secret string) (model.Block, error)
	}
	ContractExecutor interface {
		ExecuteTransaction(ctx context.Context, tx model.Transaction, additional map[string]any) []contract.ExecutionResult
	}
	// SupplierLookup supplies the AdditionalData a transaction's contracts need.
	SupplierLookup interface {
		AdditionalData(ctx context.Context, tx model.Transaction) (map[string]any, error)
	}
	EventSink interface {
		Publish(ctx context.Context, block model.Block, tx model.Transaction, result contract.ExecutionResult) error
	}
	BlockArchiver interface {
		Archive(ctx context.Context, block model.Block) error
	}
	// DispatchCursor persists the index of the last block whose transactions reached the contracts.
	DispatchCursor interface {
		Dispatched(ctx context.Context) (int64, error)
		MarkDispatched(ctx context.Context, index int64) error
	}
	BlockProducerMetrics interface {
		ObserveProduce(err error, started time.Time)
		ObserveEvent(name string)
	}
	InboxMetrics interface {
		ObserveFile(outcome string)
	}
)
