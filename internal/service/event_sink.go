package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// LogEventSink writes contract events to the structured log.
type LogEventSink struct {
	logger *zap.Logger
}

func NewLogEventSink(logger *zap.Logger) *LogEventSink {
	return &LogEventSink{logger: logger.Named("events")}
}

func (s *LogEventSink) Publish(_ context.Context, block model.Block, tx model.Transaction, result contract.ExecutionResult) error {
	for _, e := range result.Events {
		s.logger.Info("contract event",
			zap.String("event", e.Name),
			zap.String("contract_id", result.ContractID),
			zap.Int64("block", block.Index),
			zap.String("tx_id", tx.ID),
			zap.Any("payload", e.Payload),
		)
	}
	return nil
}

// EventRecord is one line written by JSONLinesEventSink.
type EventRecord struct {
	Event       string         `json:"event"`
	ContractID  string         `json:"contractId"`
	BlockIndex  int64          `json:"blockIndex"`
	BlockHash   string         `json:"blockHash"`
	TxID        string         `json:"txId"`
	PublishedAt time.Time      `json:"publishedAt"`
	Payload     map[string]any `json:"payload"`
}

// JSONLinesEventSink appends one JSON object per event, for consumers such as a payment
// processor tailing the file.
type JSONLinesEventSink struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

func NewJSONLinesEventSink(w io.Writer) *JSONLinesEventSink {
	return &JSONLinesEventSink{enc: json.NewEncoder(w), now: time.Now}
}

func (s *JSONLinesEventSink) Publish(_ context.Context, block model.Block, tx model.Transaction, result contract.ExecutionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now().UTC()
	for _, e := range result.Events {
		rec := EventRecord{
			Event:       e.Name,
			ContractID:  result.ContractID,
			BlockIndex:  block.Index,
			BlockHash:   block.Hash,
			TxID:        tx.ID,
			PublishedAt: at,
			Payload:     e.Payload,
		}
		if err := s.enc.Encode(rec); err != nil {
			return fmt.Errorf("write event %s: %w", e.Name, err)
		}
	}
	return nil
}

// EventSinks publishes to every sink and joins their errors.
type EventSinks []EventSink

func (s EventSinks) Publish(ctx context.Context, block model.Block, tx model.Transaction, result contract.ExecutionResult) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Publish(ctx, block, tx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
