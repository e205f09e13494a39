package ledger

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/clock"
)

const defaultVerifyCacheSize = 8192

// Config controls signature enforcement and verification resources.
type Config struct {
	// EnforceSignatures rejects unsigned or badly signed transactions and blocks.
	// Turning it off is meant for fixtures and replays only.
	EnforceSignatures bool
	// VerifyCacheSize bounds the signature verification cache. Zero disables caching.
	VerifyCacheSize int
	// VerifyWorkers bounds concurrent signature checks during chain validation.
	VerifyWorkers int
}

// DefaultConfig returns a Config with enforcement on.
func DefaultConfig() Config {
	return Config{
		EnforceSignatures: true,
		VerifyCacheSize:   defaultVerifyCacheSize,
		VerifyWorkers:     runtime.GOMAXPROCS(0),
	}
}

// Option customizes a Ledger.
type Option func(*Ledger)

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

func WithClock(c clock.Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

func WithMetrics(m Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithStore enables Save and Load.
func WithStore(store SnapshotStore) Option {
	return func(l *Ledger) { l.store = store }
}

type nopMetrics struct{}

func (nopMetrics) ObserveAddTransaction(error, time.Time) {}
func (nopMetrics) ObserveAddBlock(error, int, time.Time)  {}
func (nopMetrics) ObserveValidateChain(error, time.Time)  {}
func (nopMetrics) SetState(int64, int)                    {}
func (nopMetrics) ObserveVerifyCache(bool)                {}
