package contract

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

type instance struct {
	mu       sync.Mutex
	contract Contract
}

// Engine is the contract arena. The engine lock guards only the registry; execution holds
// the instance lock.
type Engine struct {
	metrics Metrics
	logger  *zap.Logger

	mu    sync.RWMutex
	arena map[string]*instance
	order []string
}

func NewEngine(metrics Metrics, logger *zap.Logger) (*Engine, error) {
	if metrics == nil {
		return nil, errors.New("contract engine metrics is required")
	}
	return &Engine{
		metrics: metrics,
		logger:  logger.Named("contract_engine"),
		arena:   make(map[string]*instance),
	}, nil
}

// Deploy registers c under its id.
func (e *Engine) Deploy(c Contract) error {
	if c == nil || c.ID() == "" {
		return fmt.Errorf("%w: contract without id", model.ErrValidation)
	}
	id := c.ID()

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.arena[id]; ok {
		return fmt.Errorf("%w: %s", ErrContractExists, id)
	}
	e.arena[id] = &instance{contract: c}
	e.order = append(e.order, id)
	e.logger.Info("contract deployed", zap.String("contract_id", id), zap.String("name", c.Name()))
	return nil
}

// Undeploy removes a contract. An execution already holding the instance finishes normally.
func (e *Engine) Undeploy(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.arena[id]; !ok {
		return fmt.Errorf("%w: %s", ErrContractNotFound, id)
	}
	delete(e.arena, id)
	for i, deployed := range e.order {
		if deployed == id {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
	e.logger.Info("contract undeployed", zap.String("contract_id", id))
	return nil
}

// Execute runs one contract. The returned error is non-nil only for an unknown id or a
// cancelled context; contract failures are reported in the result.
func (e *Engine) Execute(ctx context.Context, id string, execCtx ExecutionContext) (ExecutionResult, error) {
	inst, err := e.lookup(id)
	if err != nil {
		return ExecutionResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ExecutionResult{}, err
	}
	return e.run(ctx, id, inst, execCtx), nil
}

// State returns a snapshot of the contract's state.
func (e *Engine) State(id string) (map[string]any, error) {
	inst, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return inst.contract.State(), nil
}

// Contracts lists deployed contracts in deployment order.
func (e *Engine) Contracts() []Info {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Info, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, Info{ID: id, Name: e.arena[id].contract.Name()})
	}
	return out
}

// ExecuteTransaction runs every contract that accepts tx, in deployment order, handing each
// step the previous step's result. The pipeline stops after the first unsuccessful step.
//
// The pipeline is all-or-nothing for contracts implementing Checkpointer: when a step fails or
// ctx is cancelled midway, each of them is restored to its state before tx and its successful
// result is returned as rolled back, without events. Instance locks are held until the pipeline
// ends and are taken in deployment order, which never changes for two deployed instances.
func (e *Engine) ExecuteTransaction(ctx context.Context, tx model.Transaction, additional map[string]any) []ExecutionResult {
	e.mu.RLock()
	steps := make([]step, 0, len(e.order))
	for _, id := range e.order {
		steps = append(steps, step{id: id, inst: e.arena[id]})
	}
	e.mu.RUnlock()

	var (
		results []ExecutionResult
		held    []step
		prior   *ExecutionResult
		failure string
	)
	defer func() {
		for _, s := range held {
			s.inst.mu.Unlock()
		}
	}()

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			failure = err.Error()
			break
		}
		s.inst.mu.Lock()
		if !e.acceptsLocked(s.id, s.inst, tx) {
			s.inst.mu.Unlock()
			continue
		}
		cp, restorable, res := e.checkpointLocked(s.id, s.inst, tx)
		s.checkpoint, s.restorable = cp, restorable
		held = append(held, s)
		if !res.Fault {
			res = e.runLocked(ctx, s.id, s.inst, ExecutionContext{
				Transaction:    tx,
				PriorResult:    prior,
				AdditionalData: additional,
			})
		}
		res.ContractID = s.id
		results = append(results, res)
		if !res.Success {
			failure = fmt.Sprintf("%s: %s", s.id, res.Message)
			e.logger.Debug("contract pipeline stopped",
				zap.String("contract_id", s.id),
				zap.String("tx_id", tx.ID),
				zap.String("message", res.Message),
			)
			break
		}
		p := cloneResult(res)
		prior = &p
	}

	if failure != "" {
		e.rollbackLocked(tx, held, results, failure)
	}
	return results
}

type step struct {
	id         string
	inst       *instance
	checkpoint any
	restorable bool
}

// checkpointLocked saves the state of a Checkpointer. A panicking Checkpoint is reported as a
// fault result so the step never runs without a way back.
func (e *Engine) checkpointLocked(id string, inst *instance, tx model.Transaction) (cp any, ok bool, res ExecutionResult) {
	c, ok := inst.contract.(Checkpointer)
	if !ok {
		return nil, false, ExecutionResult{}
	}
	defer func() {
		if r := recover(); r != nil {
			cp, ok = nil, false
			res = e.fault(id, tx, fmt.Errorf("%w: checkpoint panic: %v", model.ErrContractFault, r))
			e.metrics.ObserveExecute(id, res.Outcome(), time.Now())
		}
	}()
	return c.Checkpoint(), true, ExecutionResult{}
}

// rollbackLocked restores every checkpointed step of a failed pipeline, the failed one included,
// and rewrites the earlier successful results. held and results are parallel.
func (e *Engine) rollbackLocked(tx model.Transaction, held []step, results []ExecutionResult, failure string) {
	for i := len(held) - 1; i >= 0; i-- {
		s := held[i]
		if !s.restorable {
			continue
		}
		if err := e.restoreLocked(s, tx); err != nil {
			e.logger.Error("contract rollback failed",
				zap.String("contract_id", s.id),
				zap.String("tx_id", tx.ID),
				zap.Error(err),
			)
			continue
		}
		if !results[i].Success {
			continue
		}
		results[i].Success = false
		results[i].RolledBack = true
		results[i].Message = fmt.Sprintf("%s; rolled back after %s", results[i].Message, failure)
		results[i].Events = nil
		results[i].State = s.inst.contract.State()
	}
}

func (e *Engine) restoreLocked(s step, tx model.Transaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: restore panic: %v", model.ErrContractFault, r)
		}
	}()
	s.inst.contract.(Checkpointer).Restore(s.checkpoint)
	e.logger.Debug("contract rolled back", zap.String("contract_id", s.id), zap.String("tx_id", tx.ID))
	return nil
}

func (e *Engine) lookup(id string) (*instance, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	inst, ok := e.arena[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContractNotFound, id)
	}
	return inst, nil
}

func (e *Engine) acceptsLocked(id string, inst *instance, tx model.Transaction) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("contract CanExecute panicked", zap.String("contract_id", id), zap.Any("panic", r))
			ok = false
		}
	}()
	return inst.contract.CanExecute(tx)
}

func (e *Engine) run(ctx context.Context, id string, inst *instance, execCtx ExecutionContext) ExecutionResult {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return e.runLocked(ctx, id, inst, execCtx)
}

func (e *Engine) runLocked(ctx context.Context, id string, inst *instance, execCtx ExecutionContext) ExecutionResult {
	started := time.Now()
	res := e.executeLocked(ctx, id, inst, execCtx)
	res.ContractID = id
	e.metrics.ObserveExecute(id, res.Outcome(), started)
	return res
}

func (e *Engine) executeLocked(ctx context.Context, id string, inst *instance, execCtx ExecutionContext) (res ExecutionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = e.fault(id, execCtx.Transaction, fmt.Errorf("%w: panic: %v", model.ErrContractFault, r))
		}
	}()

	res, err := inst.contract.Execute(ctx, execCtx)
	if err != nil {
		if !errors.Is(err, model.ErrContractFault) {
			err = fmt.Errorf("%w: %w", model.ErrContractFault, err)
		}
		return e.fault(id, execCtx.Transaction, err)
	}
	return res
}

func (e *Engine) fault(id string, tx model.Transaction, err error) ExecutionResult {
	e.logger.Warn("contract fault",
		zap.String("contract_id", id),
		zap.String("tx_id", tx.ID),
		zap.Stringer("tx_type", tx.Type),
		zap.Error(err),
	)
	return ExecutionResult{Success: false, Message: err.Error(), Fault: true}
}
