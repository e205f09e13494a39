// Package contract runs smart contracts against ledger transactions.
//
// Each deployed contract lives in its own arena slot guarding its state with a private mutex,
// so executions of one contract are serialized while unrelated contracts run concurrently.
// Business rule outcomes travel as data in ExecutionResult; a contract that returns an error or
// panics is reported as a failed result and never takes the engine down. A transaction pipeline
// either changes every checkpointing contract it reaches or none of them.
package contract

import (
	"errors"
	"maps"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

var (
	ErrContractExists   = errors.New("contract already deployed")
	ErrContractNotFound = errors.New("contract not found")
)

// Execution outcomes reported to metrics.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeFault   = "fault"
	// OutcomeRolledBack marks a step that succeeded but was undone because a later step failed.
	OutcomeRolledBack = "rolled_back"
)

// Event is an intent emitted by a contract for external consumers.
type Event struct {
	Name    string         `json:"name"`
	Payload map[string]any `json:"payload"`
}

// ExecutionContext is the input of one contract execution.
type ExecutionContext struct {
	Transaction model.Transaction
	// PriorResult is the result of the previous contract in a pipeline, nil for the first step.
	PriorResult    *ExecutionResult
	AdditionalData map[string]any
}

// ExecutionResult is the outcome of one contract execution.
type ExecutionResult struct {
	ContractID string         `json:"contractId"`
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Events     []Event        `json:"events,omitempty"`
	State      map[string]any `json:"state,omitempty"`
	// Fault is set when the contract returned an error or panicked rather than rejecting by rule.
	Fault bool `json:"fault,omitempty"`
	// RolledBack is set when a later pipeline step failed and this step's changes were undone.
	RolledBack bool `json:"rolledBack,omitempty"`
}

// Outcome classifies the result for metrics.
func (r ExecutionResult) Outcome() string {
	switch {
	case r.RolledBack:
		return OutcomeRolledBack
	case r.Fault:
		return OutcomeFault
	case r.Success:
		return OutcomeSuccess
	default:
		return OutcomeFailure
	}
}

// HasEvent reports whether the result carries an event with the given name.
func (r ExecutionResult) HasEvent(name string) bool {
	for _, e := range r.Events {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Info describes a deployed contract.
type Info struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Succeeded builds a successful result.
func Succeeded(message string, state map[string]any, events ...Event) ExecutionResult {
	return ExecutionResult{Success: true, Message: message, Events: events, State: state}
}

// Rejected builds a business-rule failure.
func Rejected(message string, state map[string]any, events ...Event) ExecutionResult {
	return ExecutionResult{Success: false, Message: message, Events: events, State: state}
}

func cloneResult(r ExecutionResult) ExecutionResult {
	r.Events = append([]Event(nil), r.Events...)
	for i := range r.Events {
		r.Events[i].Payload = maps.Clone(r.Events[i].Payload)
	}
	return r
}
