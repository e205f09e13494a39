package model

import "errors"

// Error taxonomy shared by the ledger, consensus and contract packages.
// Callers match with errors.Is; producers wrap with fmt.Errorf("...: %w", Err...).
var (
	// ErrValidation marks a malformed or unsigned transaction or block rejected before entering the chain.
	ErrValidation = errors.New("validation error")
	// ErrConsistency marks a hash or link mismatch on append or load. The chain is left unchanged.
	ErrConsistency = errors.New("consistency error")
	// ErrAuthorization marks a wrong proposer secret or a missing required signature.
	ErrAuthorization = errors.New("authorization error")
	// ErrPersistence marks an I/O failure while saving or loading a snapshot.
	ErrPersistence = errors.New("persistence error")
	// ErrContractFault marks a failure raised inside a contract's Execute.
	ErrContractFault = errors.New("contract fault")
)
