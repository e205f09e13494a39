package consensus

import (
	"fmt"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

// ValidateBlock checks that block correctly extends previous and carries a valid
// validator signature. It does not consult the validator directory.
func ValidateBlock(block, previous model.Block) error {
	switch {
	case block.Index != previous.Index+1:
		return fmt.Errorf("%w: block index %d does not follow %d", model.ErrConsistency, block.Index, previous.Index)
	case block.PreviousHash != previous.Hash:
		return fmt.Errorf("%w: block %d previous hash mismatch", model.ErrConsistency, block.Index)
	case block.Hash != block.ComputeHash():
		return fmt.Errorf("%w: block %d hash does not match its contents", model.ErrConsistency, block.Index)
	case block.ValidatorSignature == "":
		return fmt.Errorf("%w: block %d is not signed", model.ErrAuthorization, block.Index)
	case !block.VerifyValidatorSignature():
		return fmt.Errorf("%w: block %d validator signature is invalid", model.ErrValidation, block.Index)
	}
	return nil
}

// IsValidBlock is ValidateBlock as a predicate.
func IsValidBlock(block, previous model.Block) bool {
	return ValidateBlock(block, previous) == nil
}
