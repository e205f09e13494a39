package consensus

import (
	"cmp"
	"errors"
	"slices"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
)

var ErrNoActiveValidators = errors.New("no active validators")

// SelectProposer picks the next block proposer among the active validators: the one that
// has waited longest since its last block (never having produced one counts as longest),
// then the lowest priority value, then the lowest id. The result depends only on the input.
func SelectProposer(validators []model.Validator) (model.Validator, error) {
	candidates := make([]model.Validator, 0, len(validators))
	for _, v := range validators {
		if v.IsActive {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return model.Validator{}, ErrNoActiveValidators
	}
	return slices.MinFunc(candidates, compareProposers).Clone(), nil
}

func compareProposers(a, b model.Validator) int {
	switch {
	case a.LastBlockCreatedAt == nil && b.LastBlockCreatedAt != nil:
		return -1
	case a.LastBlockCreatedAt != nil && b.LastBlockCreatedAt == nil:
		return 1
	case a.LastBlockCreatedAt != nil && b.LastBlockCreatedAt != nil:
		if c := a.LastBlockCreatedAt.Compare(*b.LastBlockCreatedAt); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
