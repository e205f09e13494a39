package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/contract/builtin"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/metrics"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/model"
	"github.com/AnriiAndrushko/blockchain-aid-tracker-sub000/internal/service"
)

// replay rebuilds contract state from the confirmed chain, in block order.
func replay(ctx context.Context, blocks []model.Block, suppliers service.SupplierLookup, cfg builtin.Config, logger *zap.Logger) (map[string]map[string]any, error) {
	engine, err := contract.NewEngine(metrics.NewContractEngine(), logger)
	if err != nil {
		return nil, err
	}
	if err := builtin.DeployAll(engine, cfg); err != nil {
		return nil, err
	}
	if err := service.ReplayBlocks(ctx, engine, suppliers, blocks, logger); err != nil {
		return nil, err
	}

	states := make(map[string]map[string]any)
	for _, info := range engine.Contracts() {
		state, err := engine.State(info.ID)
		if err != nil {
			return nil, err
		}
		states[info.ID] = state
	}
	return states, nil
}
