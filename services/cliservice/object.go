package cliservice

import (
	"context"
	"fmt"
	"time"

	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/resolver"
)

// GetObject fetches one object with the fields of mask.
func (s *Service) GetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask) (*types.ObjectInfo, error) {
	info, err := s.resolver.GetObject(ctx, id, mask)
	if err != nil {
		s.logger.Error().Err(err).Stringer(logging.FieldObjectId, id).Msg("Failed to get object")
		return nil, err
	}
	return info, nil
}

// ListCoins lists the coins of coinType owned by owner, or by the key owner
// when owner is empty.
func (s *Service) ListCoins(ctx context.Context, owner types.Address, coinType types.TypeTag) ([]resolver.Coin, error) {
	if owner.IsEmpty() {
		var err error
		if owner, err = s.sender(); err != nil {
			return nil, err
		}
	}
	return s.resolver.ListCoins(ctx, owner, coinType)
}

type BenchResult struct {
	Requests int           `yaml:"requests"`
	Avg      time.Duration `yaml:"avg"`
	Min      time.Duration `yaml:"min"`
	Max      time.Duration `yaml:"max"`
	Total    time.Duration `yaml:"total"`
}

// BenchGetObject requests the same object n times in a row and reports latency.
func (s *Service) BenchGetObject(ctx context.Context, id types.ObjectId, mask types.ReadMask, n int) (*BenchResult, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: request count must be positive", types.ErrInvalidInput)
	}

	sw := s.stopwatch("bench")
	res := &BenchResult{Requests: n}
	for i := range n {
		if _, err := s.resolver.GetObject(ctx, id, mask); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		d := sw.Lap("getObject")
		if i == 0 || d < res.Min {
			res.Min = d
		}
		res.Max = max(res.Max, d)
	}
	res.Total = sw.Total()
	res.Avg = res.Total / time.Duration(n)

	s.logger.Info().
		Stringer(logging.FieldObjectId, id).
		Int("requests", n).
		Dur("avg", res.Avg).
		Dur("min", res.Min).
		Dur("max", res.Max).
		Msg("Benchmark finished")
	return res, nil
}
