package cliservice

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"time"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/common"
	"github.com/NilFoundation/suiflow/common/logging"
	"github.com/NilFoundation/suiflow/core/crypto"
	"github.com/NilFoundation/suiflow/core/types"
	"github.com/NilFoundation/suiflow/services/ptb"
	"github.com/NilFoundation/suiflow/services/resolver"
	"github.com/NilFoundation/suiflow/services/signer"
	"github.com/NilFoundation/suiflow/services/submitter"
	"github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNoKey = errors.New("private key is not configured")

const (
	DefaultGasBudget = 50_000_000

	stageResolve = "resolve"
	stageBuild   = "build"
	stageSign    = "sign"
	stageSubmit  = "submit"
)

type Config struct {
	// GasBudget is the maximum MIST the transaction may spend on gas.
	GasBudget uint64
	// GasPrice zero means the current reference gas price.
	GasPrice uint64
	// DryRun builds and signs but does not submit.
	DryRun bool
	// CacheSize of the shared object cache, zero disables it.
	CacheSize int
}

func DefaultConfig() Config {
	return Config{
		GasBudget: DefaultGasBudget,
		CacheSize: resolver.DefaultCacheSize,
	}
}

type Service struct {
	client    client.Client
	key       *crypto.PrivateKey
	resolver  *resolver.Resolver
	signer    *signer.Signer
	submitter *submitter.Submitter
	cfg       Config

	timer  common.Timer
	sink   *metrics.InmemSink
	runId  uuid.UUID
	logger zerolog.Logger
}

// NewService wires the workflow stages around c. key may be nil, then only
// read operations are available.
func NewService(c client.Client, key *crypto.PrivateKey, cfg Config) (*Service, error) {
	runId := uuid.New()
	logger := logging.NewLogger("cliService", logging.WithRunId(runId))

	var cache *resolver.Cache
	if cfg.CacheSize > 0 {
		var err error
		if cache, err = resolver.NewCache(cfg.CacheSize); err != nil {
			return nil, err
		}
	}

	s := &Service{
		client:    c,
		key:       key,
		resolver:  resolver.NewResolver(c, cache, logger),
		submitter: submitter.NewSubmitter(c, logger),
		cfg:       cfg,
		timer:     common.NewTimer(),
		sink:      metrics.NewInmemSink(time.Minute, time.Minute),
		runId:     runId,
		logger:    logger,
	}
	if key != nil {
		s.signer = signer.NewSigner(key, logger)
	}
	return s, nil
}

func (s *Service) RunId() uuid.UUID {
	return s.runId
}

// Metrics returns the sink that collects stage timings of this run.
func (s *Service) Metrics() *metrics.InmemSink {
	return s.sink
}

func (s *Service) sender() (types.Address, error) {
	if s.key == nil {
		return types.Address{}, ErrNoKey
	}
	return s.key.Address(), nil
}

func (s *Service) stopwatch(workflow string) *common.Stopwatch {
	return common.NewStopwatch(s.timer, s.sink, "suiflow", workflow)
}

// Outcome reports what a transaction workflow did. Result is nil on dry runs.
type Outcome struct {
	Plan   *ptb.Plan                 `yaml:"plan"`
	Signed *signer.SignedTransaction `yaml:"signed"`
	Result *client.ExecutionResult   `yaml:"result,omitempty"`
	Laps   []common.Lap              `yaml:"-"`
}

// gasData picks SUI coins of the sender worth at least need plus the budget.
// Coins listed in exclude are used by the transaction itself.
func (s *Service) gasData(ctx context.Context, sender types.Address, need uint64, exclude ...types.ObjectId) (types.GasData, error) {
	price := s.cfg.GasPrice
	if price == 0 {
		var err error
		if price, err = s.client.ReferenceGasPrice(ctx); err != nil {
			return types.GasData{}, err
		}
	}

	coins, err := s.resolver.ListCoins(ctx, sender, types.SuiCoinType)
	if err != nil {
		return types.GasData{}, err
	}
	coins = excludeCoins(coins, exclude)

	total, carry := bits.Add64(need, s.cfg.GasBudget, 0)
	if carry != 0 {
		return types.GasData{}, fmt.Errorf("%w: %d plus gas budget %d overflows u64", types.ErrInvalidInput, need, s.cfg.GasBudget)
	}
	selected, _, err := resolver.SelectCoins(coins, total)
	if err != nil {
		return types.GasData{}, err
	}
	gas := types.GasData{Owner: sender, Price: price, Budget: s.cfg.GasBudget}
	for _, c := range selected {
		gas.Payment = append(gas.Payment, c.Ref)
	}
	return gas, nil
}

func excludeCoins(coins []resolver.Coin, exclude []types.ObjectId) []resolver.Coin {
	if len(exclude) == 0 {
		return coins
	}
	out := coins[:0:0]
	for _, c := range coins {
		skip := false
		for _, id := range exclude {
			if c.Ref.ObjectId == id {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

// execute finishes the plan, signs it and, unless this is a dry run, submits it.
func (s *Service) execute(
	ctx context.Context, sw *common.Stopwatch, b *ptb.Builder, sender types.Address, gas types.GasData,
) (*Outcome, error) {
	plan, err := b.Finish(sender, gas)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to build transaction")
		return nil, err
	}
	s.logger.Debug().
		Stringer(logging.FieldTxDigest, plan.Digest()).
		Int(logging.FieldCommands, len(plan.Transaction().Commands)).
		Uint64(logging.FieldGasBudget, gas.Budget).
		Uint64(logging.FieldGasPrice, gas.Price).
		Msg("Transaction built")
	sw.Lap(stageBuild)

	signed, err := s.signer.Sign(plan)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign transaction")
		return nil, err
	}
	sw.Lap(stageSign)

	out := &Outcome{Plan: plan, Signed: signed}
	if !s.cfg.DryRun {
		if out.Result, err = s.submitter.Submit(ctx, signed); err != nil {
			return nil, err
		}
		sw.Lap(stageSubmit)
	}

	out.Laps = sw.Laps()
	s.logLaps(out.Laps, sw.Total())
	return out, nil
}

func (s *Service) logLaps(laps []common.Lap, total time.Duration) {
	ev := s.logger.Info()
	for _, l := range laps {
		ev = ev.Dur(l.Stage, l.Duration)
	}
	ev.Dur(logging.FieldDuration, total).Msg("Workflow finished")
}
