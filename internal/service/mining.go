package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/miner"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

const (
	DefaultTemplateTTL = 5 * time.Minute
	DefaultRetryDelay  = 5 * time.Second
)

var errEventsClosed = errors.New("mining events closed without a terminal event")

// MiningConfig tunes the mining loop.
type MiningConfig struct {
	// TemplateTTL bounds how long one template is mined before it is rebuilt
	// with a fresh timestamp.
	TemplateTTL time.Duration
	// MaxNonce abandons a template once the search passes it; solutions
	// beyond it would be refused on submission. Zero disables the bound.
	MaxNonce   uint64
	RetryDelay time.Duration
}

// DefaultMiningConfig returns the stock loop settings.
func DefaultMiningConfig() MiningConfig {
	return MiningConfig{TemplateTTL: DefaultTemplateTTL, RetryDelay: DefaultRetryDelay}
}

// MiningService keeps one search running against the current chain tip and
// submits every block it finds.
type MiningService struct {
	ledger    Ledger
	builder   TemplateBuilder
	engine    Engine
	submitter Submitter
	clock     clock.Clock
	sleep     func(context.Context, time.Duration) error
	cfg       MiningConfig
	logger    *zap.Logger

	tipChanged chan struct{}
}

// NewMiningService builds a MiningService. A nil clock means the wall clock.
func NewMiningService(
	l Ledger,
	builder TemplateBuilder,
	engine Engine,
	submitter Submitter,
	clk clock.Clock,
	cfg MiningConfig,
	logger *zap.Logger,
) (*MiningService, error) {
	if l == nil || builder == nil || engine == nil || submitter == nil {
		return nil, errors.New("mining service requires ledger, builder, engine and submitter")
	}
	if clk == nil {
		clk = clock.New()
	}
	if cfg.TemplateTTL <= 0 {
		cfg.TemplateTTL = DefaultTemplateTTL
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &MiningService{
		ledger:     l,
		builder:    builder,
		engine:     engine,
		submitter:  submitter,
		clock:      clk,
		sleep:      clock.Sleeper(clk),
		cfg:        cfg,
		logger:     logger,
		tipChanged: make(chan struct{}, 1),
	}, nil
}

// Run mines until ctx is canceled. A block accepted from elsewhere abandons
// the current template.
func (s *MiningService) Run(ctx context.Context) error {
	unsubscribe := s.ledger.Subscribe(func(context.Context, model.Block) {
		select {
		case s.tipChanged <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			s.logger.Warn("mining iteration failed, backing off", zap.Error(err), zap.Duration("sleep", s.cfg.RetryDelay))
			if sleepErr := s.sleep(ctx, s.cfg.RetryDelay); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

// run mines a single template to its end.
func (s *MiningService) run(ctx context.Context) error {
	select {
	case <-s.tipChanged:
	default:
	}

	state, err := s.ledger.State(ctx)
	if err != nil {
		return err
	}
	template, err := s.builder.Build(state)
	if err != nil {
		return err
	}

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := s.engine.Start(searchCtx, template, template.Difficulty)
	if err != nil {
		return err
	}

	logger := s.logger.With(zap.Uint64("index", template.Index), zap.Int("difficulty", template.Difficulty))
	logger.Debug("mining template", zap.Int("transactions", len(template.Data.Transactions)))

	ttl := s.clock.Timer(s.cfg.TemplateTTL)
	defer ttl.Stop()

	done := ctx.Done()
	stopped := false
	stop := func(reason string) {
		if stopped {
			return
		}
		stopped = true
		logger.Debug("stopping search", zap.String("reason", reason))
		s.engine.Stop()
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return errEventsClosed
			}
			switch ev.Kind {
			case miner.EventProgress:
				if s.cfg.MaxNonce > 0 && ev.Nonce >= s.cfg.MaxNonce {
					stop("nonce range exhausted")
				}
			case miner.EventSuccess:
				if s.cfg.MaxNonce > 0 && ev.Nonce >= s.cfg.MaxNonce {
					// the validator would reject it; rebuild instead
					logger.Info("found nonce outside the accepted range",
						zap.Uint64("nonce", ev.Nonce),
						zap.Uint64("max_nonce", s.cfg.MaxNonce),
					)
					return nil
				}
				return s.submit(ctx, logger, ev)
			case miner.EventStatus:
				logger.Debug("search ended", zap.String("status", ev.Text))
				return nil
			case miner.EventError:
				return ev.Err
			}
		case <-ttl.C:
			stop("template expired")
		case <-s.tipChanged:
			stop("chain tip moved")
		case <-done:
			done = nil
			stop("shutting down")
		}
	}
}

func (s *MiningService) submit(ctx context.Context, logger *zap.Logger, ev miner.Event) error {
	if ev.Block == nil {
		return errors.New("success event without a block")
	}
	_, err := s.submitter.Submit(ctx, BlockSubmission{
		Block: *ev.Block,
		Hash:  ev.Hash,
		Nonce: ev.Nonce,
		MinerMetadata: model.MiningReport{
			HashRate:       ev.HashRate,
			HashesComputed: ev.HashesComputed,
		},
	})
	switch {
	case err == nil:
		logger.Info("mined block submitted",
			zap.Uint64("nonce", ev.Nonce),
			zap.String("hash", ev.Hash),
			zap.Float64("hash_rate", ev.HashRate),
			zap.Duration("elapsed", ev.Elapsed),
		)
		return nil
	case errors.Is(err, ledger.ErrDuplicateIndex), errors.Is(err, ledger.ErrChainMismatch):
		logger.Info("mined block lost the race for its index", zap.Error(err))
		return nil
	default:
		return err
	}
}
