// Package blocktemplate assembles mineable candidate blocks from ledger state.
package blocktemplate

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

const (
	DefaultBaseDifficulty   = 4
	DefaultRetargetInterval = 10
	DefaultTargetBlockTime  = 600_000 * time.Millisecond
)

// ErrInvalidChainState is returned when the ledger has no genesis block to build on.
var ErrInvalidChainState = errors.New("invalid chain state: ledger has no blocks")

// Config controls difficulty and template metadata.
type Config struct {
	BaseDifficulty   int
	RetargetInterval int
	TargetBlockTime  time.Duration
	// MinerMetadata is copied into every template's data. It is hashed but
	// carries no meaning for the ledger.
	MinerMetadata map[string]string
}

// DefaultConfig returns the stock retarget parameters.
func DefaultConfig() Config {
	return Config{
		BaseDifficulty:   DefaultBaseDifficulty,
		RetargetInterval: DefaultRetargetInterval,
		TargetBlockTime:  DefaultTargetBlockTime,
	}
}

// Builder produces unmined blocks referencing the current chain tip.
type Builder struct {
	cfg    Config
	clock  clock.Clock
	logger *zap.Logger
}

// NewBuilder validates cfg and returns a Builder.
func NewBuilder(cfg Config, clk clock.Clock, logger *zap.Logger) (*Builder, error) {
	if cfg.BaseDifficulty < 1 {
		return nil, fmt.Errorf("base difficulty must be at least 1, got %d", cfg.BaseDifficulty)
	}
	if cfg.RetargetInterval < 1 {
		return nil, fmt.Errorf("retarget interval must be at least 1, got %d", cfg.RetargetInterval)
	}
	if cfg.TargetBlockTime <= 0 {
		return nil, fmt.Errorf("target block time must be positive, got %s", cfg.TargetBlockTime)
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Builder{cfg: cfg, clock: clk, logger: logger}, nil
}

// Build returns a candidate block on top of state. Pending transactions are
// snapshotted, not consumed.
func (b *Builder) Build(state model.LedgerState) (model.Block, error) {
	last, ok := state.LastBlock()
	if !ok {
		return model.Block{}, ErrInvalidChainState
	}

	var miner map[string]string
	if len(b.cfg.MinerMetadata) > 0 {
		miner = make(map[string]string, len(b.cfg.MinerMetadata))
		for k, v := range b.cfg.MinerMetadata {
			miner[k] = v
		}
	}

	block := model.Block{
		Index:        last.Index + 1,
		Timestamp:    b.clock.Now().UTC().Truncate(time.Millisecond),
		PreviousHash: last.Hash,
		Data: model.BlockData{
			Transactions: append(make([]model.Transaction, 0, len(state.Pending)), state.Pending...),
			Miner:        miner,
		},
		Difficulty: b.Difficulty(state.Blocks),
		Nonce:      0,
	}

	b.logger.Debug("built block template",
		zap.Uint64("index", block.Index),
		zap.Int("difficulty", block.Difficulty),
		zap.Int("transactions", len(block.Data.Transactions)),
	)
	return block, nil
}
