package blocktemplate

import (
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

// Difficulty returns the difficulty required for the block following blocks.
//
// Only when the chain length is a multiple of the retarget interval is the
// mean block time over the last interval compared with the target. The
// result always starts from the base difficulty, so it stays within
// base-1..base+1 and is a pure function of the blocks.
func (b *Builder) Difficulty(blocks []model.Block) int {
	return Difficulty(b.cfg, blocks)
}

// Difficulty is the builder-independent form of (*Builder).Difficulty.
func Difficulty(cfg Config, blocks []model.Block) int {
	base := cfg.BaseDifficulty
	n := cfg.RetargetInterval
	if len(blocks) == 0 || n < 1 || len(blocks)%n != 0 {
		return base
	}

	window := blocks[len(blocks)-n:]
	if len(window) < 2 {
		return base
	}

	mean := meanBlockTime(window)
	switch {
	case mean < cfg.TargetBlockTime/2:
		return base + 1
	case mean > cfg.TargetBlockTime*3/2:
		if base-1 < 1 {
			return 1
		}
		return base - 1
	default:
		return base
	}
}

// meanBlockTime averages the timestamp deltas between consecutive blocks.
func meanBlockTime(window []model.Block) time.Duration {
	var total time.Duration
	for i := 1; i < len(window); i++ {
		total += window[i].Timestamp.Sub(window[i-1].Timestamp)
	}
	return total / time.Duration(len(window)-1)
}
