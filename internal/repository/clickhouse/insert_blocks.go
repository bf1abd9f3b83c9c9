package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/pkg/safe"
)

const insertBlocksQuery = `
INSERT INTO ledger_blocks (
	block_index,
	hash,
	previous_hash,
	timestamp,
	difficulty,
	nonce,
	tx_count,
	hash_rate,
	hashes_computed,
	miner
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		var report model.MiningReport
		if block.Report != nil {
			report = *block.Report
		}
		miner := block.Data.Miner
		if miner == nil {
			miner = map[string]string{}
		}
		var difficulty uint8
		if difficulty, err = safe.Uint8(block.Difficulty); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("block %d difficulty: %w", block.Index, err)
		}
		var txCount uint32
		if txCount, err = safe.Uint32(len(block.Data.Transactions)); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("block %d transaction count: %w", block.Index, err)
		}
		if err = batch.Append(
			block.Index,
			block.Hash,
			block.PreviousHash,
			block.Timestamp,
			difficulty,
			block.Nonce,
			txCount,
			report.HashRate,
			report.HashesComputed,
			miner,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block %d: %w", block.Index, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
