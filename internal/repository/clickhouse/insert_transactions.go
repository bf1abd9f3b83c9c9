package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

const insertTransactionsQuery = `
INSERT INTO ledger_transactions (
	tx_id,
	block_index,
	block_timestamp,
	position,
	type,
	timestamp,
	amount,
	accounts,
	payload
) VALUES`

// InsertTransactions stores confirmed transaction rows in ClickHouse. The
// full transaction is kept as JSON next to the columns used for filtering.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.ConfirmedTransaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, confirmed := range txs {
		tx := confirmed.Transaction
		var payload []byte
		payload, err = json.Marshal(tx)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("encode transaction %s: %w", tx.ID, err)
		}
		participants := model.Participants(tx)
		accounts := make([]string, 0, len(participants))
		for _, p := range participants {
			accounts = append(accounts, p.String())
		}

		if err = batch.Append(
			tx.ID,
			confirmed.BlockIndex,
			confirmed.BlockTime,
			confirmed.Position,
			string(tx.Type()),
			tx.Timestamp,
			int64(tx.Amount),
			accounts,
			string(payload),
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %s: %w", tx.ID, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
