package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const maxBlockIndexQuery = `
SELECT count() AS cnt, coalesce(max(block_index), toUInt64(0)) AS max_index
FROM ledger_blocks FINAL`

// MaxBlockIndex returns the highest archived block index. ok is false when
// nothing has been archived yet.
func (r *Repository) MaxBlockIndex(ctx context.Context) (index uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_index", err, start)
	}()

	var count uint64
	if err = r.conn.QueryRow(ctx, maxBlockIndexQuery).Scan(&count, &index); err != nil {
		return 0, false, fmt.Errorf("query max block index: %w", err)
	}
	if count == 0 {
		return 0, false, nil
	}
	return index, true, nil
}
