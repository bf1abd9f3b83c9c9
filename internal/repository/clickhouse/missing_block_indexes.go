package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const missingBlockIndexesQuery = `
WITH toUInt64(?) AS mx
SELECT number AS block_index
FROM numbers(mx + 1) AS m
LEFT ANTI JOIN (
	SELECT block_index
	FROM ledger_blocks FINAL
	WHERE block_index <= mx
) AS b ON b.block_index = m.number
ORDER BY block_index`

// MissingBlockIndexes lists, in ascending order, the indexes in [0, upTo]
// that have no archived block.
func (r *Repository) MissingBlockIndexes(ctx context.Context, upTo uint64) (indexes []uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("missing_block_indexes", err, start)
	}()

	rows, err := r.conn.Query(ctx, missingBlockIndexesQuery, upTo)
	if err != nil {
		return nil, fmt.Errorf("query missing block indexes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var index uint64
		if err = rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("scan missing block index: %w", err)
		}
		indexes = append(indexes, index)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missing block indexes: %w", err)
	}
	return indexes, nil
}
