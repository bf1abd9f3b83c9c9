package ledger

import (
	"context"
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store reads and replaces the full ledger snapshot.
	Store interface {
		Load(ctx context.Context) (model.LedgerState, error)
		Save(ctx context.Context, state model.LedgerState) error
	}
	Digester interface {
		Digest(block model.Block, nonce uint64) (string, error)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		SetChain(height uint64, pending int)
	}
)

// BlockListener is notified after a block has been persisted.
type BlockListener func(ctx context.Context, block model.Block)
