package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/miner"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/validator"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Validator interface {
		Validate(block model.Block, nonce uint64, hash string) validator.Result
	}
	DifficultyPolicy interface {
		Difficulty(blocks []model.Block) int
	}
	TemplateBuilder interface {
		Build(state model.LedgerState) (model.Block, error)
	}
	Ledger interface {
		State(ctx context.Context) (model.LedgerState, error)
		AcceptBlock(ctx context.Context, block model.Block) (model.Block, error)
		Subscribe(l ledger.BlockListener) func()
	}
	Engine interface {
		Start(ctx context.Context, block model.Block, difficulty int) (<-chan miner.Event, error)
		Stop()
	}
	Submitter interface {
		Submit(ctx context.Context, sub BlockSubmission) (SubmissionResult, error)
	}
	SubmissionMetrics interface {
		Observe(result string, started time.Time)
	}
	ArchiveRepository interface {
		MaxBlockIndex(ctx context.Context) (uint64, bool, error)
		MissingBlockIndexes(ctx context.Context, upTo uint64) ([]uint64, error)
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertTransactions(ctx context.Context, txs []model.ConfirmedTransaction) error
	}
	ArchiverMetrics interface {
		ObserveBatch(err error, blocks int, started time.Time)
	}
	StateSource interface {
		State(ctx context.Context) (model.LedgerState, error)
	}
)
