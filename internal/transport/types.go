package transport

import (
	"context"

	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/miner"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/service"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		State(ctx context.Context) (model.LedgerState, error)
		PendingTransactions(ctx context.Context) ([]model.Transaction, error)
		ClearPendingTransactions(ctx context.Context) (int, error)
		AddPendingTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
		IssueReward(ctx context.Context, account model.AccountRef, amount model.Amount) (ledger.RewardReceipt, error)
		AccountHistory(ctx context.Context, account model.AccountRef) ([]model.HistoryEntry, error)
		Balance(ctx context.Context, account model.AccountRef) (model.Amount, error)
	}
	TemplateBuilder interface {
		Build(state model.LedgerState) (model.Block, error)
	}
	Submitter interface {
		Submit(ctx context.Context, sub service.BlockSubmission) (service.SubmissionResult, error)
	}
	MinerStats interface {
		Stats() miner.Stats
	}
)
