// Package storagetest holds the behaviour every storage driver must share.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
)

// Snapshot returns a populated ledger state at version.
func Snapshot(version uint64) model.LedgerState {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 7_000_000, time.UTC)
	acct := model.AccountRef("4111********1234")
	return model.LedgerState{
		Version: version,
		Blocks: []model.Block{
			{Index: 0, Timestamp: ts, PreviousHash: model.GenesisPreviousHash, Difficulty: 1, Hash: "ab"},
			{
				Index: 1, Timestamp: ts.Add(time.Minute), PreviousHash: "ab", Difficulty: 2, Nonce: 77, Hash: "00cd",
				Data: model.BlockData{
					Transactions: []model.Transaction{{ID: "r1", Timestamp: ts, Amount: 500, Details: model.Reward{Account: acct}}},
					Miner:        map[string]string{"node": "n1"},
				},
				Report: &model.MiningReport{HashRate: 12.5, HashesComputed: 78},
			},
		},
		Pending: []model.Transaction{
			{ID: "g1", Timestamp: ts, Amount: 1, Details: model.Generic{Kind: "voucher", Fields: map[string]any{"holder": "cccc"}}},
		},
		Balances:          map[model.AccountRef]model.Amount{acct: 500},
		TotalTransactions: 2,
	}
}

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty store loads empty ledger", func(t *testing.T) {
		s := open(t)
		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Zero(t, got.Version)
		require.Empty(t, got.Blocks)
	})

	t.Run("save then load", func(t *testing.T) {
		s := open(t)
		want := Snapshot(1)
		require.NoError(t, s.Save(ctx, want))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, want.Version, got.Version)
		require.Equal(t, want.Balances, got.Balances)
		require.Equal(t, want.TotalTransactions, got.TotalTransactions)
		require.Len(t, got.Blocks, 2)
		require.Equal(t, want.Blocks[1].Data.Transactions[0].Details, got.Blocks[1].Data.Transactions[0].Details)
		require.True(t, want.Blocks[1].Timestamp.Equal(got.Blocks[1].Timestamp))
		require.Equal(t, want.Blocks[1].Report, got.Blocks[1].Report)
		require.Equal(t, model.TxType("voucher"), got.Pending[0].Type())
	})

	t.Run("version must follow", func(t *testing.T) {
		s := open(t)
		require.NoError(t, s.Save(ctx, Snapshot(1)))

		for _, v := range []uint64{1, 3, 0} {
			err := s.Save(ctx, Snapshot(v))
			if !errors.Is(err, storage.ErrVersionConflict) {
				t.Fatalf("Save(version %d) error = %v, want %v", v, err, storage.ErrVersionConflict)
			}
		}
		require.NoError(t, s.Save(ctx, Snapshot(2)))

		got, err := s.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(2), got.Version)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := open(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.ErrorIs(t, s.Save(cctx, Snapshot(1)), context.Canceled)
		_, err := s.Load(cctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}
