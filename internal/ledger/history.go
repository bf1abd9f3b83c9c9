package ledger

import (
	"sort"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

func history(state model.LedgerState, account model.AccountRef) []model.HistoryEntry {
	var entries []model.HistoryEntry
	confirmed := make(map[string]struct{})
	for _, b := range state.Blocks {
		for _, tx := range b.Data.Transactions {
			confirmed[tx.ID] = struct{}{}
			if !tx.Involves(account) {
				continue
			}
			index := b.Index
			entries = append(entries, model.HistoryEntry{
				Transaction: tx,
				Status:      model.TxConfirmed,
				BlockIndex:  &index,
			})
		}
	}
	for _, tx := range state.Pending {
		if _, ok := confirmed[tx.ID]; ok || !tx.Involves(account) {
			continue
		}
		entries = append(entries, model.HistoryEntry{Transaction: tx, Status: model.TxPending})
	}

	// newest first; among equal timestamps the later recorded entry wins
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Transaction.Timestamp.After(entries[j].Transaction.Timestamp)
	})
	return entries
}

func pendingBalance(state model.LedgerState, account model.AccountRef) model.Amount {
	balance := state.Balances[account]
	for _, tx := range state.Pending {
		if tx.Details == nil {
			continue
		}
		balance += tx.Details.Deltas(tx.Amount)[account]
	}
	return balance
}

func confirmedTransactionIDs(blocks []model.Block) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, b := range blocks {
		for _, tx := range b.Data.Transactions {
			ids[tx.ID] = struct{}{}
		}
	}
	return ids
}

func knownTransactionIDs(state model.LedgerState) map[string]struct{} {
	ids := confirmedTransactionIDs(state.Blocks)
	for _, tx := range state.Pending {
		ids[tx.ID] = struct{}{}
	}
	return ids
}
