package model

// LedgerState is the full ledger snapshot read and written by stores.
type LedgerState struct {
	Version           uint64                `json:"version"`
	Blocks            []Block               `json:"blocks"`
	Pending           []Transaction         `json:"pending"`
	Balances          map[AccountRef]Amount `json:"balances"`
	TotalTransactions uint64                `json:"totalTransactions"`
}

// LastBlock returns the tip of the chain.
func (s LedgerState) LastBlock() (Block, bool) {
	if len(s.Blocks) == 0 {
		return Block{}, false
	}
	return s.Blocks[len(s.Blocks)-1], true
}

// Clone returns a deep enough copy for read-modify-write: blocks, pending and
// balances can be mutated without touching s.
func (s LedgerState) Clone() LedgerState {
	out := s
	out.Blocks = make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		out.Blocks[i] = b.Clone()
	}
	out.Pending = append([]Transaction(nil), s.Pending...)
	out.Balances = make(map[AccountRef]Amount, len(s.Balances))
	for k, v := range s.Balances {
		out.Balances[k] = v
	}
	return out
}

// RecomputeBalances derives balances from the confirmed transactions of blocks.
func RecomputeBalances(blocks []Block) map[AccountRef]Amount {
	balances := make(map[AccountRef]Amount)
	for _, b := range blocks {
		ApplyBalances(balances, b.Data.Transactions)
	}
	return balances
}

// ApplyBalances adds the balance effect of txs to balances.
func ApplyBalances(balances map[AccountRef]Amount, txs []Transaction) {
	for _, tx := range txs {
		if tx.Details == nil {
			continue
		}
		for account, delta := range tx.Details.Deltas(tx.Amount) {
			balances[account] += delta
		}
	}
}
