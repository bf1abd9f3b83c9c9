package model

import (
	"sort"
	"time"
)

// ConfirmedTransaction is a transaction located in the block embedding it.
type ConfirmedTransaction struct {
	BlockIndex  uint64
	BlockTime   time.Time
	Position    uint32
	Transaction Transaction
}

// ConfirmedTransactions flattens the transactions of blocks in chain order.
func ConfirmedTransactions(blocks []Block) []ConfirmedTransaction {
	var out []ConfirmedTransaction
	for _, b := range blocks {
		for i, tx := range b.Data.Transactions {
			out = append(out, ConfirmedTransaction{
				BlockIndex:  b.Index,
				BlockTime:   b.Timestamp,
				Position:    uint32(i),
				Transaction: tx,
			})
		}
	}
	return out
}

// Participants lists the account references a transaction names, in field
// order. Generic transactions report their string fields in key order.
func Participants(tx Transaction) []AccountRef {
	switch d := tx.Details.(type) {
	case Transfer:
		return nonZero(d.Sender, d.Recipient)
	case PaymentRequest:
		return nonZero(d.Requestor, d.Payer)
	case Reward:
		return nonZero(d.Account)
	case PaymentSent:
		return nonZero(d.Account)
	case PaymentReceived:
		return nonZero(d.Account)
	case Generic:
		keys := sortedKeys(d.Fields)
		var out []AccountRef
		for _, k := range keys {
			if s, ok := d.Fields[k].(string); ok && s != "" {
				out = append(out, AccountRef(s))
			}
		}
		return out
	default:
		return nil
	}
}

func nonZero(refs ...AccountRef) []AccountRef {
	out := make([]AccountRef, 0, len(refs))
	for _, r := range refs {
		if !r.IsZero() {
			out = append(out, r)
		}
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
