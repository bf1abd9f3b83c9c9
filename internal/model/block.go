// Package model defines the ledger domain: blocks, transactions, accounts and
// the ledger state snapshot.
package model

import "time"

// GenesisPreviousHash is the previous hash recorded on the genesis block.
const GenesisPreviousHash = "0"

// BlockData is the hashed payload of a block.
type BlockData struct {
	Transactions []Transaction    `json:"transactions"`
	Miner        map[string]string `json:"miner,omitempty"`
}

// MiningReport is what a miner claims about its search. It is informational
// and never part of the digest.
type MiningReport struct {
	HashRate       float64 `json:"hashRate"`
	HashesComputed uint64  `json:"hashesComputed"`
}

// Block is a ledger block. Until accepted it is a template owned by a miner.
type Block struct {
	Index        uint64        `json:"index"`
	Timestamp    time.Time     `json:"timestamp"`
	PreviousHash string        `json:"previousHash"`
	Data         BlockData     `json:"data"`
	Difficulty   int           `json:"difficulty"`
	Nonce        uint64        `json:"nonce"`
	Hash         string        `json:"hash,omitempty"`
	Report       *MiningReport `json:"report,omitempty"`
}

// Clone returns a copy that shares no slices or maps with b. Transaction
// details are values and are shared as is.
func (b Block) Clone() Block {
	out := b
	if b.Data.Transactions != nil {
		out.Data.Transactions = append([]Transaction(nil), b.Data.Transactions...)
	}
	if b.Data.Miner != nil {
		out.Data.Miner = make(map[string]string, len(b.Data.Miner))
		for k, v := range b.Data.Miner {
			out.Data.Miner[k] = v
		}
	}
	if b.Report != nil {
		report := *b.Report
		out.Report = &report
	}
	return out
}

// HistoryEntry is a transaction as seen from an account's history.
type HistoryEntry struct {
	Transaction Transaction `json:"transaction"`
	Status      TxStatus    `json:"status"`
	BlockIndex  *uint64     `json:"blockIndex,omitempty"`
}
