package ledger

import "errors"

var (
	ErrInvalidChainState    = errors.New("invalid chain state: ledger has no blocks")
	ErrDuplicateIndex       = errors.New("block index already filled")
	ErrChainMismatch        = errors.New("block does not extend the chain tip")
	ErrDuplicateTransaction = errors.New("transaction id already recorded")
	ErrInvalidTransaction   = errors.New("invalid transaction")
	ErrInvalidBlock         = errors.New("invalid block")
)
