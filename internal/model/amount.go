package model

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// Amount is a ledger value in indivisible base units (1e-8 of a coin).
type Amount int64

// ParseAmount converts a decimal coin value into base units.
func ParseAmount(value float64) (Amount, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, fmt.Errorf("parse amount %v: %w", value, err)
	}
	if amt <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", value)
	}
	return Amount(amt), nil
}

// Coins returns the amount as a decimal coin value.
func (a Amount) Coins() float64 {
	return btcutil.Amount(a).ToBTC()
}
