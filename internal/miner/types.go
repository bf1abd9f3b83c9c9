package miner

import (
	"time"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/pow"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Digester prepares a block once so that nonces can be hashed cheaply.
	Digester interface {
		Prepare(block model.Block) (pow.NonceDigest, error)
	}
	Metrics interface {
		ObserveHashes(n uint64)
		SetHashRate(rate float64)
		ObserveSearch(outcome State, elapsed time.Duration)
	}
)
