package validator

import "github.com/goodnatureofminers/rewardledger-backend/internal/model"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Digester interface {
		Digest(block model.Block, nonce uint64) (string, error)
	}
	Metrics interface {
		Observe(accepted bool, failedChecks []string)
	}
)
