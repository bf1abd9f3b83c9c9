package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/ledger"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/validator"
)

// Submission outcomes as reported to metrics.
const (
	SubmissionAccepted = "accepted"
	SubmissionRejected = "rejected"
	SubmissionError    = "error"
)

// ErrDifficultyBelowTarget is returned for a block mined at a lower
// difficulty than the chain requires for its index.
var ErrDifficultyBelowTarget = fmt.Errorf("%w: difficulty below target", validator.ErrValidationFailure)

// BlockSubmission is a miner's claimed solution for a template.
type BlockSubmission struct {
	Block         model.Block        `json:"block"`
	Hash          string             `json:"hash"`
	Nonce         uint64             `json:"nonce"`
	MinerMetadata model.MiningReport `json:"minerMetadata"`
}

// SubmissionResult is what the submitter gets back.
type SubmissionResult struct {
	Success  bool              `json:"success"`
	NewBlock *model.Block      `json:"newBlock,omitempty"`
	Error    string            `json:"error,omitempty"`
	Checks   []validator.Check `json:"checks,omitempty"`
}

// SubmissionService validates mined blocks and appends the valid ones to the ledger.
type SubmissionService struct {
	validator  Validator
	difficulty DifficultyPolicy
	ledger     Ledger
	metrics    SubmissionMetrics
	logger     *zap.Logger
}

// NewSubmissionService builds a SubmissionService.
func NewSubmissionService(
	v Validator,
	difficulty DifficultyPolicy,
	l Ledger,
	metrics SubmissionMetrics,
	logger *zap.Logger,
) (*SubmissionService, error) {
	if v == nil || difficulty == nil || l == nil {
		return nil, errors.New("submission service requires validator, difficulty policy and ledger")
	}
	if metrics == nil {
		return nil, errors.New("submission metrics is required")
	}
	return &SubmissionService{
		validator:  v,
		difficulty: difficulty,
		ledger:     l,
		metrics:    metrics,
		logger:     logger,
	}, nil
}

// Submit validates sub and, when every check passes, appends the block to
// the ledger. The result always describes the outcome; the error is set
// whenever the block was not accepted.
func (s *SubmissionService) Submit(ctx context.Context, sub BlockSubmission) (result SubmissionResult, err error) {
	started := time.Now()
	outcome := SubmissionError
	defer func() {
		s.metrics.Observe(outcome, started)
	}()

	logger := s.logger.With(
		zap.Uint64("index", sub.Block.Index),
		zap.Uint64("nonce", sub.Nonce),
		zap.String("hash", sub.Hash),
	)

	res := s.validator.Validate(sub.Block, sub.Nonce, sub.Hash)
	if !res.Accepted {
		outcome = SubmissionRejected
		err = res.Err()
		logger.Warn("block rejected by validator", zap.Error(err))
		return SubmissionResult{Error: err.Error(), Checks: res.Checks}, err
	}

	state, err := s.ledger.State(ctx)
	if err != nil {
		logger.Error("load ledger state failed", zap.Error(err))
		return SubmissionResult{Error: err.Error(), Checks: res.Checks}, err
	}
	if last, ok := state.LastBlock(); ok && sub.Block.Index == last.Index+1 {
		if want := s.difficulty.Difficulty(state.Blocks); sub.Block.Difficulty < want {
			outcome = SubmissionRejected
			err = fmt.Errorf("%w: block %d has %d, chain requires %d", ErrDifficultyBelowTarget, sub.Block.Index, sub.Block.Difficulty, want)
			logger.Warn("block rejected", zap.Error(err))
			return SubmissionResult{Error: err.Error(), Checks: res.Checks}, err
		}
	}

	block := sub.Block.Clone()
	block.Nonce = sub.Nonce
	block.Hash = res.Hash
	report := sub.MinerMetadata
	block.Report = &report

	accepted, err := s.ledger.AcceptBlock(ctx, block)
	if err != nil {
		if rejectedByLedger(err) {
			outcome = SubmissionRejected
			logger.Warn("block rejected by ledger", zap.Error(err))
		} else {
			logger.Error("accept block failed", zap.Error(err))
		}
		return SubmissionResult{Error: err.Error(), Checks: res.Checks}, err
	}

	outcome = SubmissionAccepted
	logger.Info("block accepted",
		zap.Int("difficulty", accepted.Difficulty),
		zap.Float64("hash_rate", report.HashRate),
		zap.Uint64("hashes_computed", report.HashesComputed),
	)
	return SubmissionResult{Success: true, NewBlock: &accepted, Checks: res.Checks}, nil
}

func rejectedByLedger(err error) bool {
	for _, target := range []error{
		ledger.ErrDuplicateIndex,
		ledger.ErrChainMismatch,
		ledger.ErrDuplicateTransaction,
		ledger.ErrInvalidTransaction,
		ledger.ErrInvalidBlock,
		ledger.ErrInvalidChainState,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
