// Package ledger owns all mutations of the ledger state: pending
// transactions, accepted blocks and the balances derived from them.
package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/rewardledger-backend/internal/clock"
	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

const genesisDifficulty = 1

// Service serializes read-modify-persist cycles over a Store.
type Service struct {
	store    Store
	digester Digester
	metrics  Metrics
	clock    clock.Clock
	logger   *zap.Logger
	newID    func() string

	mu sync.Mutex

	listenersMu  sync.RWMutex
	listeners    map[uint64]BlockListener
	nextListener uint64
}

// NewService builds a ledger Service.
func NewService(store Store, digester Digester, metrics Metrics, clk clock.Clock, logger *zap.Logger) *Service {
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		store:     store,
		digester:  digester,
		metrics:   metrics,
		clock:     clk,
		logger:    logger,
		newID:     uuid.NewString,
		listeners: make(map[uint64]BlockListener),
	}
}

// Subscribe registers l for accepted blocks and returns a func removing it.
func (s *Service) Subscribe(l BlockListener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Service) notify(ctx context.Context, block model.Block) {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()

	for _, l := range s.listeners {
		l(ctx, block.Clone())
	}
}

// EnsureGenesis creates the genesis block when the ledger is empty and
// returns the first block of the chain.
func (s *Service) EnsureGenesis(ctx context.Context) (model.Block, error) {
	var genesis model.Block
	created := false
	err := s.update(ctx, "ensure_genesis", func(state *model.LedgerState) (bool, error) {
		if len(state.Blocks) > 0 {
			genesis = state.Blocks[0]
			return false, nil
		}

		genesis = model.Block{
			Index:        0,
			Timestamp:    s.now(),
			PreviousHash: model.GenesisPreviousHash,
			Difficulty:   genesisDifficulty,
		}
		hash, err := s.digester.Digest(genesis, genesis.Nonce)
		if err != nil {
			return false, fmt.Errorf("hash genesis block: %w", err)
		}
		genesis.Hash = hash
		state.Blocks = append(state.Blocks, genesis)
		created = true
		return true, nil
	})
	if err != nil {
		return model.Block{}, err
	}
	if created {
		s.logger.Info("genesis block created", zap.String("hash", genesis.Hash))
		s.notify(ctx, genesis)
	}
	return genesis, nil
}

// State returns a copy of the current ledger snapshot.
func (s *Service) State(ctx context.Context) (model.LedgerState, error) {
	var out model.LedgerState
	err := s.view(ctx, "state", func(state model.LedgerState) error {
		out = state
		return nil
	})
	return out, err
}

// AddPendingTransaction masks and stores tx in the pending set. A missing ID
// or timestamp is assigned.
func (s *Service) AddPendingTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	err := s.update(ctx, "add_pending_transaction", func(state *model.LedgerState) (bool, error) {
		var err error
		tx, err = s.addPending(state, tx)
		return err == nil, err
	})
	if err != nil {
		return model.Transaction{}, err
	}
	return tx, nil
}

func (s *Service) addPending(state *model.LedgerState, tx model.Transaction) (model.Transaction, error) {
	if tx.Details == nil {
		return tx, fmt.Errorf("%w: %v", ErrInvalidTransaction, model.ErrMissingTxType)
	}
	if tx.Amount < 0 {
		return tx, fmt.Errorf("%w: negative amount %d", ErrInvalidTransaction, tx.Amount)
	}
	tx = tx.Masked()
	if tx.ID == "" {
		tx.ID = s.newID()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = s.now()
	}
	if _, dup := knownTransactionIDs(*state)[tx.ID]; dup {
		return tx, fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID)
	}

	state.Pending = append(state.Pending, tx)
	state.TotalTransactions++
	return tx, nil
}

// PendingTransactions returns the pending set in insertion order.
func (s *Service) PendingTransactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	err := s.view(ctx, "pending_transactions", func(state model.LedgerState) error {
		out = append(make([]model.Transaction, 0, len(state.Pending)), state.Pending...)
		return nil
	})
	return out, err
}

// ClearPendingTransactions empties the pending set and reports how many
// transactions were dropped.
func (s *Service) ClearPendingTransactions(ctx context.Context) (int, error) {
	var cleared int
	err := s.update(ctx, "clear_pending_transactions", func(state *model.LedgerState) (bool, error) {
		cleared = len(state.Pending)
		state.Pending = nil
		return cleared > 0, nil
	})
	return cleared, err
}

// AcceptBlock appends an already validated block to the chain. Its
// transactions leave the pending set and their balance deltas are applied.
// At most one block is ever accepted per index.
func (s *Service) AcceptBlock(ctx context.Context, block model.Block) (model.Block, error) {
	block = block.Clone()
	err := s.update(ctx, "accept_block", func(state *model.LedgerState) (bool, error) {
		last, ok := state.LastBlock()
		if !ok {
			return false, ErrInvalidChainState
		}
		switch {
		case block.Index <= last.Index:
			return false, fmt.Errorf("%w: index %d, tip is %d", ErrDuplicateIndex, block.Index, last.Index)
		case block.Index != last.Index+1:
			return false, fmt.Errorf("%w: index %d, expected %d", ErrChainMismatch, block.Index, last.Index+1)
		case block.PreviousHash != last.Hash:
			return false, fmt.Errorf("%w: previous hash %q, tip hash %q", ErrChainMismatch, block.PreviousHash, last.Hash)
		case block.Hash == "":
			return false, fmt.Errorf("%w: block %d has no hash", ErrInvalidBlock, block.Index)
		}

		confirmed := confirmedTransactionIDs(state.Blocks)
		included := make(map[string]struct{}, len(block.Data.Transactions))
		for _, tx := range block.Data.Transactions {
			if tx.Details == nil || !tx.IsMasked() {
				return false, fmt.Errorf("%w: block %d transaction %q", ErrInvalidTransaction, block.Index, tx.ID)
			}
			if _, dup := confirmed[tx.ID]; dup {
				return false, fmt.Errorf("%w: block %d transaction %q", ErrDuplicateTransaction, block.Index, tx.ID)
			}
			if _, dup := included[tx.ID]; dup {
				return false, fmt.Errorf("%w: block %d transaction %q", ErrDuplicateTransaction, block.Index, tx.ID)
			}
			included[tx.ID] = struct{}{}
		}

		remaining := state.Pending[:0:0]
		for _, tx := range state.Pending {
			if _, ok := included[tx.ID]; ok {
				delete(included, tx.ID)
				continue
			}
			remaining = append(remaining, tx)
		}
		// transactions that never went through the pending set
		state.TotalTransactions += uint64(len(included))
		state.Pending = remaining
		state.Blocks = append(state.Blocks, block)
		if state.Balances == nil {
			state.Balances = make(map[model.AccountRef]model.Amount)
		}
		model.ApplyBalances(state.Balances, block.Data.Transactions)
		return true, nil
	})
	if err != nil {
		return model.Block{}, err
	}

	s.logger.Info("block accepted",
		zap.Uint64("index", block.Index),
		zap.String("hash", block.Hash),
		zap.Int("transactions", len(block.Data.Transactions)),
	)
	s.notify(ctx, block)
	return block.Clone(), nil
}

// AccountHistory lists pending and confirmed transactions involving account,
// newest first. A transaction embedded in a block is only reported as
// confirmed.
func (s *Service) AccountHistory(ctx context.Context, account model.AccountRef) ([]model.HistoryEntry, error) {
	account = model.MaskAccount(string(account))
	var out []model.HistoryEntry
	err := s.view(ctx, "account_history", func(state model.LedgerState) error {
		out = history(state, account)
		return nil
	})
	return out, err
}

// Balance returns the confirmed balance of account.
func (s *Service) Balance(ctx context.Context, account model.AccountRef) (model.Amount, error) {
	account = model.MaskAccount(string(account))
	var out model.Amount
	err := s.view(ctx, "balance", func(state model.LedgerState) error {
		out = state.Balances[account]
		return nil
	})
	return out, err
}

// RewardReceipt is returned by IssueReward.
type RewardReceipt struct {
	Transaction model.Transaction `json:"transaction"`
	// Balance only counts confirmed transactions.
	Balance model.Amount `json:"balance"`
	// PendingBalance also counts the pending set, this reward included.
	PendingBalance model.Amount `json:"pendingBalance"`
}

// IssueReward queues a reward of amount for account.
func (s *Service) IssueReward(ctx context.Context, account model.AccountRef, amount model.Amount) (RewardReceipt, error) {
	account, err := model.ParseAccount(string(account))
	if err != nil {
		return RewardReceipt{}, fmt.Errorf("%w: reward %w", ErrInvalidTransaction, err)
	}
	if amount <= 0 {
		return RewardReceipt{}, fmt.Errorf("%w: reward amount must be positive, got %d", ErrInvalidTransaction, amount)
	}

	var receipt RewardReceipt
	err = s.update(ctx, "issue_reward", func(state *model.LedgerState) (bool, error) {
		tx, err := s.addPending(state, model.Transaction{
			Amount:  amount,
			Details: model.Reward{Account: account},
		})
		if err != nil {
			return false, err
		}
		receipt = RewardReceipt{
			Transaction:    tx,
			Balance:        state.Balances[account],
			PendingBalance: pendingBalance(*state, account),
		}
		return true, nil
	})
	if err != nil {
		return RewardReceipt{}, err
	}

	s.logger.Info("reward issued",
		zap.String("account", account.String()),
		zap.String("tx_id", receipt.Transaction.ID),
		zap.Int64("amount", int64(amount)),
	)
	return receipt, nil
}

// update runs fn on a copy of the stored state and saves the copy with the
// next version when fn reports a change.
func (s *Service) update(ctx context.Context, operation string, fn func(state *model.LedgerState) (bool, error)) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(operation, err, started)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger state: %w", err)
	}
	next := current.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}
	next.Version = current.Version + 1
	if err = s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save ledger state: %w", err)
	}

	height := uint64(0)
	if last, ok := next.LastBlock(); ok {
		height = last.Index
	}
	s.metrics.SetChain(height, len(next.Pending))
	return nil
}

func (s *Service) view(ctx context.Context, operation string, fn func(state model.LedgerState) error) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe(operation, err, started)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger state: %w", err)
	}
	return fn(state.Clone())
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}
