// Package memory is a process local ledger store, for tests and development.
package memory

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
)

// DriverName identifies the memory driver.
const DriverName = "memory"

type driver struct{}

func (driver) Name() string { return DriverName }

// Open ignores path: every store is independent.
func (driver) Open(string) (storage.Store, error) { return New(), nil }

func init() {
	if err := storage.Register(driver{}); err != nil {
		panic(err)
	}
}

// Store keeps the encoded snapshot so callers never share memory with it.
type Store struct {
	mu      sync.RWMutex
	data    []byte
	version uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) Load(ctx context.Context) (model.LedgerState, error) {
	if err := ctx.Err(); err != nil {
		return model.LedgerState{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Decode(s.data)
}

func (s *Store) Save(ctx context.Context, state model.LedgerState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := storage.Encode(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := storage.CheckVersion(s.version, state.Version); err != nil {
		return err
	}
	s.data = data
	s.version = state.Version
	return nil
}

func (s *Store) Close() error { return nil }
