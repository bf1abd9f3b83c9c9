// Package storage persists ledger snapshots behind named drivers.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
)

var (
	// ErrVersionConflict is returned by Save when the snapshot does not
	// directly follow the stored version.
	ErrVersionConflict = errors.New("ledger state version conflict")
	ErrUnknownDriver   = errors.New("unknown storage driver")
)

// Store is a ledger snapshot store.
type Store interface {
	Load(ctx context.Context) (model.LedgerState, error)
	Save(ctx context.Context, state model.LedgerState) error
	Close() error
}

// Driver opens stores at a location whose meaning is driver specific.
type Driver interface {
	Name() string
	Open(path string) (Store, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a driver available by its name.
func Register(driver Driver) error {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		return errors.New("cannot register a nil driver")
	}
	name := driver.Name()
	if _, dup := drivers[name]; dup {
		return fmt.Errorf("duplicated driver name: %s", name)
	}
	drivers[name] = driver
	return nil
}

// Drivers returns the sorted names of registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open opens a store with the named driver.
func Open(name, path string) (Store, error) {
	driversMu.RLock()
	driver, ok := drivers[name]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %v)", ErrUnknownDriver, name, Drivers())
	}
	store, err := driver.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s store at %q: %w", name, path, err)
	}
	return store, nil
}

// Encode serializes a snapshot.
func Encode(state model.LedgerState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode ledger state: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot written by Encode. Empty input is the empty ledger.
func Decode(data []byte) (model.LedgerState, error) {
	var state model.LedgerState
	if len(data) == 0 {
		return state, nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return model.LedgerState{}, fmt.Errorf("decode ledger state: %w", err)
	}
	return state, nil
}

// CheckVersion enforces that next directly follows stored.
func CheckVersion(stored, next uint64) error {
	if next != stored+1 {
		return fmt.Errorf("%w: stored %d, saving %d", ErrVersionConflict, stored, next)
	}
	return nil
}
