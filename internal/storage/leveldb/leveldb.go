// Package leveldb stores the ledger snapshot in a goleveldb database.
package leveldb

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
)

// DriverName identifies the leveldb driver.
const DriverName = "leveldb"

var (
	keyState   = []byte("ledger/state")
	keyVersion = []byte("ledger/version")
)

type driver struct{}

func (driver) Name() string { return DriverName }

func (driver) Open(path string) (storage.Store, error) { return Open(path) }

func init() {
	if err := storage.Register(driver{}); err != nil {
		panic(err)
	}
}

// Store is a goleveldb backed ledger store.
type Store struct {
	// guards the version check and the write that follows it
	mu sync.Mutex
	db *leveldb.DB
}

// Open opens or creates the database at path, recovering a corrupted manifest.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if lerrors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (model.LedgerState, error) {
	if err := ctx.Err(); err != nil {
		return model.LedgerState{}, err
	}
	data, err := s.db.Get(keyState, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return model.LedgerState{}, nil
	}
	if err != nil {
		return model.LedgerState{}, err
	}
	return storage.Decode(data)
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

	var stored uint64
	v, err := s.db.Get(keyVersion, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
	case err != nil:
		return err
	case len(v) == 8:
		stored = binary.BigEndian.Uint64(v)
	}
	if err := storage.CheckVersion(stored, state.Version); err != nil {
		return err
	}

	version := make([]byte, 8)
	binary.BigEndian.PutUint64(version, state.Version)
	batch := new(leveldb.Batch)
	batch.Put(keyVersion, version)
	batch.Put(keyState, data)
	return s.db.Write(batch, nil)
}

func (s *Store) Close() error {
	return s.db.Close()
}
