// Package bolt stores the ledger snapshot in a bbolt file.
package bolt

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/goodnatureofminers/rewardledger-backend/internal/model"
	"github.com/goodnatureofminers/rewardledger-backend/internal/storage"
)

// DriverName identifies the bolt driver.
const DriverName = "bolt"

var (
	bucketLedger = []byte("ledger")
	keyState     = []byte("state")
	keyVersion   = []byte("version")
)

type driver struct{}

func (driver) Name() string { return DriverName }

func (driver) Open(path string) (storage.Store, error) { return Open(path) }

func init() {
	if err := storage.Register(driver{}); err != nil {
		panic(err)
	}
}

// Store is a bbolt backed ledger store.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLedger)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) (model.LedgerState, error) {
	if err := ctx.Err(); err != nil {
		return model.LedgerState{}, err
	}
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketLedger).Get(keyState); v != nil {
			// bolt memory is only valid inside the transaction
			data = append([]byte(nil), v...)
		}
		return nil
	})
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
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketLedger)
		var stored uint64
		if v := b.Get(keyVersion); len(v) == 8 {
			stored = binary.BigEndian.Uint64(v)
		}
		if err := storage.CheckVersion(stored, state.Version); err != nil {
			return err
		}
		version := make([]byte, 8)
		binary.BigEndian.PutUint64(version, state.Version)
		if err := b.Put(keyVersion, version); err != nil {
			return err
		}
		return b.Put(keyState, data)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
