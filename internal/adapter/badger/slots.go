// Package badger stores preference slots in an embedded Badger database, for
// single-node deployments without redis.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/escalopa/quran-reader/internal/domain"
)

type Slots struct {
	db  *badger.DB
	log *slog.Logger
}

var _ domain.PreferenceBackend = (*Slots)(nil)

// Open opens the database at path. An empty path opens an in-memory database.
func Open(path string, log *slog.Logger) (*Slots, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	log.Info("badger preference store opened", "path", path)
	return &Slots{db: db, log: log}, nil
}

func (s *Slots) Close() error {
	return s.db.Close()
}

func (s *Slots) Load(_ context.Context, slot string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(slot))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return out, nil
}

func (s *Slots) Save(_ context.Context, slot string, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(slot), data)
	})
	if err != nil {
		return fmt.Errorf("set slot: %w", err)
	}
	return nil
}
