package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/escalopa/quran-reader/internal/domain"
)

const (
	stateKeyPrefix = "fsm:state:"
	stateTTL       = 24 * time.Hour
)

// FSM keeps dialog states in the same database as the preference slots
type FSM struct {
	db *badger.DB
}

var _ domain.FSMPort = (*FSM)(nil)

// FSM returns the dialog state store sharing this database
func (s *Slots) FSM() *FSM {
	return &FSM{db: s.db}
}

func (f *FSM) SetState(_ context.Context, userID string, state domain.State) error {
	err := f.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(stateKeyPrefix+userID), []byte(state)).WithTTL(stateTTL)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

// GetState returns StateBrowsing when no state is stored or it expired
func (f *FSM) GetState(_ context.Context, userID string) (domain.State, error) {
	var state domain.State
	err := f.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKeyPrefix + userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			state = domain.State(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.StateBrowsing, nil
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return state, nil
}

func (f *FSM) DeleteState(_ context.Context, userID string) error {
	err := f.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(stateKeyPrefix + userID))
	})
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}
