package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/escalopa/quran-reader/internal/domain"
)

const (
	stateKeyPrefix = "fsm:state:"
	defaultTTL     = 24 * time.Hour
)

// FSM keeps the chat dialog state of each user. States expire after a day.
type FSM struct {
	client *redis.Client
}

var _ domain.FSMPort = (*FSM)(nil)

func NewFSM(client *redis.Client) *FSM {
	return &FSM{client: client}
}

// SetState sets the current state for a user
func (f *FSM) SetState(ctx context.Context, userID string, state domain.State) error {
	return f.client.Set(ctx, stateKeyPrefix+userID, string(state), defaultTTL).Err()
}

// GetState gets the current state for a user, StateBrowsing when none is stored
func (f *FSM) GetState(ctx context.Context, userID string) (domain.State, error) {
	val, err := f.client.Get(ctx, stateKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return domain.StateBrowsing, nil
	}
	if err != nil {
		return "", fmt.Errorf("get state: %w", err)
	}
	return domain.State(val), nil
}

// DeleteState deletes the state for a user
func (f *FSM) DeleteState(ctx context.Context, userID string) error {
	return f.client.Del(ctx, stateKeyPrefix+userID).Err()
}
