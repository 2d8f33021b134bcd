package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/escalopa/quran-reader/internal/domain"
)

// Slots stores preference slots as plain string keys without expiry
type Slots struct {
	client *redis.Client
}

var _ domain.PreferenceBackend = (*Slots)(nil)

func NewSlots(client *redis.Client) *Slots {
	return &Slots{client: client}
}

func (s *Slots) Load(ctx context.Context, slot string) ([]byte, error) {
	val, err := s.client.Get(ctx, slot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return val, nil
}

func (s *Slots) Save(ctx context.Context, slot string, data []byte) error {
	if err := s.client.Set(ctx, slot, data, 0).Err(); err != nil {
		return fmt.Errorf("set slot: %w", err)
	}
	return nil
}
