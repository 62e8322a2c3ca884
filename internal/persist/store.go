// Package persist stores the durable subset of a weather session (search
// history and unit preference) as one JSON blob under one fixed Redis key.
// Writes are full-subset overwrites, never partial merges; concurrent
// writers would last-write-win, a documented limitation of the schema.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/ozcanmengullu/weather-dashboard/internal/session"
)

const keyPrefix = "weather:session:"

// Store persists session state in Redis with no expiry.
type Store struct {
	client *redis.Client
	key    string
}

// NewStore constructs a Store scoped to the given session id.
func NewStore(client *redis.Client, sessionID string) *Store {
	return &Store{
		client: client,
		key:    keyPrefix + strings.ToLower(strings.TrimSpace(sessionID)),
	}
}

// Save writes the persisted subset, overwriting any previous blob.
func (s *Store) Save(ctx context.Context, state session.PersistedState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling session state: %w", err)
	}

	if err := s.client.Set(ctx, s.key, b, 0).Err(); err != nil {
		return fmt.Errorf("persisting session state: %w", err)
	}
	return nil
}

// Load reads the persisted subset back. A missing key is not an error: a
// fresh session simply starts from the zero value.
func (s *Store) Load(ctx context.Context) (session.PersistedState, error) {
	var state session.PersistedState

	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return state, nil
		}
		return state, fmt.Errorf("loading session state: %w", err)
	}

	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return state, fmt.Errorf("unmarshaling session state: %w", err)
	}
	return state, nil
}
