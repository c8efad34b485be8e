package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptforge/promptforge-backend/internal/conversation/domain"
)

const stateKeyPrefix = "promptforge:session:" // promptforge:session:{session_id}

// Store keeps one ConversationState per session id in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Load returns the state for sessionID, or a fresh NotStarted state when
// none is stored. A stored blob that fails validation yields ErrInvalidState.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.ConversationState, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewConversationState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}

	var st domain.ConversationState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidState, err)
	}
	if st.Transcript == nil {
		st.Transcript = domain.Transcript{}
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save replaces the stored state and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, st *domain.ConversationState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation state: %w", err)
	}
	return nil
}

// Clear removes the state, returning the session to NotStarted.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear conversation state: %w", err)
	}
	return nil
}

func (s *Store) key(sessionID string) string {
	return stateKeyPrefix + sessionID
}
