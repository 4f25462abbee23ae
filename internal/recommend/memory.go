package recommend

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps the interaction log in process memory.
// It is the explicit store handle injected into the engine; the host
// application owns its lifecycle (construct at startup, pass into handlers).
// Safe for concurrent use: readers get snapshot copies.
type MemoryStore struct {
	mu           sync.RWMutex
	interactions []*Interaction
	version      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, interaction *Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now()
	}

	s.interactions = append(s.interactions, interaction)
	s.version++
	return nil
}

func (s *MemoryStore) GetAll(ctx context.Context) ([]*Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out, nil
}

func (s *MemoryStore) GetByUser(ctx context.Context, userID string) ([]*Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Interaction
	for _, interaction := range s.interactions {
		if interaction.UserID == userID {
			out = append(out, interaction)
		}
	}
	return out, nil
}

func (s *MemoryStore) Version(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version, nil
}
