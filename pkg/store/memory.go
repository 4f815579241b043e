package store

import (
	"context"
	"sync"
	"time"

	"github.com/cashlink-hq/cashlinkd/pkg/models"
)

// MemoryStore keeps intent records in process memory. Used for tests and for
// deployments that treat the chain as the only durable record.
type MemoryStore struct {
	mu      sync.RWMutex
	intents map[string]models.Intent
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		intents: make(map[string]models.Intent),
	}
}

// SaveIntent inserts a new intent record, rejecting duplicate ids
func (s *MemoryStore) SaveIntent(_ context.Context, intent models.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.intents[intent.ID]; ok {
		return ErrAlreadyExists
	}
	s.intents[intent.ID] = intent
	return nil
}

// GetIntent fetches the record for id
func (s *MemoryStore) GetIntent(_ context.Context, id string) (models.Intent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	intent, ok := s.intents[id]
	if !ok {
		return models.Intent{}, ErrNotFound
	}
	return intent, nil
}

// MarkClaimed transitions the record for id to claimed, ignoring repeats and
// unknown ids
func (s *MemoryStore) MarkClaimed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	intent, ok := s.intents[id]
	if !ok || intent.Status == models.StatusClaimed {
		return nil
	}

	intent.Status = models.StatusClaimed
	intent.UpdatedAt = time.Now().UTC()
	s.intents[id] = intent
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}
