package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/wolfman30/practice-booking/internal/wizard"
)

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Entries are kept as JSON so they go through the same codec as
// RedisStore.
type MemoryStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory store. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) LoadWizard(_ context.Context, sessionID string) (*wizard.State, error) {
	var state wizard.State
	found, err := s.get(wizardKey(sessionID), &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (s *MemoryStore) SaveWizard(_ context.Context, sessionID string, state wizard.State) error {
	return s.set(wizardKey(sessionID), state)
}

func (s *MemoryStore) ResetWizard(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, wizardKey(sessionID))
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SaveConfirmation(_ context.Context, rec Confirmation) error {
	if rec.ID == "" {
		return errors.New("session: confirmation id required")
	}
	return s.set(confirmationKey(rec.ID), rec)
}

func (s *MemoryStore) LoadConfirmation(_ context.Context, id string) (*Confirmation, error) {
	var rec Confirmation
	found, err := s.get(confirmationKey(id), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

// Sweep drops expired entries and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *MemoryStore) set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) get(key string, v any) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.now().After(e.expiresAt) {
		return false, nil
	}
	if err := json.Unmarshal(e.data, v); err != nil {
		return false, err
	}
	return true, nil
}
