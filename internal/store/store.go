// Package store persists cart snapshots across reloads. One opaque JSON
// value per session key, deleted when the cart empties — the same contract
// the storefront's local storage follows. Last writer wins; there is no
// cross-session coordination.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSnapshot is returned when no snapshot exists for the session.
var ErrNoSnapshot = errors.New("no cart snapshot")

type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, snapshot []byte) error
	Clear(ctx context.Context, sessionID string) error
}

// Memory keeps snapshots in-process. It is the fallback when a durable
// backend is unavailable and the default for tests.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

func (s *Memory) Load(_ context.Context, sessionID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.m[sessionID]
	if !ok {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *Memory) Save(_ context.Context, sessionID string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := make([]byte, len(snapshot))
	copy(b, snapshot)
	s.m[sessionID] = b
	return nil
}

func (s *Memory) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}
