// internal/store/memory.go
//
// In-memory session store for running games.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Tracks the last access of every game; Janitor evicts idle ones.
//   - State is lost when the process restarts (scores are not persisted).

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RubyShuey/Otter/internal/game"
	"github.com/RubyShuey/Otter/internal/metrics"
)

// ErrNotFound is returned for unknown or evicted game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the session interface for running games.
type Store interface {
	// Save adds or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID and marks it as used.
	// Returns ErrNotFound if the game is unknown.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete removes a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len returns the number of stored games.
	Len() int
}

type entry struct {
	game     *game.Game
	lastSeen time.Time
}

// Memory is a map-based Store.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*entry), now: time.Now}
}

func (m *Memory) Save(_ context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{game: g, lastSeen: m.now()}
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*game.Game, error) {
	// write lock: Get refreshes lastSeen
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.game, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Evict removes games not used for longer than ttl and returns how many.
func (m *Memory) Evict(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.lastSeen.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// Janitor evicts idle games every interval until ctx is done.
func (m *Memory) Janitor(ctx context.Context, ttl, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n := m.Evict(ttl)
			metrics.ActiveGames.Set(float64(m.Len()))
			if n > 0 {
				log.Debug().Int("evicted", n).Int("remaining", m.Len()).Msg("evicted idle games")
			}
		}
	}
}
