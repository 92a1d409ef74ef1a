package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Each game has its own lock, so updates to different games never contend.
type Storage struct {
	mu      sync.RWMutex // guards map membership, not game contents
	games   map[model.GameID]*model.GameState
	locks   map[model.GameID]*sync.Mutex
	records map[model.GameID][]*model.TurnRecord
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:   make(map[model.GameID]*model.GameState),
		locks:   make(map[model.GameID]*sync.Mutex),
		records: make(map[model.GameID][]*model.TurnRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// gameLock returns the per-game mutex, creating it on first use.
// Locks are never removed; a finished game leaves one idle mutex behind.
func (s *Storage) gameLock(id model.GameID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return clone(game), nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn storage.Mutator) (*model.GameState, error) {
	lock := s.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	current := clone(s.games[id])
	s.mu.RUnlock()

	next, err := fn(current)
	if err != nil {
		if errors.Is(err, storage.ErrNoChange) {
			return current, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.games[id] = clone(next)
	s.mu.Unlock()

	return next, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.GameState, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, clone(game))
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	lock := s.gameLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *Storage) SaveTurnRecord(ctx context.Context, rec *model.TurnRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *rec
	s.records[rec.GameID] = append(s.records[rec.GameID], &copied)
	return nil
}

func (s *Storage) ListTurnRecords(ctx context.Context, gameID model.GameID) ([]*model.TurnRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*model.TurnRecord, 0, len(s.records[gameID]))
	for _, rec := range s.records[gameID] {
		copied := *rec
		records = append(records, &copied)
	}
	return records, nil
}

// clone copies a game state so callers never alias stored data
func clone(g *model.GameState) *model.GameState {
	if g == nil {
		return nil
	}
	copied := *g
	return &copied
}
