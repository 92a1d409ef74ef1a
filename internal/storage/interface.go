package storage

import (
	"context"
	"errors"

	"github.com/mcoot/turnherald/internal/model"
)

// ErrNoChange is returned by a Mutator to abort an update without writing.
// UpdateGame treats it as success and returns the stored state unchanged.
var ErrNoChange = errors.New("no change")

// Mutator transforms a game's state inside an atomic read-modify-write.
// current is nil when the game is not tracked. The returned state replaces
// the stored one. Returning ErrNoChange leaves the entry untouched; any
// other error aborts the update without writing.
type Mutator func(current *model.GameState) (*model.GameState, error)

// Storage defines the interface for turn-state persistence.
//
// UpdateGame calls for different games must be able to proceed
// independently; calls for the same game must serialize, so a mutator
// always observes the latest committed state before its write lands.
type Storage interface {
	// Game state operations
	GetGame(ctx context.Context, id model.GameID) (*model.GameState, error)
	UpdateGame(ctx context.Context, id model.GameID, fn Mutator) (*model.GameState, error)
	ListGames(ctx context.Context) ([]*model.GameState, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Turn history operations
	SaveTurnRecord(ctx context.Context, rec *model.TurnRecord) error
	ListTurnRecords(ctx context.Context, gameID model.GameID) ([]*model.TurnRecord, error)
}
