package redis

import (
	"fmt"

	"github.com/mcoot/turnherald/internal/model"
)

// Key prefix for all tracked data
const keyPrefix = "turnherald"

// gameKey returns the Redis key for a tracked game's state
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of tracked game keys
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// historyKey returns the Redis key for a game's turn-history list
func historyKey(id model.GameID) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, id)
}
