package model

import "time"

// GameID uniquely identifies a tracked game, as assigned by the upstream
// turn service
type GameID string

// GameState tracks whose turn it is in a game and how long they have
// been sitting on it
type GameState struct {
	ID          GameID `json:"id"`
	DisplayName string `json:"display_name"`

	// Current turn ownership. RoundNumber plus CurrentPlayerID together
	// identify a turn; an event repeating the stored pair is a replay.
	CurrentPlayerID string `json:"current_player_id"`
	RoundNumber     int    `json:"round_number"`

	// Timing
	TurnStartedAt time.Time `json:"turn_started_at"`
	// LastNotifiedAt is the zero time until the first notification for
	// this turn has been dispatched
	LastNotifiedAt time.Time `json:"last_notified_at"`
	ReminderCount  int       `json:"reminder_count"`
}

// SameTurn reports whether the given round/player pair matches the stored turn
func (g *GameState) SameTurn(round int, playerID string) bool {
	return g.RoundNumber == round && g.CurrentPlayerID == playerID
}

// WaitingFor returns how long the current player has held the turn as of now
func (g *GameState) WaitingFor(now time.Time) time.Duration {
	return now.Sub(g.TurnStartedAt)
}

// WaitingHours returns the fractional hours the current player has held the turn
func (g *GameState) WaitingHours(now time.Time) float64 {
	return g.WaitingFor(now).Hours()
}

// TurnEvent is an inbound turn-change notification from the upstream service
type TurnEvent struct {
	GameID          GameID
	DisplayName     string
	CurrentPlayerID string
	RoundNumber     int

	// Optional flavor fields forwarded into the immediate notice when present
	CivName    string
	LeaderName string
}

// TurnRecord is a completed turn, written to history when a tracked turn advances
type TurnRecord struct {
	GameID          GameID    `json:"game_id"`
	GameDisplayName string    `json:"game_display_name"`
	PlayerID        string    `json:"player_id"`
	RoundNumber     int       `json:"round_number"`
	TurnStartedAt   time.Time `json:"turn_started_at"`
	TurnCompletedAt time.Time `json:"turn_completed_at"`
	// DurationSeconds is -1 when the turn start was never observed
	DurationSeconds int64 `json:"duration_seconds"`
}

// Mention is a resolved player identity for message rendering
type Mention struct {
	// DisplayName is the upstream service's name for the player, always set
	DisplayName string
	// ChatID is the mentionable chat identity; empty when the player has
	// no configured mapping
	ChatID string
}

// IsMention reports whether the player resolved to a real chat identity
func (m Mention) IsMention() bool {
	return m.ChatID != ""
}

// Notification is a message handed to the notification sink
type Notification struct {
	GameDisplayName string
	Player          Mention
	RoundNumber     int
	IsReminder      bool
	ReminderCount   int
	WaitingHours    float64
	CivName         string
	LeaderName      string
}
