package response

import (
	"time"

	"github.com/mcoot/turnherald/internal/model"
)

// ActiveGame represents a tracked game in API responses
type ActiveGame struct {
	GameID          string     `json:"game_id"`
	DisplayName     string     `json:"display_name"`
	CurrentPlayerID string     `json:"current_player_id"`
	RoundNumber     int        `json:"round_number"`
	TurnStartedAt   time.Time  `json:"turn_started_at"`
	LastNotifiedAt  *time.Time `json:"last_notified_at,omitempty"`
	ReminderCount   int        `json:"reminder_count"`
}

// ActiveGameFromModel converts a model.GameState to a response ActiveGame
func ActiveGameFromModel(g *model.GameState) ActiveGame {
	resp := ActiveGame{
		GameID:          string(g.ID),
		DisplayName:     g.DisplayName,
		CurrentPlayerID: g.CurrentPlayerID,
		RoundNumber:     g.RoundNumber,
		TurnStartedAt:   g.TurnStartedAt,
		ReminderCount:   g.ReminderCount,
	}
	if !g.LastNotifiedAt.IsZero() {
		notified := g.LastNotifiedAt
		resp.LastNotifiedAt = &notified
	}
	return resp
}

// ActiveGamesResponse is the response for the active-games listing
type ActiveGamesResponse struct {
	ActiveGames []ActiveGame `json:"active_games"`
	Count       int          `json:"count"`
}

// TurnEventResponse is the response for a processed turn event
type TurnEventResponse struct {
	Advanced bool `json:"advanced"`
	Notified bool `json:"notified"`
}

// TurnRecord represents a completed turn in API responses
type TurnRecord struct {
	PlayerID        string    `json:"player_id"`
	RoundNumber     int       `json:"round_number"`
	TurnStartedAt   time.Time `json:"turn_started_at"`
	TurnCompletedAt time.Time `json:"turn_completed_at"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// TurnRecordFromModel converts a model.TurnRecord
func TurnRecordFromModel(r *model.TurnRecord) TurnRecord {
	return TurnRecord{
		PlayerID:        r.PlayerID,
		RoundNumber:     r.RoundNumber,
		TurnStartedAt:   r.TurnStartedAt,
		TurnCompletedAt: r.TurnCompletedAt,
		DurationSeconds: r.DurationSeconds,
	}
}

// TurnHistoryResponse is the response for a game's turn history
type TurnHistoryResponse struct {
	GameID  string       `json:"game_id"`
	Records []TurnRecord `json:"records"`
}
