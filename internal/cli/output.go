package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case ActiveGamesResult:
		o.printActiveGames(v)
	case TurnHistoryResult:
		o.printTurnHistory(v)
	case TurnEventResult:
		o.printTurnEventResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// ActiveGame response type (matches API)
type ActiveGame struct {
	GameID          string     `json:"game_id"`
	DisplayName     string     `json:"display_name"`
	CurrentPlayerID string     `json:"current_player_id"`
	RoundNumber     int        `json:"round_number"`
	TurnStartedAt   time.Time  `json:"turn_started_at"`
	LastNotifiedAt  *time.Time `json:"last_notified_at"`
	ReminderCount   int        `json:"reminder_count"`
}

// ActiveGamesResult is the active-games listing response
type ActiveGamesResult struct {
	ActiveGames []ActiveGame `json:"active_games"`
	Count       int          `json:"count"`
}

// TurnRecord response type
type TurnRecord struct {
	PlayerID        string    `json:"player_id"`
	RoundNumber     int       `json:"round_number"`
	TurnStartedAt   time.Time `json:"turn_started_at"`
	TurnCompletedAt time.Time `json:"turn_completed_at"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// TurnHistoryResult is the turn-history response
type TurnHistoryResult struct {
	GameID  string       `json:"game_id"`
	Records []TurnRecord `json:"records"`
}

// TurnEventResult is the webhook processing response
type TurnEventResult struct {
	Advanced bool `json:"advanced"`
	Notified bool `json:"notified"`
}

// HealthResult is the health check response
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printActiveGames(r ActiveGamesResult) {
	if r.Count == 0 {
		fmt.Println("No active games")
		return
	}
	fmt.Printf("%d active game(s):\n", r.Count)
	for _, g := range r.ActiveGames {
		waiting := time.Since(g.TurnStartedAt).Round(time.Minute)
		fmt.Printf("  %s (%s): round %d, %s's turn, waiting %s, %d reminder(s)\n",
			g.DisplayName, g.GameID, g.RoundNumber, g.CurrentPlayerID, waiting, g.ReminderCount)
	}
}

func (o *Output) printTurnHistory(r TurnHistoryResult) {
	if len(r.Records) == 0 {
		fmt.Printf("No recorded turns for game %s\n", r.GameID)
		return
	}
	fmt.Printf("Turn history for %s:\n", r.GameID)
	for _, rec := range r.Records {
		duration := "unknown"
		if rec.DurationSeconds >= 0 {
			duration = (time.Duration(rec.DurationSeconds) * time.Second).String()
		}
		fmt.Printf("  round %d: %s took %s\n", rec.RoundNumber, rec.PlayerID, duration)
	}
}

func (o *Output) printTurnEventResult(r TurnEventResult) {
	switch {
	case r.Advanced && r.Notified:
		fmt.Println("Turn advanced; notification sent")
	case r.Advanced:
		fmt.Println("Turn advanced; notification failed (see server logs)")
	default:
		fmt.Println("Duplicate event; no change")
	}
}

func (o *Output) printHealthResult(r HealthResult) {
	fmt.Printf("Server status: %s\n", r.Status)
}
