package turn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/turnherald/internal/dependencies/clock"
	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/notify"
	"github.com/mcoot/turnherald/internal/services/history"
	"github.com/mcoot/turnherald/internal/services/identity"
	"github.com/mcoot/turnherald/internal/storage"
)

// Validation limits on inbound events, matching the upstream service
const (
	maxRoundNumber    = 10000
	maxDisplayNameLen = 200
	maxPlayerNameLen  = 100
)

// Processor consumes inbound turn-change events, updates tracked game
// state, and dispatches the immediate "your turn" notice
type Processor struct {
	storage  storage.Storage
	resolver *identity.Resolver
	sink     notify.Sink
	history  *history.Service
	clock    clock.Clock
	logger   *slog.Logger
}

// NewProcessor creates a new turn event processor
func NewProcessor(
	store storage.Storage,
	resolver *identity.Resolver,
	sink notify.Sink,
	historyService *history.Service,
	clk clock.Clock,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		storage:  store,
		resolver: resolver,
		sink:     sink,
		history:  historyService,
		clock:    clk,
		logger:   logger,
	}
}

// Result reports what processing an event did
type Result struct {
	// Advanced is true when the event was a genuine turn advance rather
	// than a duplicate
	Advanced bool
	// Notified is true when the immediate notice was delivered
	Notified bool
}

// ProcessEvent handles one inbound turn-change event. Duplicate events
// (same round and player as the stored turn) are absorbed without touching
// state or notifying. A failed notice dispatch does not roll back the
// committed state change.
func (p *Processor) ProcessEvent(ctx context.Context, ev model.TurnEvent) (Result, error) {
	if err := validateEvent(ev); err != nil {
		return Result{}, err
	}

	now := p.clock.Now()

	var advanced bool
	var prev *model.GameState
	_, err := p.storage.UpdateGame(ctx, ev.GameID, func(current *model.GameState) (*model.GameState, error) {
		advanced = false
		prev = current

		if current != nil && current.SameTurn(ev.RoundNumber, ev.CurrentPlayerID) {
			return nil, storage.ErrNoChange
		}

		advanced = true
		return &model.GameState{
			ID:              ev.GameID,
			DisplayName:     ev.DisplayName,
			CurrentPlayerID: ev.CurrentPlayerID,
			RoundNumber:     ev.RoundNumber,
			TurnStartedAt:   now,
			// The immediate notice counts as the first notification
			LastNotifiedAt: now,
			ReminderCount:  0,
		}, nil
	})
	if err != nil {
		return Result{}, err
	}

	if !advanced {
		p.logger.Info("duplicate turn event absorbed",
			slog.String("game_id", string(ev.GameID)),
			slog.Int("round", ev.RoundNumber),
			slog.String("player_id", ev.CurrentPlayerID),
		)
		return Result{}, nil
	}

	// Close out the previous turn's history record. Failure here is
	// reported but never blocks the turn change.
	if prev != nil && prev.CurrentPlayerID != "" {
		if err := p.history.RecordCompletedTurn(ctx, prev, now); err != nil {
			p.logger.Error("failed to record turn completion",
				slog.String("game_id", string(ev.GameID)),
				slog.String("error", err.Error()),
			)
		}
	}

	p.logger.Info("turn advanced",
		slog.String("game_id", string(ev.GameID)),
		slog.String("game", ev.DisplayName),
		slog.String("player_id", ev.CurrentPlayerID),
		slog.Int("round", ev.RoundNumber),
	)

	// State is committed; the notice is dispatched outside the critical
	// section and its failure stands apart from the turn record
	notification := model.Notification{
		GameDisplayName: ev.DisplayName,
		Player:          p.resolver.Resolve(ev.CurrentPlayerID),
		RoundNumber:     ev.RoundNumber,
		CivName:         ev.CivName,
		LeaderName:      ev.LeaderName,
	}
	if err := p.sink.Send(ctx, notification); err != nil {
		p.logger.Error("failed to deliver turn notice",
			slog.String("game_id", string(ev.GameID)),
			slog.String("error", err.Error()),
		)
		return Result{Advanced: true, Notified: false}, nil
	}

	return Result{Advanced: true, Notified: true}, nil
}

// EndGame removes a game from tracking, on the upstream game-ended signal
func (p *Processor) EndGame(ctx context.Context, gameID model.GameID) error {
	if err := p.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}
	p.logger.Info("removed game tracking", slog.String("game_id", string(gameID)))
	return nil
}

// ListActiveGames returns a snapshot of all tracked games
func (p *Processor) ListActiveGames(ctx context.Context) ([]*model.GameState, error) {
	return p.storage.ListGames(ctx)
}

// validateEvent rejects malformed events before any state is touched
func validateEvent(ev model.TurnEvent) error {
	if ev.GameID == "" {
		return fmt.Errorf("%w: missing game id", model.ErrInvalidEvent)
	}
	if ev.CurrentPlayerID == "" {
		return fmt.Errorf("%w: missing player id", model.ErrInvalidEvent)
	}
	if len(ev.CurrentPlayerID) > maxPlayerNameLen {
		return fmt.Errorf("%w: player id too long", model.ErrInvalidEvent)
	}
	if len(ev.DisplayName) > maxDisplayNameLen {
		return fmt.Errorf("%w: game name too long", model.ErrInvalidEvent)
	}
	if ev.RoundNumber < 0 || ev.RoundNumber > maxRoundNumber {
		return fmt.Errorf("%w: round number out of range", model.ErrInvalidEvent)
	}
	return nil
}
