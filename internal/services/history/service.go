package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/storage"
)

// Service records completed turns for later duration reporting
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new history service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger,
	}
}

// RecordCompletedTurn writes a history record for a turn that just ended.
// Duration is -1 when the turn's start was never observed.
func (s *Service) RecordCompletedTurn(ctx context.Context, prev *model.GameState, completedAt time.Time) error {
	duration := int64(-1)
	if !prev.TurnStartedAt.IsZero() {
		duration = int64(completedAt.Sub(prev.TurnStartedAt).Seconds())
	}

	rec := &model.TurnRecord{
		GameID:          prev.ID,
		GameDisplayName: prev.DisplayName,
		PlayerID:        prev.CurrentPlayerID,
		RoundNumber:     prev.RoundNumber,
		TurnStartedAt:   prev.TurnStartedAt,
		TurnCompletedAt: completedAt,
		DurationSeconds: duration,
	}

	if err := s.storage.SaveTurnRecord(ctx, rec); err != nil {
		return err
	}

	s.logger.Info("recorded turn completion",
		slog.String("game_id", string(prev.ID)),
		slog.String("player_id", prev.CurrentPlayerID),
		slog.Int("round", prev.RoundNumber),
		slog.Int64("duration_seconds", duration),
	)
	return nil
}

// ForGame returns all recorded turns for a game, oldest first
func (s *Service) ForGame(ctx context.Context, gameID model.GameID) ([]*model.TurnRecord, error) {
	return s.storage.ListTurnRecords(ctx, gameID)
}
