package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/turnherald/internal/dependencies/clock"
	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/notify"
	"github.com/mcoot/turnherald/internal/services/blackout"
	"github.com/mcoot/turnherald/internal/services/identity"
	"github.com/mcoot/turnherald/internal/storage"
)

// Config holds reminder timing settings
type Config struct {
	// ThresholdHours is the waiting period between successive reminders.
	// Reminders fire at each whole multiple of the threshold.
	ThresholdHours float64
	// Interval is how often the scheduler scans tracked games
	Interval time.Duration
}

// DefaultConfig returns sensible defaults for reminder configuration
func DefaultConfig() Config {
	return Config{
		ThresholdHours: 2,
		Interval:       15 * time.Minute,
	}
}

// Scheduler scans tracked games on a recurring tick and reminds players
// who have been sitting on a turn past the threshold
type Scheduler struct {
	storage  storage.Storage
	blackout blackout.Config
	resolver *identity.Resolver
	sink     notify.Sink
	clock    clock.Clock
	cfg      Config
	logger   *slog.Logger
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(
	store storage.Storage,
	blackoutCfg blackout.Config,
	resolver *identity.Resolver,
	sink notify.Sink,
	clk clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		storage:  store,
		blackout: blackoutCfg,
		resolver: resolver,
		sink:     sink,
		clock:    clk,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run ticks the scheduler until the context is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started",
		slog.Duration("interval", s.cfg.Interval),
		slog.Float64("threshold_hours", s.cfg.ThresholdHours),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Error("reminder tick failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RunOnce performs one reminder scan and returns how many reminders were
// delivered.
//
// Blackout suppresses reminders without pausing wait time: once the window
// ends, a game with several skipped threshold multiples gets a single
// reminder at the next tick, with the real elapsed time and a count that
// advances by one.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	now := s.clock.Now()

	if blackout.InBlackout(now, s.blackout) {
		s.logger.Info("skipping reminders during blackout",
			slog.Int("start_hour", s.blackout.StartHour),
			slog.Int("end_hour", s.blackout.EndHour),
			slog.Int("gmt_offset", s.blackout.GMTOffset),
		)
		return 0, nil
	}

	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, snapshot := range games {
		if !s.due(snapshot, now) {
			continue
		}

		claimed, ok := s.claim(ctx, snapshot, now)
		if !ok {
			continue
		}

		notification := model.Notification{
			GameDisplayName: claimed.DisplayName,
			Player:          s.resolver.Resolve(claimed.CurrentPlayerID),
			RoundNumber:     claimed.RoundNumber,
			IsReminder:      true,
			ReminderCount:   claimed.ReminderCount,
			WaitingHours:    claimed.WaitingHours(now),
		}
		if err := s.sink.Send(ctx, notification); err != nil {
			// Already committed; the reminder slot is consumed either way
			s.logger.Error("failed to deliver reminder",
				slog.String("game_id", string(claimed.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}

		s.logger.Info("sent reminder",
			slog.String("game_id", string(claimed.ID)),
			slog.String("player_id", claimed.CurrentPlayerID),
			slog.Int("reminder_count", claimed.ReminderCount),
			slog.Float64("waiting_hours", claimed.WaitingHours(now)),
		)
		sent++
	}

	s.logger.Info("reminder tick complete",
		slog.Int("games_scanned", len(games)),
		slog.Int("reminders_sent", sent),
	)
	return sent, nil
}

// claim atomically re-checks the due condition against fresh state and, if
// it still holds, commits the reminder (count increment and notified-at).
// A turn that advanced between snapshot and commit makes the reminder
// stale, and it is silently skipped.
func (s *Scheduler) claim(ctx context.Context, snapshot *model.GameState, now time.Time) (*model.GameState, bool) {
	committed := false
	updated, err := s.storage.UpdateGame(ctx, snapshot.ID, func(current *model.GameState) (*model.GameState, error) {
		committed = false
		if current == nil {
			return nil, storage.ErrNoChange
		}
		if !current.SameTurn(snapshot.RoundNumber, snapshot.CurrentPlayerID) {
			return nil, storage.ErrNoChange
		}
		if !s.due(current, now) {
			return nil, storage.ErrNoChange
		}

		next := *current
		next.ReminderCount++
		next.LastNotifiedAt = now
		committed = true
		return &next, nil
	})
	if err != nil {
		s.logger.Error("failed to commit reminder",
			slog.String("game_id", string(snapshot.ID)),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if !committed {
		return nil, false
	}
	return updated, true
}

// due reports whether the game's wait has crossed the next threshold multiple
func (s *Scheduler) due(g *model.GameState, now time.Time) bool {
	return g.WaitingHours(now) >= s.cfg.ThresholdHours*float64(g.ReminderCount+1)
}
