package turn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/turnherald/internal/dependencies/mocks"
	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/services/history"
	"github.com/mcoot/turnherald/internal/services/identity"
	"github.com/mcoot/turnherald/internal/storage/memory"
	"github.com/mcoot/turnherald/internal/testutil"
)

type ProcessorSuite struct {
	suite.Suite
	storage   *memory.Storage
	sink      *testutil.RecordingSink
	clock     *mocks.MockClock
	processor *Processor
	ctx       context.Context
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorSuite))
}

func (s *ProcessorSuite) SetupTest() {
	s.storage = memory.New()
	s.sink = testutil.NewRecordingSink()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	resolver := identity.New(map[string]string{
		"alice": "111111111111111111",
	})
	historyService := history.New(s.storage, testutil.NopLogger())
	s.processor = NewProcessor(s.storage, resolver, s.sink, historyService, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ProcessorSuite) event(round int, player string) model.TurnEvent {
	return model.TurnEvent{
		GameID:          "g1",
		DisplayName:     "Emerald Coast",
		CurrentPlayerID: player,
		RoundNumber:     round,
	}
}

// First event and turn advances

func (s *ProcessorSuite) TestFirstEventCreatesStateAndNotifies() {
	result, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)
	s.True(result.Advanced)
	s.True(result.Notified)

	game, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal("alice", game.CurrentPlayerID)
	s.Equal(10, game.RoundNumber)
	s.Equal(s.clock.CurrentTime, game.TurnStartedAt)
	s.Equal(s.clock.CurrentTime, game.LastNotifiedAt)
	s.Equal(0, game.ReminderCount)

	sent := s.sink.Sent()
	s.Require().Len(sent, 1)
	s.False(sent[0].IsReminder)
	s.Equal("Emerald Coast", sent[0].GameDisplayName)
	s.Equal(10, sent[0].RoundNumber)
	s.Equal("111111111111111111", sent[0].Player.ChatID)
}

func (s *ProcessorSuite) TestAdvanceResetsReminderState() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)

	// Simulate reminders having fired
	_, err = s.storage.UpdateGame(s.ctx, "g1", func(current *model.GameState) (*model.GameState, error) {
		next := *current
		next.ReminderCount = 3
		return &next, nil
	})
	s.Require().NoError(err)

	s.clock.Advance(5 * time.Hour)
	result, err := s.processor.ProcessEvent(s.ctx, s.event(11, "bob"))
	s.Require().NoError(err)
	s.True(result.Advanced)

	game, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal("bob", game.CurrentPlayerID)
	s.Equal(0, game.ReminderCount)
	s.Equal(s.clock.CurrentTime, game.TurnStartedAt)
	s.Equal(game.TurnStartedAt, game.LastNotifiedAt)
}

func (s *ProcessorSuite) TestSamePlayerNewRoundAdvances() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)

	result, err := s.processor.ProcessEvent(s.ctx, s.event(11, "alice"))
	s.Require().NoError(err)
	s.True(result.Advanced)
	s.Len(s.sink.Sent(), 2)
}

func (s *ProcessorSuite) TestUnmappedPlayerStillNotifies() {
	result, err := s.processor.ProcessEvent(s.ctx, s.event(10, "stranger"))
	s.Require().NoError(err)
	s.True(result.Notified)

	sent := s.sink.Sent()
	s.Require().Len(sent, 1)
	s.False(sent[0].Player.IsMention())
	s.Equal("stranger", sent[0].Player.DisplayName)
}

// Duplicate absorption

func (s *ProcessorSuite) TestDuplicateEventIsAbsorbed() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)
	started := s.clock.CurrentTime

	s.clock.Advance(30 * time.Minute)
	result, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)
	s.False(result.Advanced)
	s.False(result.Notified)

	game, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal(started, game.TurnStartedAt, "duplicate must not reset turn start")
	s.Equal(0, game.ReminderCount)
	s.Len(s.sink.Sent(), 1, "duplicate must not re-notify")
}

// Validation

func (s *ProcessorSuite) TestValidationRejectsBadEvents() {
	longName := make([]byte, 201)
	for i := range longName {
		longName[i] = 'x'
	}

	tests := []struct {
		name string
		ev   model.TurnEvent
	}{
		{"missing game id", model.TurnEvent{CurrentPlayerID: "alice", RoundNumber: 1}},
		{"missing player", model.TurnEvent{GameID: "g1", RoundNumber: 1}},
		{"negative round", model.TurnEvent{GameID: "g1", CurrentPlayerID: "alice", RoundNumber: -1}},
		{"huge round", model.TurnEvent{GameID: "g1", CurrentPlayerID: "alice", RoundNumber: 10001}},
		{"game name too long", model.TurnEvent{GameID: "g1", CurrentPlayerID: "alice", RoundNumber: 1, DisplayName: string(longName)}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.processor.ProcessEvent(s.ctx, tt.ev)
			s.ErrorIs(err, model.ErrInvalidEvent)
		})
	}

	// No state mutated, nothing sent
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
	s.Empty(s.sink.Sent())
}

// Sink failure

func (s *ProcessorSuite) TestSinkFailureKeepsCommittedState() {
	s.sink.FailWith(errors.New("discord down"))

	result, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)
	s.True(result.Advanced)
	s.False(result.Notified)

	game, err := s.storage.GetGame(s.ctx, "g1")
	s.Require().NoError(err)
	s.Equal("alice", game.CurrentPlayerID)
	s.Equal(s.clock.CurrentTime, game.LastNotifiedAt, "notified-at stands even when delivery failed")
}

// Turn history

func (s *ProcessorSuite) TestAdvanceRecordsPreviousTurn() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)

	s.clock.Advance(90 * time.Minute)
	_, err = s.processor.ProcessEvent(s.ctx, s.event(11, "bob"))
	s.Require().NoError(err)

	records, err := s.storage.ListTurnRecords(s.ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("alice", records[0].PlayerID)
	s.Equal(10, records[0].RoundNumber)
	s.Equal(int64(90*60), records[0].DurationSeconds)
}

func (s *ProcessorSuite) TestFirstEventRecordsNoHistory() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)

	records, err := s.storage.ListTurnRecords(s.ctx, "g1")
	s.Require().NoError(err)
	s.Empty(records)
}

// Game removal

func (s *ProcessorSuite) TestEndGameRemovesTracking() {
	_, err := s.processor.ProcessEvent(s.ctx, s.event(10, "alice"))
	s.Require().NoError(err)

	s.Require().NoError(s.processor.EndGame(s.ctx, "g1"))

	games, err := s.processor.ListActiveGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}
