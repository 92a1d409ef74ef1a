package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/turnherald/internal/dependencies/clock"
	"github.com/mcoot/turnherald/internal/dependencies/random"
	"github.com/mcoot/turnherald/internal/notify"
	"github.com/mcoot/turnherald/internal/services/blackout"
	"github.com/mcoot/turnherald/internal/services/history"
	"github.com/mcoot/turnherald/internal/services/identity"
	"github.com/mcoot/turnherald/internal/services/reminder"
	"github.com/mcoot/turnherald/internal/services/turn"
	"github.com/mcoot/turnherald/internal/storage"
	"github.com/mcoot/turnherald/internal/storage/memory"
	redisstorage "github.com/mcoot/turnherald/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Resolver          *identity.Resolver
	Sink              notify.Sink
	HistoryService    *history.Service
	TurnProcessor     *turn.Processor
	ReminderScheduler *reminder.Scheduler
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Mapping is the upstream-player to chat-identity table
	Mapping map[string]string
	// Blackout is the reminder suppression window
	Blackout blackout.Config
	// Reminder holds reminder timing settings; zero value takes defaults
	Reminder reminder.Config
	// DiscordWebhookURL is the outbound notification target (ignored when
	// Sink is set)
	DiscordWebhookURL string
	// Sink overrides the notification sink (useful for testing)
	Sink notify.Sink
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	sink := cfg.Sink
	if sink == nil {
		if cfg.DiscordWebhookURL == "" {
			return nil, errors.New("DiscordWebhookURL required when no Sink is provided")
		}
		sink = notify.NewDiscordSink(cfg.DiscordWebhookURL, rnd, logger)
	}

	reminderCfg := cfg.Reminder
	if reminderCfg.ThresholdHours == 0 {
		reminderCfg = reminder.DefaultConfig()
	}

	resolver := identity.New(cfg.Mapping)
	historyService := history.New(store, logger)
	turnProcessor := turn.NewProcessor(store, resolver, sink, historyService, clk, logger)
	reminderScheduler := reminder.NewScheduler(store, cfg.Blackout, resolver, sink, clk, reminderCfg, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Resolver:          resolver,
		Sink:              sink,
		HistoryService:    historyService,
		TurnProcessor:     turnProcessor,
		ReminderScheduler: reminderScheduler,
	}, nil
}
