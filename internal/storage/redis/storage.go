package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/turnherald/internal/model"
	"github.com/mcoot/turnherald/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Per-game atomicity comes from WATCH transactions: a concurrent write to
// the same game aborts the transaction and the update is retried against
// the fresh state.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameState, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, storeErr(err)
	}

	var game model.GameState
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn storage.Mutator) (*model.GameState, error) {
	key := gameKey(id)

	var result *model.GameState
	var fnErr error
	txn := func(tx *redis.Tx) error {
		var current *model.GameState
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			current = &model.GameState{}
			if err := json.Unmarshal(data, current); err != nil {
				return err
			}
		}

		next, err := fn(current)
		if err != nil {
			if errors.Is(err, storage.ErrNoChange) {
				result = current
				return nil
			}
			fnErr = err
			return err
		}

		payload, err := json.Marshal(next)
		if err != nil {
			return err
		}

		result = next
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			pipe.SAdd(ctx, gamesIndexKey(), string(id))
			return nil
		})
		return err
	}

	retries := s.cfg.UpdateRetries
	if retries <= 0 {
		retries = 1
	}
	for i := 0; i < retries; i++ {
		fnErr = nil
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			// Another writer committed first; re-run against fresh state
			continue
		}
		if fnErr != nil {
			// Mutator errors pass through untouched
			return nil, fnErr
		}
		return nil, storeErr(err)
	}
	return nil, storeErr(fmt.Errorf("update contention on game %s", id))
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.GameState, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, storeErr(err)
	}
	if len(ids) == 0 {
		return []*model.GameState{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storeErr(err)
	}

	games := make([]*model.GameState, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // index entry without data; cleaned up on delete
		}
		var game model.GameState
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // skip invalid data
		}
		games = append(games, &game)
	}

	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Storage) SaveTurnRecord(ctx context.Context, rec *model.TurnRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	key := historyKey(rec.GameID)
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	if s.cfg.HistoryTTL > 0 {
		pipe.Expire(ctx, key, s.cfg.HistoryTTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *Storage) ListTurnRecords(ctx context.Context, gameID model.GameID) ([]*model.TurnRecord, error) {
	values, err := s.client.LRange(ctx, historyKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, storeErr(err)
	}

	records := make([]*model.TurnRecord, 0, len(values))
	for _, val := range values {
		var rec model.TurnRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}
	return records, nil
}

// storeErr tags transport failures with the StoreUnavailable error kind
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
}
