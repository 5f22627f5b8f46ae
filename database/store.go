package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/models"
)

const (
	gameKeyPrefix = "game:"
	codeKeyPrefix = "joincode:"

	// Every save refreshes the record TTL, so active games stay alive
	// and abandoned ones expire.
	gameTTL = 24 * time.Hour

	// The join-code mapping gets a fixed window from creation. It is
	// written with SETNX and never refreshed, so a code dies 30 minutes
	// after the lobby was opened even if the game is still being
	// configured.
	joinCodeTTL = 30 * time.Minute
)

// GameStore persists game records in Redis, one JSON document per game,
// plus a joinCode -> gameID reverse mapping while the game is joinable.
type GameStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewGameStore(rdb *redis.Client, logger *zap.Logger) *GameStore {
	return &GameStore{rdb: rdb, logger: logger}
}

// Save upserts the full record and refreshes its TTL. While the game is
// joinable the join-code mapping is registered once; once the game has
// left JOINING any lingering mapping for a known code is removed.
func (s *GameStore) Save(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, gameKeyPrefix+g.ID, data, gameTTL).Err(); err != nil {
		s.logger.Error("failed to save game record",
			zap.String("gameId", g.ID), zap.Error(err))
		return err
	}

	if g.Status == models.StatusJoining && g.JoinCode != "" {
		// NX keeps the original creation window; re-saving must not
		// extend a code's lifetime.
		if err := s.rdb.SetNX(ctx, codeKeyPrefix+g.JoinCode, g.ID, joinCodeTTL).Err(); err != nil {
			return err
		}
	}
	if g.Status != models.StatusJoining && g.JoinCode != "" {
		if err := s.rdb.Del(ctx, codeKeyPrefix+g.JoinCode).Err(); err != nil {
			return err
		}
	}
	return nil
}

// FindByID returns the game record, or (nil, nil) when it is absent or
// already expired.
func (s *GameStore) FindByID(ctx context.Context, id string) (*models.Game, error) {
	data, err := s.rdb.Get(ctx, gameKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var g models.Game
	if err := json.Unmarshal(data, &g); err != nil {
		s.logger.Error("corrupt game record",
			zap.String("gameId", id), zap.Error(err))
		return nil, err
	}
	return &g, nil
}

// FindByJoinCode resolves a short code to its game. A dangling mapping
// whose game already expired reads as absent.
func (s *GameStore) FindByJoinCode(ctx context.Context, code string) (*models.Game, error) {
	id, err := s.rdb.Get(ctx, codeKeyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// DeleteJoinCode removes the reverse mapping once a game stops being
// joinable.
func (s *GameStore) DeleteJoinCode(ctx context.Context, code string) error {
	return s.rdb.Del(ctx, codeKeyPrefix+code).Err()
}
