package game

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mschmiedel/impostor-game/models"
)

const (
	// DefaultLanguage is used when CreateGame does not specify one.
	DefaultLanguage = "de-DE"

	// MinReadyPlayers is the smallest roster that can start a game.
	MinReadyPlayers = 3

	// joinCodeAttempts bounds the collision retries when drawing a code.
	joinCodeAttempts = 10
)

// Store is the persistence contract the engine depends on. FindByID and
// FindByJoinCode return (nil, nil) when no record matches. Save must
// refresh the record's TTL; the join-code mapping keeps its fixed window.
type Store interface {
	Save(ctx context.Context, g *models.Game) error
	FindByID(ctx context.Context, id string) (*models.Game, error)
	FindByJoinCode(ctx context.Context, code string) (*models.Game, error)
	DeleteJoinCode(ctx context.Context, code string) error
}

// Engine owns every game state transition. Each operation loads the
// record, authorizes the caller by secret, validates the status
// precondition, mutates and persists. Validation always precedes
// mutation; Save is the last step of a successful path.
type Engine struct {
	store  Store
	words  WordSource
	logger *zap.Logger

	now      func() time.Time
	shuffle  func(n int, swap func(i, j int))
	drawCode func() int
}

func NewEngine(store Store, words WordSource, logger *zap.Logger) *Engine {
	return &Engine{
		store:    store,
		words:    words,
		logger:   logger,
		now:      time.Now,
		shuffle:  rand.Shuffle,
		drawCode: func() int { return rand.Intn(10000) },
	}
}

type CreateGameInput struct {
	CreatorName         string
	AgeOfYoungestPlayer int
	Language            string
}

type CreateGameOutput struct {
	GameID       string
	JoinCode     string
	Status       models.GameStatus
	PlayerID     string
	PlayerSecret string
	Language     string
}

// CreateGame opens a new lobby in JOINING state with the creator as host.
// The host is ready by construction.
func (e *Engine) CreateGame(ctx context.Context, in CreateGameInput) (CreateGameOutput, error) {
	name := strings.TrimSpace(in.CreatorName)
	if name == "" {
		return CreateGameOutput{}, fmt.Errorf("creator name is required: %w", ErrInvalidInput)
	}

	language := in.Language
	if language == "" {
		language = DefaultLanguage
	}

	code, err := e.freeJoinCode(ctx)
	if err != nil {
		return CreateGameOutput{}, err
	}

	g := &models.Game{
		ID:                  uuid.New().String(),
		JoinCode:            code,
		Status:              models.StatusJoining,
		AgeOfYoungestPlayer: in.AgeOfYoungestPlayer,
		Language:            language,
		Players: []models.Player{{
			ID:      uuid.New().String(),
			Name:    name,
			Secret:  uuid.New().String(),
			Role:    models.RoleHost,
			IsReady: true,
		}},
		Turns:     []models.Turn{},
		CreatedAt: e.now().UnixMilli(),
	}

	if err := e.store.Save(ctx, g); err != nil {
		return CreateGameOutput{}, err
	}

	e.logger.Info("game created",
		zap.String("gameId", g.ID),
		zap.String("language", g.Language),
	)

	host := g.Players[0]
	return CreateGameOutput{
		GameID:       g.ID,
		JoinCode:     g.JoinCode,
		Status:       g.Status,
		PlayerID:     host.ID,
		PlayerSecret: host.Secret,
		Language:     g.Language,
	}, nil
}

// freeJoinCode draws random 4-digit codes until one is unclaimed among
// currently-joinable games, giving up after a bounded number of attempts.
func (e *Engine) freeJoinCode(ctx context.Context) (string, error) {
	for i := 0; i < joinCodeAttempts; i++ {
		code := fmt.Sprintf("%04d", e.drawCode())
		taken, err := e.store.FindByJoinCode(ctx, code)
		if err != nil {
			return "", err
		}
		if taken == nil {
			return code, nil
		}
	}
	return "", ErrCapacityExceeded
}

type JoinGameInput struct {
	GameID     string
	JoinCode   string
	PlayerName string
}

type JoinGameOutput struct {
	GameID       string
	PlayerID     string
	PlayerSecret string
}

// JoinGame adds a player to a lobby addressed either by full game ID or
// by its short join code. New players are ready by default.
func (e *Engine) JoinGame(ctx context.Context, in JoinGameInput) (JoinGameOutput, error) {
	if (in.GameID == "") == (in.JoinCode == "") {
		return JoinGameOutput{}, fmt.Errorf("exactly one of game id or join code is required: %w", ErrInvalidInput)
	}
	name := strings.TrimSpace(in.PlayerName)
	if name == "" {
		return JoinGameOutput{}, fmt.Errorf("player name is required: %w", ErrInvalidInput)
	}

	var g *models.Game
	var err error
	if in.GameID != "" {
		g, err = e.store.FindByID(ctx, in.GameID)
	} else {
		g, err = e.store.FindByJoinCode(ctx, in.JoinCode)
	}
	if err != nil {
		return JoinGameOutput{}, err
	}
	if g == nil {
		return JoinGameOutput{}, fmt.Errorf("game: %w", ErrNotFound)
	}
	if g.Status != models.StatusJoining {
		return JoinGameOutput{}, fmt.Errorf("game is not joinable: %w", ErrInvalidState)
	}

	p := models.Player{
		ID:      uuid.New().String(),
		Name:    name,
		Secret:  uuid.New().String(),
		Role:    models.RolePlayer,
		IsReady: true,
	}
	g.Players = append(g.Players, p)

	if err := e.store.Save(ctx, g); err != nil {
		return JoinGameOutput{}, err
	}

	e.logger.Info("player joined",
		zap.String("gameId", g.ID),
		zap.Int("players", len(g.Players)),
	)

	return JoinGameOutput{GameID: g.ID, PlayerID: p.ID, PlayerSecret: p.Secret}, nil
}

// SetReady marks the calling player ready. Calling it again is a no-op.
func (e *Engine) SetReady(ctx context.Context, gameID, playerSecret string) (string, error) {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	p := g.PlayerBySecret(playerSecret)
	if p == nil {
		return "", ErrUnauthorized
	}
	p.IsReady = true

	if err := e.store.Save(ctx, g); err != nil {
		return "", err
	}
	return p.ID, nil
}

// StartGame moves the lobby to STARTED and invalidates its join code.
// Host-only; requires at least MinReadyPlayers ready players.
func (e *Engine) StartGame(ctx context.Context, gameID, playerSecret string) error {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := requireHost(g, playerSecret); err != nil {
		return err
	}
	if g.Status != models.StatusJoining {
		return fmt.Errorf("game already started: %w", ErrInvalidState)
	}
	if g.ReadyCount() < MinReadyPlayers {
		return ErrNotEnoughPlayers
	}

	code := g.JoinCode
	g.Status = models.StatusStarted
	g.JoinCode = ""

	if err := e.store.Save(ctx, g); err != nil {
		return err
	}
	if code != "" {
		if err := e.store.DeleteJoinCode(ctx, code); err != nil {
			// The mapping still dies with its own TTL; log and move on.
			e.logger.Warn("failed to delete join code",
				zap.String("gameId", g.ID), zap.Error(err))
		}
	}

	e.logger.Info("game started",
		zap.String("gameId", g.ID),
		zap.Int("players", len(g.Players)),
	)
	return nil
}

// AdvanceTurn appends a freshly composed turn. Host-only, STARTED-only.
// The result is an acknowledgment; roles and words are read through the
// projector so the trigger call reveals nothing.
func (e *Engine) AdvanceTurn(ctx context.Context, gameID, playerSecret string) (int, error) {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return 0, err
	}
	if err := requireHost(g, playerSecret); err != nil {
		return 0, err
	}
	if g.Status != models.StatusStarted {
		return 0, fmt.Errorf("game is not running: %w", ErrInvalidState)
	}

	turn := e.composeTurn(ctx, g)
	g.Turns = append(g.Turns, turn)

	if err := e.store.Save(ctx, g); err != nil {
		return 0, err
	}

	e.logger.Info("turn advanced",
		zap.String("gameId", g.ID),
		zap.Int("turn", len(g.Turns)),
		zap.Int("impostors", len(turn.Impostors)),
	)
	return len(g.Turns), nil
}

// FinishGame ends play. Host-only, STARTED-only. The record stays around
// for reveal-all reads and a possible reset.
func (e *Engine) FinishGame(ctx context.Context, gameID, playerSecret string) error {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := requireHost(g, playerSecret); err != nil {
		return err
	}
	if g.Status != models.StatusStarted {
		return fmt.Errorf("game is not running: %w", ErrInvalidState)
	}

	g.Status = models.StatusFinished
	if err := e.store.Save(ctx, g); err != nil {
		return err
	}

	e.logger.Info("game finished", zap.String("gameId", g.ID))
	return nil
}

type ResetGameInput struct {
	GameID              string
	PlayerSecret        string
	Language            string
	AgeOfYoungestPlayer int
}

// ResetGame cycles a FINISHED game back to JOINING for a rematch of the
// same lobby: turns are cleared, config is replaced, and everyone except
// the host must ready up again.
func (e *Engine) ResetGame(ctx context.Context, in ResetGameInput) error {
	g, err := e.loadGame(ctx, in.GameID)
	if err != nil {
		return err
	}
	if err := requireHost(g, in.PlayerSecret); err != nil {
		return err
	}
	if g.Status != models.StatusFinished {
		return fmt.Errorf("game is not finished: %w", ErrInvalidState)
	}

	g.Language = in.Language
	g.AgeOfYoungestPlayer = in.AgeOfYoungestPlayer
	g.Status = models.StatusJoining
	g.Turns = []models.Turn{}
	for i := range g.Players {
		g.Players[i].IsReady = g.Players[i].Role == models.RoleHost
	}

	if err := e.store.Save(ctx, g); err != nil {
		return err
	}

	e.logger.Info("game reset",
		zap.String("gameId", g.ID),
		zap.String("language", g.Language),
	)
	return nil
}

// RenamePlayer lets a player change their own display name while the
// lobby is still forming. Only the owning secret may rename a player.
func (e *Engine) RenamePlayer(ctx context.Context, gameID, playerID, playerSecret, newName string) error {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g.Status != models.StatusJoining {
		return fmt.Errorf("game already started: %w", ErrInvalidState)
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return fmt.Errorf("player: %w", ErrNotFound)
	}
	if p.Secret != playerSecret {
		return ErrForbidden
	}
	name := strings.TrimSpace(newName)
	if name == "" {
		return fmt.Errorf("player name is required: %w", ErrInvalidInput)
	}

	p.Name = name
	return e.store.Save(ctx, g)
}

// RemovePlayer ejects a non-host player. Host-only; allowed while
// JOINING or STARTED so a host can drop a disconnected player mid-game.
// Already-generated turns keep their original membership.
func (e *Engine) RemovePlayer(ctx context.Context, gameID, targetPlayerID, callerSecret string) error {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := requireHost(g, callerSecret); err != nil {
		return err
	}
	if g.Status != models.StatusJoining && g.Status != models.StatusStarted {
		return fmt.Errorf("game is finished: %w", ErrInvalidState)
	}
	target := g.PlayerByID(targetPlayerID)
	if target == nil {
		return fmt.Errorf("player: %w", ErrNotFound)
	}
	if target.Role == models.RoleHost {
		return fmt.Errorf("cannot remove host: %w", ErrInvalidInput)
	}

	players := g.Players[:0]
	for _, p := range g.Players {
		if p.ID != targetPlayerID {
			players = append(players, p)
		}
	}
	g.Players = players

	if err := e.store.Save(ctx, g); err != nil {
		return err
	}

	e.logger.Info("player removed",
		zap.String("gameId", g.ID),
		zap.String("playerId", targetPlayerID),
	)
	return nil
}

// GetGameView is the read side: the caller-specific projection of the
// game record.
func (e *Engine) GetGameView(ctx context.Context, gameID, playerSecret string) (*GameView, error) {
	g, err := e.loadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return Project(g, playerSecret)
}

func (e *Engine) loadGame(ctx context.Context, gameID string) (*models.Game, error) {
	if gameID == "" {
		return nil, fmt.Errorf("game id is required: %w", ErrInvalidInput)
	}
	g, err := e.store.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("game: %w", ErrNotFound)
	}
	return g, nil
}

func requireHost(g *models.Game, secret string) error {
	p := g.PlayerBySecret(secret)
	if p == nil {
		return ErrUnauthorized
	}
	if p.Role != models.RoleHost {
		return ErrForbidden
	}
	return nil
}
