package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daives01/risk-sub002/internal/model"
	"github.com/daives01/risk-sub002/internal/repository"
	"github.com/daives01/risk-sub002/pkg/risk"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameNotWaiting  = errors.New("game is not in waiting status")
	ErrGameNotActive   = errors.New("game is not active")
	ErrGameFull        = errors.New("game is full")
	ErrNotEnough       = errors.New("need at least 2 players to start")
	ErrNotCreator      = errors.New("only the creator can do this")
	ErrAlreadyJoined   = errors.New("already joined this game")
	ErrNotInGame       = errors.New("you are not in this game")
	ErrUnknownMap      = errors.New("unknown map")
	ErrVersionConflict = errors.New("state version conflict")
	ErrStateMissing    = errors.New("live game state not found")
)

// GameService handles game lifecycle operations: lobby creation, joining,
// starting, and teardown. Once a game is active, moves go through ActionService.
type GameService struct {
	gameRepo   repository.GameRepository
	actionRepo repository.ActionRepository
	cache      repository.GameCache
	broadcast  Broadcaster
}

// NewGameService creates a GameService.
func NewGameService(gameRepo repository.GameRepository, actionRepo repository.ActionRepository, cache repository.GameCache, broadcast Broadcaster) *GameService {
	return &GameService{gameRepo: gameRepo, actionRepo: actionRepo, cache: cache, broadcast: broadcast}
}

// mapByID resolves a map identifier to its topology.
func mapByID(id string) (*risk.GameMap, error) {
	if id == "classic" {
		return risk.ClassicMap(), nil
	}
	return nil, ErrUnknownMap
}

// rulesetFor decodes a game's stored ruleset overrides on top of the defaults.
func rulesetFor(game *model.Game) (*risk.Ruleset, error) {
	rs := risk.DefaultRuleset()
	if len(game.Ruleset) > 0 {
		if err := json.Unmarshal(game.Ruleset, &rs); err != nil {
			return nil, fmt.Errorf("decode ruleset: %w", err)
		}
	}
	return &rs, nil
}

// CreateGame creates a new game in "waiting" status. The creator auto-joins.
func (s *GameService) CreateGame(ctx context.Context, name, creatorID, mapID string, maxPlayers int, ruleset json.RawMessage) (*model.Game, error) {
	if mapID == "" {
		mapID = "classic"
	}
	if _, err := mapByID(mapID); err != nil {
		return nil, err
	}
	if maxPlayers < 2 || maxPlayers > 6 {
		maxPlayers = 6
	}
	if len(ruleset) > 0 {
		var rs risk.Ruleset
		if err := json.Unmarshal(ruleset, &rs); err != nil {
			return nil, fmt.Errorf("invalid ruleset: %w", err)
		}
	}

	game, err := s.gameRepo.Create(ctx, name, creatorID, mapID, maxPlayers, ruleset)
	if err != nil {
		return nil, err
	}
	if err := s.gameRepo.JoinGame(ctx, game.ID, creatorID, ""); err != nil {
		return nil, err
	}
	return s.gameRepo.FindByID(ctx, game.ID)
}

// JoinGame adds a player to a waiting game, with an optional team.
func (s *GameService) JoinGame(ctx context.Context, gameID, userID, team string) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != "waiting" {
		return ErrGameNotWaiting
	}
	for _, p := range game.Players {
		if p.UserID == userID {
			return ErrAlreadyJoined
		}
	}
	count, err := s.gameRepo.PlayerCount(ctx, gameID)
	if err != nil {
		return err
	}
	if count >= game.MaxPlayers {
		return ErrGameFull
	}

	if err := s.gameRepo.JoinGame(ctx, gameID, userID, team); err != nil {
		return err
	}
	s.broadcast.BroadcastGameEvent(gameID, "player_joined", map[string]string{"user_id": userID, "team": team})
	return nil
}

// StartGame builds the initial game state and activates the game. Join order
// becomes the turn order.
func (s *GameService) StartGame(ctx context.Context, gameID, userID string) (*model.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != "waiting" {
		return nil, ErrGameNotWaiting
	}
	if game.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if len(game.Players) < 2 {
		return nil, ErrNotEnough
	}

	m, err := mapByID(game.MapID)
	if err != nil {
		return nil, err
	}
	rs, err := rulesetFor(game)
	if err != nil {
		return nil, err
	}

	seats := make([]risk.Seat, len(game.Players))
	for i, p := range game.Players {
		seats[i] = risk.Seat{Player: risk.PlayerID(p.UserID), Team: risk.TeamID(p.Team)}
	}

	seed := randomSeed()
	state, events, err := risk.NewGame(seats, m, rs, seed)
	if err != nil {
		return nil, err
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal initial state: %w", err)
	}
	if err := s.cache.SetGameState(ctx, gameID, stateJSON, state.StateVersion); err != nil {
		return nil, fmt.Errorf("cache initial state: %w", err)
	}

	// Record game creation in the action log so the full history replays
	// from the first record.
	actionJSON, _ := json.Marshal(map[string]string{"type": "startGame", "seed": seed})
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("marshal setup events: %w", err)
	}
	if _, err := s.actionRepo.Append(ctx, gameID, userID, state.StateVersion, actionJSON, eventsJSON); err != nil {
		return nil, err
	}

	if err := s.gameRepo.SetActive(ctx, gameID); err != nil {
		return nil, err
	}

	s.broadcast.BroadcastGameEvent(gameID, "game_started", risk.NewSpectatorView(state))
	return s.gameRepo.FindByID(ctx, gameID)
}

// GetGame returns a game by ID.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListGames returns open games, the user's games, or finished games.
func (s *GameService) ListGames(ctx context.Context, userID string, filter string) ([]model.Game, error) {
	switch filter {
	case "my":
		return s.gameRepo.ListByUser(ctx, userID)
	case "finished":
		return s.gameRepo.ListFinished(ctx)
	default:
		return s.gameRepo.ListOpen(ctx)
	}
}

// DeleteGame removes a waiting game. Only the game creator can delete a game.
func (s *GameService) DeleteGame(ctx context.Context, gameID, userID string) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != "waiting" {
		return ErrGameNotWaiting
	}
	if game.CreatorID != userID {
		return ErrNotCreator
	}
	if err := s.cache.DeleteGameData(ctx, gameID); err != nil {
		return err
	}
	return s.gameRepo.Delete(ctx, gameID)
}

func randomSeed() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
