package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/daives01/risk-sub002/internal/model"
	"github.com/daives01/risk-sub002/internal/repository"
	"github.com/daives01/risk-sub002/pkg/risk"
)

// ActionService applies player actions to the live game state. It is the only
// writer of the state while a game is active: load from cache, run the rules
// engine, persist the new state and the action record, broadcast.
type ActionService struct {
	gameRepo   repository.GameRepository
	actionRepo repository.ActionRepository
	cache      repository.GameCache
	broadcast  Broadcaster
}

// NewActionService creates an ActionService.
func NewActionService(gameRepo repository.GameRepository, actionRepo repository.ActionRepository, cache repository.GameCache, broadcast Broadcaster) *ActionService {
	return &ActionService{gameRepo: gameRepo, actionRepo: actionRepo, cache: cache, broadcast: broadcast}
}

// ActionResult is what a successful action returns to the caller.
type ActionResult struct {
	StateVersion int             `json:"state_version"`
	Events       []risk.Event    `json:"events"`
	View         risk.PlayerView `json:"view"`
}

// SubmitAction validates and applies one action for the given player.
// expectedVersion is the state version the client acted on; -1 skips the
// check. A mismatch returns ErrVersionConflict so the client can refetch.
// Rule violations come back as *risk.RuleError.
func (s *ActionService) SubmitAction(ctx context.Context, gameID, userID string, expectedVersion int, action risk.Action) (*ActionResult, error) {
	game, gs, m, rs, err := s.loadActive(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}

	if expectedVersion >= 0 && expectedVersion != gs.StateVersion {
		return nil, fmt.Errorf("%w: expected %d, have %d", ErrVersionConflict, expectedVersion, gs.StateVersion)
	}

	next, events, err := risk.ApplyAction(gs, risk.PlayerID(userID), action, m, rs)
	if err != nil {
		return nil, err
	}

	actionJSON, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("marshal action: %w", err)
	}
	if err := s.persist(ctx, game, userID, next, actionJSON, events); err != nil {
		return nil, err
	}

	return &ActionResult{
		StateVersion: next.StateVersion,
		Events:       events,
		View:         risk.NewPlayerView(next, risk.PlayerID(userID)),
	}, nil
}

// Resign removes a player from an active game: their territories go neutral
// and their hand is discarded. Unlike other actions this is legal off-turn.
func (s *ActionService) Resign(ctx context.Context, gameID, userID string) (*ActionResult, error) {
	game, gs, m, rs, err := s.loadActive(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}

	next, events, err := risk.Resign(gs, risk.PlayerID(userID), m, rs)
	if err != nil {
		return nil, err
	}

	actionJSON, _ := json.Marshal(map[string]string{"type": "resign"})
	if err := s.persist(ctx, game, userID, next, actionJSON, events); err != nil {
		return nil, err
	}

	return &ActionResult{
		StateVersion: next.StateVersion,
		Events:       events,
		View:         risk.NewPlayerView(next, risk.PlayerID(userID)),
	}, nil
}

// LegalActions enumerates the actions the engine would accept from this user
// right now. Off-turn players get an empty list.
func (s *ActionService) LegalActions(ctx context.Context, gameID, userID string) ([]risk.Action, error) {
	_, gs, m, rs, err := s.loadActive(ctx, gameID, userID)
	if err != nil {
		return nil, err
	}
	if gs.Turn.CurrentPlayer != risk.PlayerID(userID) {
		return nil, nil
	}
	return risk.LegalActions(gs, m, rs), nil
}

// State returns the caller's projection of the live state: players see their
// own hand, everyone else gets the spectator view.
func (s *ActionService) State(ctx context.Context, gameID, userID string) (any, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	gs, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	for _, p := range game.Players {
		if p.UserID == userID {
			return risk.NewPlayerView(gs, risk.PlayerID(userID)), nil
		}
	}
	return risk.NewSpectatorView(gs), nil
}

// History returns a game's full action log in order.
func (s *ActionService) History(ctx context.Context, gameID string) ([]model.ActionRecord, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return s.actionRepo.ListByGame(ctx, gameID)
}

// loadActive fetches the game row and live state, checking the caller is a
// player in an active game.
func (s *ActionService) loadActive(ctx context.Context, gameID, userID string) (*model.Game, *risk.GameState, *risk.GameMap, *risk.Ruleset, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if game == nil {
		return nil, nil, nil, nil, ErrGameNotFound
	}
	if game.Status != "active" {
		return nil, nil, nil, nil, ErrGameNotActive
	}

	inGame := false
	for _, p := range game.Players {
		if p.UserID == userID {
			inGame = true
			break
		}
	}
	if !inGame {
		return nil, nil, nil, nil, ErrNotInGame
	}

	gs, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	m, err := mapByID(game.MapID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	rs, err := rulesetFor(game)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return game, gs, m, rs, nil
}

func (s *ActionService) loadState(ctx context.Context, gameID string) (*risk.GameState, error) {
	stateJSON, err := s.cache.GetGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if stateJSON == nil {
		return nil, ErrStateMissing
	}
	var gs risk.GameState
	if err := json.Unmarshal(stateJSON, &gs); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	return &gs, nil
}

// persist writes the new state and action record, broadcasts, and finishes
// the game if the engine reported a terminal result.
func (s *ActionService) persist(ctx context.Context, game *model.Game, userID string, next *risk.GameState, actionJSON json.RawMessage, events []risk.Event) error {
	stateJSON, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.cache.SetGameState(ctx, game.ID, stateJSON, next.StateVersion); err != nil {
		return fmt.Errorf("cache state: %w", err)
	}

	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	if _, err := s.actionRepo.Append(ctx, game.ID, userID, next.StateVersion, actionJSON, eventsJSON); err != nil {
		return err
	}

	s.broadcast.BroadcastGameEvent(game.ID, "action_applied", map[string]any{
		"user_id":       userID,
		"state_version": next.StateVersion,
		"events":        events,
		"view":          risk.NewSpectatorView(next),
	})

	for _, ev := range events {
		if ev.Type != risk.EventGameEnded {
			continue
		}
		ended, _ := ev.Data.(risk.GameEnded)
		winner := string(ended.Winner)
		if winner == "" {
			winner = string(ended.WinningTeam)
		}
		if err := s.gameRepo.SetFinished(ctx, game.ID, winner); err != nil {
			log.Error().Err(err).Str("gameId", game.ID).Msg("Failed to mark game finished")
			return err
		}
		s.broadcast.BroadcastGameEvent(game.ID, "game_ended", ev.Data)
	}
	return nil
}
