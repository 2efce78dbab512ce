package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/daives01/risk-sub002/internal/model"
	"github.com/daives01/risk-sub002/pkg/risk"
)

// RecoverActiveGames rehydrates Redis from the Postgres action log after a
// restart. The engine is deterministic, so replaying a game's records in
// order reconstructs its exact live state.
func (s *ActionService) RecoverActiveGames(ctx context.Context) error {
	games, err := s.gameRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	recovered := 0
	for i := range games {
		game := &games[i]
		_, ok, err := s.cache.GetStateVersion(ctx, game.ID)
		if err != nil {
			return err
		}
		if ok {
			continue
		}

		gs, err := s.replayGame(ctx, game)
		if err != nil {
			log.Error().Err(err).Str("gameId", game.ID).Msg("Failed to replay game")
			continue
		}

		stateJSON, err := json.Marshal(gs)
		if err != nil {
			return fmt.Errorf("marshal replayed state: %w", err)
		}
		if err := s.cache.SetGameState(ctx, game.ID, stateJSON, gs.StateVersion); err != nil {
			return err
		}
		recovered++
		log.Info().Str("gameId", game.ID).Int("stateVersion", gs.StateVersion).Msg("Recovered game state from action log")
	}

	if recovered > 0 {
		log.Info().Int("count", recovered).Msg("Game state recovery complete")
	}
	return nil
}

// replayGame rebuilds a game's live state from its action log. The first
// record carries the setup seed; every later record is re-applied through
// the engine.
func (s *ActionService) replayGame(ctx context.Context, game *model.Game) (*risk.GameState, error) {
	records, err := s.actionRepo.ListByGame(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no action records for game %s", game.ID)
	}

	var start struct {
		Type string `json:"type"`
		Seed string `json:"seed"`
	}
	if err := json.Unmarshal(records[0].Action, &start); err != nil || start.Type != "startGame" || start.Seed == "" {
		return nil, fmt.Errorf("first record is not a valid start record")
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

	gs, _, err := risk.NewGame(seats, m, rs, start.Seed)
	if err != nil {
		return nil, fmt.Errorf("rebuild initial state: %w", err)
	}

	for _, rec := range records[1:] {
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(rec.Action, &probe); err != nil {
			return nil, fmt.Errorf("decode action at version %d: %w", rec.StateVersion, err)
		}

		if probe.Type == "resign" {
			gs, _, err = risk.Resign(gs, risk.PlayerID(rec.UserID), m, rs)
		} else {
			var action risk.Action
			if err := json.Unmarshal(rec.Action, &action); err != nil {
				return nil, fmt.Errorf("decode action at version %d: %w", rec.StateVersion, err)
			}
			gs, _, err = risk.ApplyAction(gs, risk.PlayerID(rec.UserID), action, m, rs)
		}
		if err != nil {
			return nil, fmt.Errorf("replay action at version %d: %w", rec.StateVersion, err)
		}
		if gs.StateVersion != rec.StateVersion {
			return nil, fmt.Errorf("replay diverged: got version %d, record says %d", gs.StateVersion, rec.StateVersion)
		}
	}
	return gs, nil
}
