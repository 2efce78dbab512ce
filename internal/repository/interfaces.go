package repository

import (
	"context"
	"encoding/json"

	"github.com/daives01/risk-sub002/internal/model"
)

// UserRepository defines user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByProviderID(ctx context.Context, provider, providerID string) (*model.User, error)
	Upsert(ctx context.Context, provider, providerID, displayName, avatarURL string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
}

// GameRepository defines game and player data operations.
type GameRepository interface {
	Create(ctx context.Context, name, creatorID, mapID string, maxPlayers int, ruleset json.RawMessage) (*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	ListOpen(ctx context.Context) ([]model.Game, error)
	ListByUser(ctx context.Context, userID string) ([]model.Game, error)
	ListActive(ctx context.Context) ([]model.Game, error)
	ListFinished(ctx context.Context) ([]model.Game, error)
	JoinGame(ctx context.Context, gameID, userID, team string) error
	ListPlayers(ctx context.Context, gameID string) ([]model.GamePlayer, error)
	PlayerCount(ctx context.Context, gameID string) (int, error)
	SetActive(ctx context.Context, gameID string) error
	SetFinished(ctx context.Context, gameID, winner string) error
	Delete(ctx context.Context, gameID string) error
}

// ActionRepository defines the durable per-game action log.
type ActionRepository interface {
	Append(ctx context.Context, gameID, userID string, stateVersion int, action, events json.RawMessage) (*model.ActionRecord, error)
	ListByGame(ctx context.Context, gameID string) ([]model.ActionRecord, error)
	LatestVersion(ctx context.Context, gameID string) (int, error)
}

// GameCache defines live game state operations (Redis). The authoritative
// engine state lives here while a game is active; its stateVersion is stored
// alongside for optimistic-concurrency checks without deserializing.
type GameCache interface {
	SetGameState(ctx context.Context, gameID string, state json.RawMessage, stateVersion int) error
	GetGameState(ctx context.Context, gameID string) (json.RawMessage, error)
	GetStateVersion(ctx context.Context, gameID string) (int, bool, error)
	DeleteGameData(ctx context.Context, gameID string) error
}
