package model

import (
	"encoding/json"
	"time"
)

// User represents a registered user.
type User struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"provider_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Game represents a hosted Risk game.
type Game struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CreatorID  string          `json:"creator_id"`
	Status     string          `json:"status"` // waiting, active, finished
	Winner     string          `json:"winner,omitempty"`
	MapID      string          `json:"map_id"`
	MaxPlayers int             `json:"max_players"`
	Ruleset    json.RawMessage `json:"ruleset"`
	CreatedAt  time.Time       `json:"created_at"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	Players    []GamePlayer    `json:"players,omitempty"`
}

// GamePlayer represents a player's membership in a game.
type GamePlayer struct {
	GameID   string    `json:"game_id"`
	UserID   string    `json:"user_id"`
	Team     string    `json:"team,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// ActionRecord is one accepted engine action in a game's durable history.
// StateVersion is the version of the state the action produced; replaying the
// records in order reconstructs the game.
type ActionRecord struct {
	ID           string          `json:"id"`
	GameID       string          `json:"game_id"`
	UserID       string          `json:"user_id"`
	StateVersion int             `json:"state_version"`
	Action       json.RawMessage `json:"action"`
	Events       json.RawMessage `json:"events"`
	CreatedAt    time.Time       `json:"created_at"`
}
