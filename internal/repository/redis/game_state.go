package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Key patterns for Redis game state.
func stateKey(gameID string) string   { return "game:" + gameID + ":state" }
func versionKey(gameID string) string { return "game:" + gameID + ":version" }

// SetGameState stores the live game state JSON and its version. The version
// is kept in a separate key so optimistic-concurrency checks can read it
// without pulling the full state.
func (c *Client) SetGameState(ctx context.Context, gameID string, state json.RawMessage, stateVersion int) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, stateKey(gameID), []byte(state), 0)
	pipe.Set(ctx, versionKey(gameID), stateVersion, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set game state: %w", err)
	}
	return nil
}

// GetGameState retrieves the live game state JSON, or nil if absent.
func (c *Client) GetGameState(ctx context.Context, gameID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, stateKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	return json.RawMessage(data), nil
}

// GetStateVersion returns the stored state version and whether it exists.
func (c *Client) GetStateVersion(ctx context.Context, gameID string) (int, bool, error) {
	val, err := c.rdb.Get(ctx, versionKey(gameID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get state version: %w", err)
	}
	version, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("parse state version: %w", err)
	}
	return version, true, nil
}

// DeleteGameData removes all Redis data for a game (on game end).
func (c *Client) DeleteGameData(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, stateKey(gameID), versionKey(gameID)).Err()
}
