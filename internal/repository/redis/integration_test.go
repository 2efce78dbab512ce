//go:build integration

package redis

import (
	"context"
	"encoding/json"
	"testing"

	goredis "github.com/redis/go-redis/v9"

	"github.com/daives01/risk-sub002/internal/testutil"
)

var testRDB *goredis.Client

func setup(t *testing.T) *Client {
	t.Helper()
	if testRDB == nil {
		testRDB = testutil.SetupRedis(t)
	}
	testutil.CleanupRedis(t, testRDB)
	return &Client{rdb: testRDB}
}

func TestGameStateRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	gameID := "test-game-1"

	state := json.RawMessage(`{"stateVersion":7,"turn":{"player":"alice","phase":"attack"}}`)

	if err := c.SetGameState(ctx, gameID, state, 7); err != nil {
		t.Fatalf("set game state: %v", err)
	}

	got, err := c.GetGameState(ctx, gameID)
	if err != nil {
		t.Fatalf("get game state: %v", err)
	}
	if got == nil {
		t.Fatal("expected non-nil state")
	}

	var fetched map[string]any
	json.Unmarshal(got, &fetched)
	if fetched["stateVersion"].(float64) != 7 {
		t.Fatalf("state round-trip failed: %s", string(got))
	}

	version, ok, err := c.GetStateVersion(ctx, gameID)
	if err != nil {
		t.Fatalf("get version: %v", err)
	}
	if !ok || version != 7 {
		t.Fatalf("version = %d, ok = %v, want 7 true", version, ok)
	}
}

func TestGameStateNotFound(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	got, err := c.GetGameState(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("get missing state: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing game state")
	}

	_, ok, err := c.GetStateVersion(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("get missing version: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing version")
	}
}

func TestGameStateVersionTracksWrites(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	gameID := "test-game-2"

	for v := 1; v <= 3; v++ {
		state := json.RawMessage(`{"stateVersion":` + string(rune('0'+v)) + `}`)
		if err := c.SetGameState(ctx, gameID, state, v); err != nil {
			t.Fatalf("set version %d: %v", v, err)
		}
		version, ok, err := c.GetStateVersion(ctx, gameID)
		if err != nil || !ok {
			t.Fatalf("get version %d: %v ok=%v", v, err, ok)
		}
		if version != v {
			t.Fatalf("version = %d, want %d", version, v)
		}
	}
}

func TestDeleteGameData(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	gameID := "test-game-3"

	c.SetGameState(ctx, gameID, json.RawMessage(`{"stateVersion":1}`), 1)

	if err := c.DeleteGameData(ctx, gameID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ := c.GetGameState(ctx, gameID)
	if got != nil {
		t.Fatal("expected state gone after delete")
	}
	_, ok, _ := c.GetStateVersion(ctx, gameID)
	if ok {
		t.Fatal("expected version gone after delete")
	}
}
