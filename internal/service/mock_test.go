package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/daives01/risk-sub002/internal/model"
)

type mockGameRepo struct {
	games   map[string]*model.Game
	players map[string][]model.GamePlayer
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{
		games:   make(map[string]*model.Game),
		players: make(map[string][]model.GamePlayer),
	}
}

func (m *mockGameRepo) Create(_ context.Context, name, creatorID, mapID string, maxPlayers int, ruleset json.RawMessage) (*model.Game, error) {
	g := &model.Game{
		ID:         fmt.Sprintf("game-%d", len(m.games)+1),
		Name:       name,
		CreatorID:  creatorID,
		Status:     "waiting",
		MapID:      mapID,
		MaxPlayers: maxPlayers,
		Ruleset:    ruleset,
		CreatedAt:  time.Now(),
	}
	m.games[g.ID] = g
	return g, nil
}

func (m *mockGameRepo) FindByID(_ context.Context, id string) (*model.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	cp.Players = m.players[id]
	return &cp, nil
}

func (m *mockGameRepo) ListOpen(_ context.Context) ([]model.Game, error) {
	return m.listByStatus("waiting"), nil
}

func (m *mockGameRepo) ListActive(_ context.Context) ([]model.Game, error) {
	games := m.listByStatus("active")
	for i := range games {
		games[i].Players = m.players[games[i].ID]
	}
	return games, nil
}

func (m *mockGameRepo) ListFinished(_ context.Context) ([]model.Game, error) {
	return m.listByStatus("finished"), nil
}

func (m *mockGameRepo) listByStatus(status string) []model.Game {
	var result []model.Game
	for _, g := range m.games {
		if g.Status == status {
			result = append(result, *g)
		}
	}
	return result
}

func (m *mockGameRepo) ListByUser(_ context.Context, userID string) ([]model.Game, error) {
	seen := make(map[string]bool)
	var result []model.Game
	for gameID, players := range m.players {
		for _, p := range players {
			if p.UserID == userID && !seen[gameID] {
				if g, ok := m.games[gameID]; ok {
					result = append(result, *g)
					seen[gameID] = true
				}
			}
		}
	}
	return result, nil
}

func (m *mockGameRepo) JoinGame(_ context.Context, gameID, userID, team string) error {
	m.players[gameID] = append(m.players[gameID], model.GamePlayer{
		GameID:   gameID,
		UserID:   userID,
		Team:     team,
		JoinedAt: time.Now(),
	})
	return nil
}

func (m *mockGameRepo) ListPlayers(_ context.Context, gameID string) ([]model.GamePlayer, error) {
	return m.players[gameID], nil
}

func (m *mockGameRepo) PlayerCount(_ context.Context, gameID string) (int, error) {
	return len(m.players[gameID]), nil
}

func (m *mockGameRepo) SetActive(_ context.Context, gameID string) error {
	if g, ok := m.games[gameID]; ok {
		g.Status = "active"
		now := time.Now()
		g.StartedAt = &now
	}
	return nil
}

func (m *mockGameRepo) SetFinished(_ context.Context, gameID, winner string) error {
	if g, ok := m.games[gameID]; ok {
		g.Status = "finished"
		g.Winner = winner
		now := time.Now()
		g.FinishedAt = &now
	}
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, gameID string) error {
	delete(m.games, gameID)
	delete(m.players, gameID)
	return nil
}

type mockActionRepo struct {
	records map[string][]model.ActionRecord
}

func newMockActionRepo() *mockActionRepo {
	return &mockActionRepo{records: make(map[string][]model.ActionRecord)}
}

func (m *mockActionRepo) Append(_ context.Context, gameID, userID string, stateVersion int, action, events json.RawMessage) (*model.ActionRecord, error) {
	for _, rec := range m.records[gameID] {
		if rec.StateVersion == stateVersion {
			return nil, fmt.Errorf("duplicate state_version %d for game %s", stateVersion, gameID)
		}
	}
	rec := model.ActionRecord{
		ID:           fmt.Sprintf("action-%d", len(m.records[gameID])+1),
		GameID:       gameID,
		UserID:       userID,
		StateVersion: stateVersion,
		Action:       action,
		Events:       events,
		CreatedAt:    time.Now(),
	}
	m.records[gameID] = append(m.records[gameID], rec)
	return &rec, nil
}

func (m *mockActionRepo) ListByGame(_ context.Context, gameID string) ([]model.ActionRecord, error) {
	return m.records[gameID], nil
}

func (m *mockActionRepo) LatestVersion(_ context.Context, gameID string) (int, error) {
	latest := 0
	for _, rec := range m.records[gameID] {
		if rec.StateVersion > latest {
			latest = rec.StateVersion
		}
	}
	return latest, nil
}

type mockCache struct {
	states   map[string]json.RawMessage
	versions map[string]int
}

func newMockCache() *mockCache {
	return &mockCache{
		states:   make(map[string]json.RawMessage),
		versions: make(map[string]int),
	}
}

func (m *mockCache) SetGameState(_ context.Context, gameID string, state json.RawMessage, stateVersion int) error {
	m.states[gameID] = state
	m.versions[gameID] = stateVersion
	return nil
}

func (m *mockCache) GetGameState(_ context.Context, gameID string) (json.RawMessage, error) {
	state, ok := m.states[gameID]
	if !ok {
		return nil, nil
	}
	return state, nil
}

func (m *mockCache) GetStateVersion(_ context.Context, gameID string) (int, bool, error) {
	v, ok := m.versions[gameID]
	return v, ok, nil
}

func (m *mockCache) DeleteGameData(_ context.Context, gameID string) error {
	delete(m.states, gameID)
	delete(m.versions, gameID)
	return nil
}

type broadcastEvent struct {
	GameID string
	Type   string
	Data   any
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (m *mockBroadcaster) BroadcastGameEvent(gameID string, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{GameID: gameID, Type: eventType, Data: data})
}

func (m *mockBroadcaster) eventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, ev := range m.events {
		types[i] = ev.Type
	}
	return types
}
