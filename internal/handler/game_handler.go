package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/daives01/risk-sub002/internal/auth"
	"github.com/daives01/risk-sub002/internal/service"
	"github.com/daives01/risk-sub002/pkg/risk"
)

// GameHandler handles game lifecycle and gameplay endpoints.
type GameHandler struct {
	gameSvc   *service.GameService
	actionSvc *service.ActionService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(gameSvc *service.GameService, actionSvc *service.ActionService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc, actionSvc: actionSvc}
}

// CreateGame handles POST /api/v1/games
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	var req struct {
		Name       string          `json:"name"`
		MapID      string          `json:"map_id,omitempty"`
		MaxPlayers int             `json:"max_players,omitempty"`
		Ruleset    json.RawMessage `json:"ruleset,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	game, err := h.gameSvc.CreateGame(r.Context(), req.Name, userID, req.MapID, req.MaxPlayers, req.Ruleset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownMap) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// ListGames handles GET /api/v1/games
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	filter := r.URL.Query().Get("filter")
	games, err := h.gameSvc.ListGames(r.Context(), userID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if games == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// GetGame handles GET /api/v1/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	game, err := h.gameSvc.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// JoinGame handles POST /api/v1/games/{id}/join
func (h *GameHandler) JoinGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	var req struct {
		Team string `json:"team,omitempty"`
	}
	// Body is optional; a missing or empty body means no team.
	_ = decodeJSON(r, &req)

	if err := h.gameSvc.JoinGame(r.Context(), gameID, userID, req.Team); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, service.ErrGameFull) || errors.Is(err, service.ErrGameNotWaiting) || errors.Is(err, service.ErrAlreadyJoined) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

// StartGame handles POST /api/v1/games/{id}/start
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	game, err := h.gameSvc.StartGame(r.Context(), gameID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, service.ErrNotCreator) {
			status = http.StatusForbidden
		} else if errors.Is(err, service.ErrNotEnough) || errors.Is(err, service.ErrGameNotWaiting) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// DeleteGame handles DELETE /api/v1/games/{id}
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	if err := h.gameSvc.DeleteGame(r.Context(), gameID, userID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, service.ErrGameNotWaiting) {
			status = http.StatusBadRequest
		} else if errors.Is(err, service.ErrNotCreator) {
			status = http.StatusForbidden
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetState handles GET /api/v1/games/{id}/state
// Players get their own view (hand included); everyone else gets the
// spectator view.
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	view, err := h.actionSvc.State(r.Context(), gameID, userID)
	if err != nil {
		writeError(w, gameplayErrStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// LegalActions handles GET /api/v1/games/{id}/actions/legal
func (h *GameHandler) LegalActions(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	actions, err := h.actionSvc.LegalActions(r.Context(), gameID, userID)
	if err != nil {
		writeError(w, gameplayErrStatus(err), err.Error())
		return
	}
	if actions == nil {
		actions = []risk.Action{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": actions})
}

// SubmitAction handles POST /api/v1/games/{id}/actions
func (h *GameHandler) SubmitAction(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	var req struct {
		ExpectedVersion *int        `json:"expected_version,omitempty"`
		Action          risk.Action `json:"action"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action.Type == "" {
		writeError(w, http.StatusBadRequest, "action.type is required")
		return
	}
	expected := -1
	if req.ExpectedVersion != nil {
		expected = *req.ExpectedVersion
	}

	result, err := h.actionSvc.SubmitAction(r.Context(), gameID, userID, expected, req.Action)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Resign handles POST /api/v1/games/{id}/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	result, err := h.actionSvc.Resign(r.Context(), gameID, userID)
	if err != nil {
		h.writeActionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// History handles GET /api/v1/games/{id}/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	records, err := h.actionSvc.History(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// writeActionError maps gameplay errors to HTTP statuses. Rule violations get
// 422 with the engine's error kind so clients can show a precise message.
func (h *GameHandler) writeActionError(w http.ResponseWriter, err error) {
	var ruleErr *risk.RuleError
	if errors.As(err, &ruleErr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": ruleErr.Message,
			"kind":  string(ruleErr.Kind),
		})
		return
	}
	if errors.Is(err, service.ErrVersionConflict) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeError(w, gameplayErrStatus(err), err.Error())
}

func gameplayErrStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGameNotActive), errors.Is(err, service.ErrStateMissing):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotInGame):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
