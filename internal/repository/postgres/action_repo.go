package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/daives01/risk-sub002/internal/model"
)

// ActionRepo handles the durable per-game action log.
type ActionRepo struct {
	db *sql.DB
}

// NewActionRepo creates an ActionRepo.
func NewActionRepo(db *sql.DB) *ActionRepo {
	return &ActionRepo{db: db}
}

// Append inserts one accepted action. The (game_id, state_version) unique
// constraint makes concurrent double-applies fail loudly instead of silently
// forking the history.
func (r *ActionRepo) Append(ctx context.Context, gameID, userID string, stateVersion int, action, events json.RawMessage) (*model.ActionRecord, error) {
	var rec model.ActionRecord
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO game_actions (game_id, user_id, state_version, action, events)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, game_id, user_id, state_version, action, events, created_at`,
		gameID, userID, stateVersion, []byte(action), []byte(events),
	).Scan(&rec.ID, &rec.GameID, &rec.UserID, &rec.StateVersion, &rec.Action, &rec.Events, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append action: %w", err)
	}
	return &rec, nil
}

// ListByGame returns a game's full action history in version order.
func (r *ActionRepo) ListByGame(ctx context.Context, gameID string) ([]model.ActionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, user_id, state_version, action, events, created_at
		 FROM game_actions WHERE game_id = $1 ORDER BY state_version`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer rows.Close()

	var records []model.ActionRecord
	for rows.Next() {
		var rec model.ActionRecord
		if err := rows.Scan(&rec.ID, &rec.GameID, &rec.UserID, &rec.StateVersion, &rec.Action, &rec.Events, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestVersion returns the highest recorded state version for a game, or 0
// when no actions have been recorded.
func (r *ActionRepo) LatestVersion(ctx context.Context, gameID string) (int, error) {
	var version sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(state_version) FROM game_actions WHERE game_id = $1`, gameID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("latest version: %w", err)
	}
	return int(version.Int64), nil
}
