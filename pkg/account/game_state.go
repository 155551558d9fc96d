package account

import (
	"context"
	"database/sql"

	"deluxeblackjack-server/pkg/db"
)

// SaveGameState upserts the user's serialized in-progress game so a
// session can resume it later
func SaveGameState(ctx context.Context, userID int64, state []byte) error {
	const query = `
INSERT INTO game_state (user_id, state)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE
SET state = EXCLUDED.state, updated = (NOW() AT TIME ZONE 'UTC')`

	_, err := db.Instance().ExecContext(ctx, query, userID, state)
	return err
}

// GetGameState returns the user's saved game, or nil if there isn't one
func GetGameState(ctx context.Context, userID int64) ([]byte, error) {
	const query = `
SELECT state
FROM game_state
WHERE user_id = $1`

	var state []byte
	if err := db.Instance().QueryRowContext(ctx, query, userID).Scan(&state); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return state, nil
}

// DeleteGameState removes the user's saved game
func DeleteGameState(ctx context.Context, userID int64) error {
	const query = `
DELETE FROM game_state
WHERE user_id = $1`

	_, err := db.Instance().ExecContext(ctx, query, userID)
	return err
}
