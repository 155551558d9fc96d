package account

import (
	"context"
	"database/sql"
	"time"

	"deluxeblackjack-server/pkg/blackjack"
	"deluxeblackjack-server/pkg/db"
)

const statsColumns = `
game_stats.user_id,
game_stats.hands_played,
game_stats.wins,
game_stats.losses,
game_stats.pushes,
game_stats.blackjacks,
game_stats.profit,
game_stats.updated`

// Stats is a user's lifetime record, a row in the `game_stats` table
type Stats struct {
	UserID      int64     `json:"userId"`
	HandsPlayed int       `json:"handsPlayed"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Pushes      int       `json:"pushes"`
	Blackjacks  int       `json:"blackjacks"`
	Profit      int       `json:"profit"`
	Updated     time.Time `json:"updated"`
}

// WinRate returns the fraction of settled hands won, blackjacks included
func (s *Stats) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}

	return float64(s.Wins+s.Blackjacks) / float64(s.HandsPlayed)
}

func getStatsByRow(row db.Scanner) (*Stats, error) {
	var s Stats
	if err := row.Scan(&s.UserID, &s.HandsPlayed, &s.Wins, &s.Losses, &s.Pushes, &s.Blackjacks, &s.Profit, &s.Updated); err != nil {
		return nil, err
	}

	return &s, nil
}

// GetStats returns the user's stats, zeroed if they have never played
func GetStats(ctx context.Context, userID int64) (*Stats, error) {
	const query = `
SELECT ` + statsColumns + `
FROM game_stats
WHERE user_id = $1`

	row := db.Instance().QueryRowContext(ctx, query, userID)
	s, err := getStatsByRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return &Stats{UserID: userID}, nil
		}

		return nil, err
	}

	return s, nil
}

// RecordResult folds one settled hand into the user's stats
func RecordResult(ctx context.Context, userID int64, res *blackjack.HandResult) error {
	wins, losses, pushes, blackjacks := 0, 0, 0, 0
	switch res.Result {
	case blackjack.ResultWin:
		wins = 1
	case blackjack.ResultLose:
		losses = 1
	case blackjack.ResultPush:
		pushes = 1
	case blackjack.ResultBlackjack:
		blackjacks = 1
	}

	const query = `
INSERT INTO game_stats (user_id, hands_played, wins, losses, pushes, blackjacks, profit)
VALUES ($1, 1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id) DO UPDATE
SET hands_played = game_stats.hands_played + 1,
    wins = game_stats.wins + EXCLUDED.wins,
    losses = game_stats.losses + EXCLUDED.losses,
    pushes = game_stats.pushes + EXCLUDED.pushes,
    blackjacks = game_stats.blackjacks + EXCLUDED.blackjacks,
    profit = game_stats.profit + EXCLUDED.profit,
    updated = (NOW() AT TIME ZONE 'UTC')`

	_, err := db.Instance().ExecContext(ctx, query, userID, wins, losses, pushes, blackjacks, res.Profit())
	return err
}

// ResetStats wipes the user's record
func ResetStats(ctx context.Context, userID int64) error {
	const query = `
DELETE FROM game_stats
WHERE user_id = $1`

	_, err := db.Instance().ExecContext(ctx, query, userID)
	return err
}
