package account

import (
	"context"
	"database/sql"
	"time"

	"deluxeblackjack-server/pkg/blackjack"
	"deluxeblackjack-server/pkg/db"
	"deluxeblackjack-server/pkg/deck"

	"github.com/google/uuid"
)

const matchColumns = `
match_history.uuid,
match_history.user_id,
match_history.result,
match_history.bet,
match_history.payout,
match_history.player_cards,
match_history.dealer_cards,
match_history.created`

// Match is one settled hand, a row in the `match_history` table.
// Cards are stored in the compact string form.
type Match struct {
	UUID        string           `json:"uuid"`
	UserID      int64            `json:"userId"`
	Result      blackjack.Result `json:"result"`
	Bet         int              `json:"bet"`
	Payout      int              `json:"payout"`
	PlayerCards string           `json:"playerCards"`
	DealerCards string           `json:"dealerCards"`
	Created     time.Time        `json:"created"`
}

func getMatchByRow(row db.Scanner) (*Match, error) {
	var m Match
	if err := row.Scan(&m.UUID, &m.UserID, &m.Result, &m.Bet, &m.Payout, &m.PlayerCards, &m.DealerCards, &m.Created); err != nil {
		return nil, err
	}

	return &m, nil
}

// AppendMatch records one settled hand
func AppendMatch(ctx context.Context, userID int64, res *blackjack.HandResult, playerCards, dealerCards []*deck.Card) (*Match, error) {
	const query = `
INSERT INTO match_history (uuid, user_id, result, bet, payout, player_cards, dealer_cards)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + matchColumns

	row := db.Instance().QueryRowContext(ctx, query, uuid.New().String(), userID, string(res.Result), res.Bet, res.Payout,
		deck.CardsToString(playerCards), deck.CardsToString(dealerCards))

	return getMatchByRow(row)
}

// GetMatchHistory returns the user's settled hands, most recent first
func GetMatchHistory(ctx context.Context, userID int64, offset int64, limit int) ([]*Match, error) {
	const query = `
SELECT ` + matchColumns + `
FROM match_history
WHERE user_id = $1
ORDER BY match_history.id DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return getMatches(rows)
}

func getMatches(rows *sql.Rows) ([]*Match, error) {
	matches := make([]*Match, 0)
	for rows.Next() {
		match, err := getMatchByRow(rows)
		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// ClearMatchHistory deletes the user's settled hands
func ClearMatchHistory(ctx context.Context, userID int64) error {
	const query = `
DELETE FROM match_history
WHERE user_id = $1`

	_, err := db.Instance().ExecContext(ctx, query, userID)
	return err
}
