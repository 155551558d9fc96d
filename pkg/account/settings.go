package account

import (
	"context"
	"database/sql"
	"time"

	"deluxeblackjack-server/pkg/blackjack"
	"deluxeblackjack-server/pkg/db"
)

const settingsColumns = `
game_settings.user_id,
game_settings.deck_count,
game_settings.blackjack_payout,
game_settings.dealer_stands_on_soft_17,
game_settings.allow_surrender,
game_settings.allow_double_after_split,
game_settings.minimum_bet,
game_settings.maximum_bet,
game_settings.auto_stand_on_21,
game_settings.keep_bet_between_rounds,
game_settings.updated`

// Settings is a user's house rules, a record in the `game_settings` table.
// A user without a record plays with the defaults.
type Settings struct {
	UserID                int64     `json:"userId"`
	DeckCount             int       `json:"deckCount"`
	BlackjackPayout       float64   `json:"blackjackPayout"`
	DealerStandsOnSoft17  bool      `json:"dealerStandsOnSoft17"`
	AllowSurrender        bool      `json:"allowSurrender"`
	AllowDoubleAfterSplit bool      `json:"allowDoubleAfterSplit"`
	MinimumBet            int       `json:"minimumBet"`
	MaximumBet            int       `json:"maximumBet"`
	AutoStandOn21         bool      `json:"autoStandOn21"`
	KeepBetBetweenRounds  bool      `json:"keepBetBetweenRounds"`
	Updated               time.Time `json:"updated"`
}

// DefaultSettings returns the default house rules for the user
func DefaultSettings(userID int64) *Settings {
	opts := blackjack.DefaultOptions()
	return &Settings{
		UserID:                userID,
		DeckCount:             opts.DeckCount,
		BlackjackPayout:       opts.BlackjackPayout,
		DealerStandsOnSoft17:  opts.DealerStandsOnSoft17,
		AllowSurrender:        opts.AllowSurrender,
		AllowDoubleAfterSplit: opts.AllowDoubleAfterSplit,
		MinimumBet:            opts.MinimumBet,
		MaximumBet:            opts.MaximumBet,
		AutoStandOn21:         opts.AutoStandOn21,
		KeepBetBetweenRounds:  opts.KeepBetBetweenRounds,
	}
}

// Options converts the stored settings into engine options
func (s *Settings) Options() blackjack.Options {
	return blackjack.Options{
		DeckCount:             s.DeckCount,
		BlackjackPayout:       s.BlackjackPayout,
		DealerStandsOnSoft17:  s.DealerStandsOnSoft17,
		AllowSurrender:        s.AllowSurrender,
		AllowDoubleAfterSplit: s.AllowDoubleAfterSplit,
		MinimumBet:            s.MinimumBet,
		MaximumBet:            s.MaximumBet,
		AutoStandOn21:         s.AutoStandOn21,
		KeepBetBetweenRounds:  s.KeepBetBetweenRounds,
	}
}

func getSettingsByRow(row db.Scanner) (*Settings, error) {
	var s Settings
	if err := row.Scan(&s.UserID, &s.DeckCount, &s.BlackjackPayout, &s.DealerStandsOnSoft17, &s.AllowSurrender,
		&s.AllowDoubleAfterSplit, &s.MinimumBet, &s.MaximumBet, &s.AutoStandOn21, &s.KeepBetBetweenRounds, &s.Updated); err != nil {
		return nil, err
	}

	return &s, nil
}

// GetSavedSettings returns the user's saved house rules, or nil if the
// user has never saved any
func GetSavedSettings(ctx context.Context, userID int64) (*Settings, error) {
	const query = `
SELECT ` + settingsColumns + `
FROM game_settings
WHERE user_id = $1`

	row := db.Instance().QueryRowContext(ctx, query, userID)
	s, err := getSettingsByRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return s, nil
}

// GetSettings returns the user's house rules, falling back to the defaults
// if the user has never saved any
func GetSettings(ctx context.Context, userID int64) (*Settings, error) {
	s, err := GetSavedSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s == nil {
		return DefaultSettings(userID), nil
	}

	return s, nil
}

// Save upserts the user's house rules
func (s *Settings) Save(ctx context.Context) error {
	const query = `
INSERT INTO game_settings (user_id, deck_count, blackjack_payout, dealer_stands_on_soft_17, allow_surrender,
	allow_double_after_split, minimum_bet, maximum_bet, auto_stand_on_21, keep_bet_between_rounds)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE
SET deck_count = EXCLUDED.deck_count,
    blackjack_payout = EXCLUDED.blackjack_payout,
    dealer_stands_on_soft_17 = EXCLUDED.dealer_stands_on_soft_17,
    allow_surrender = EXCLUDED.allow_surrender,
    allow_double_after_split = EXCLUDED.allow_double_after_split,
    minimum_bet = EXCLUDED.minimum_bet,
    maximum_bet = EXCLUDED.maximum_bet,
    auto_stand_on_21 = EXCLUDED.auto_stand_on_21,
    keep_bet_between_rounds = EXCLUDED.keep_bet_between_rounds,
    updated = (NOW() AT TIME ZONE 'UTC')
RETURNING updated`

	row := db.Instance().QueryRowContext(ctx, query, s.UserID, s.DeckCount, s.BlackjackPayout, s.DealerStandsOnSoft17,
		s.AllowSurrender, s.AllowDoubleAfterSplit, s.MinimumBet, s.MaximumBet, s.AutoStandOn21, s.KeepBetBetweenRounds)

	return row.Scan(&s.Updated)
}

// Validate ensures the settings can build a playable game
func (s *Settings) Validate() error {
	if s.DeckCount < 1 || s.DeckCount > 8 {
		return UserError("deck count must be between 1 and 8")
	}

	if s.BlackjackPayout <= 0 {
		return UserError("blackjack payout must be positive")
	}

	if s.MinimumBet <= 0 || s.MaximumBet < s.MinimumBet {
		return UserError("invalid bet limits")
	}

	return nil
}
