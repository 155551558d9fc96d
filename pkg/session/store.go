package session

import (
	"context"

	"deluxeblackjack-server/pkg/account"
	"deluxeblackjack-server/pkg/blackjack"
	"deluxeblackjack-server/pkg/deck"
)

// Store persists the side effects of a session: the saved game blob, the
// player's balance, and the per-hand stats and history rows
type Store interface {
	SaveGameState(ctx context.Context, userID int64, state []byte) error
	GetGameState(ctx context.Context, userID int64) ([]byte, error)
	DeleteGameState(ctx context.Context, userID int64) error
	Balance(ctx context.Context, userID int64) (int, error)
	SetBalance(ctx context.Context, userID int64, balance int) error
	RecordResult(ctx context.Context, userID int64, res *blackjack.HandResult) error
	AppendMatch(ctx context.Context, userID int64, res *blackjack.HandResult, playerCards, dealerCards []*deck.Card) error
	SavedOptions(ctx context.Context, userID int64) (*blackjack.Options, error)
}

// AccountStore is the Store backed by the account package
type AccountStore struct{}

// SaveGameState persists the serialized game
func (AccountStore) SaveGameState(ctx context.Context, userID int64, state []byte) error {
	return account.SaveGameState(ctx, userID, state)
}

// GetGameState loads the serialized game
func (AccountStore) GetGameState(ctx context.Context, userID int64) ([]byte, error) {
	return account.GetGameState(ctx, userID)
}

// DeleteGameState removes the serialized game
func (AccountStore) DeleteGameState(ctx context.Context, userID int64) error {
	return account.DeleteGameState(ctx, userID)
}

// Balance returns the stored balance
func (AccountStore) Balance(ctx context.Context, userID int64) (int, error) {
	user, err := account.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	return user.Balance, nil
}

// SetBalance stores the post-round balance
func (AccountStore) SetBalance(ctx context.Context, userID int64, balance int) error {
	user, err := account.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	return user.SetBalance(ctx, balance)
}

// RecordResult folds a settled hand into the user's stats
func (AccountStore) RecordResult(ctx context.Context, userID int64, res *blackjack.HandResult) error {
	return account.RecordResult(ctx, userID, res)
}

// AppendMatch records a settled hand in the match history
func (AccountStore) AppendMatch(ctx context.Context, userID int64, res *blackjack.HandResult, playerCards, dealerCards []*deck.Card) error {
	_, err := account.AppendMatch(ctx, userID, res, playerCards, dealerCards)
	return err
}

// SavedOptions returns the user's saved house rules, or nil if the user
// has never saved any
func (AccountStore) SavedOptions(ctx context.Context, userID int64) (*blackjack.Options, error) {
	settings, err := account.GetSavedSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		return nil, nil
	}

	opts := settings.Options()
	return &opts, nil
}
