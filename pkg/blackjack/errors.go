package blackjack

// UserError is an error that is safe to show to the player.
// A transition that returns a UserError leaves the game state unchanged
// except for the message field.
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// recoverable rejections
const (
	// ErrInvalidBet is returned when the bet is non-positive or exceeds the balance
	ErrInvalidBet = UserError("Invalid bet amount.")

	// ErrNotBettingPhase is returned when a bet is placed outside the betting phase
	ErrNotBettingPhase = UserError("You cannot place a bet right now.")

	// ErrNotPlayerTurn is returned for a player action outside the player's turn
	ErrNotPlayerTurn = UserError("It is not your turn.")

	// ErrNotDealt is returned for a hand action between the bet and the opening deal
	ErrNotDealt = UserError("The cards have not been dealt yet.")

	// ErrDoubleDownCardCount is returned when doubling on more than two cards
	ErrDoubleDownCardCount = UserError("Can only double down on first two cards.")

	// ErrDoubleDownBalance is returned when the balance cannot cover the doubled bet
	ErrDoubleDownBalance = UserError("Not enough balance to double down.")

	// ErrDoubleAfterSplit is returned when doubling a split hand is disallowed
	ErrDoubleAfterSplit = UserError("Doubling down after split is not allowed.")

	// ErrCannotSplit is returned when the hand is not a splittable pair
	ErrCannotSplit = UserError("This hand cannot be split.")

	// ErrSplitBalance is returned when the balance cannot cover the split bet
	ErrSplitBalance = UserError("Not enough balance to split.")

	// ErrRoundInProgress is returned when a new round is started mid-round
	ErrRoundInProgress = UserError("The round is still in progress.")
)
