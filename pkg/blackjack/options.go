package blackjack

// Options contains the house rules for a round of blackjack.
// Options are immutable for the duration of a round; the caller supplies a
// fresh set when a new game is created.
type Options struct {
	// DeckCount is the number of 52-card decks in the shoe
	DeckCount int `json:"deckCount"`

	// BlackjackPayout is the multiplier paid on a natural blackjack (1.5 is 3:2)
	BlackjackPayout float64 `json:"blackjackPayout"`

	// DealerStandsOnSoft17 controls whether the dealer stands or hits a soft 17
	DealerStandsOnSoft17 bool `json:"dealerStandsOnSoft17"`

	// AllowSurrender is reserved; the surrender action is not implemented
	AllowSurrender bool `json:"allowSurrender"`

	// AllowDoubleAfterSplit controls whether a split hand may double down
	AllowDoubleAfterSplit bool `json:"allowDoubleAfterSplit"`

	MinimumBet int `json:"minimumBet"`
	MaximumBet int `json:"maximumBet"`

	// AutoStandOn21 automatically stands a hand that hits to exactly 21
	AutoStandOn21 bool `json:"autoStandOn21"`

	// KeepBetBetweenRounds carries the previous bet into the next round as a suggestion
	KeepBetBetweenRounds bool `json:"keepBetBetweenRounds"`
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		DeckCount:             6,
		BlackjackPayout:       1.5,
		DealerStandsOnSoft17:  true,
		AllowSurrender:        true,
		AllowDoubleAfterSplit: true,
		MinimumBet:            5,
		MaximumBet:            1000,
		AutoStandOn21:         true,
		KeepBetBetweenRounds:  true,
	}
}
