package blackjack

import (
	"deluxeblackjack-server/pkg/deck"
	"deluxeblackjack-server/pkg/playable"
)

// State is the player-visible game state.
// The dealer's hole card is masked until DealerPlay reveals it; everything
// else is safe to send to the client.
type State struct {
	Dealer           *Hand         `json:"dealer"`
	DealerValue      int           `json:"dealerValue"`
	Hands            []*Hand       `json:"hands"`
	CurrentHandIndex int           `json:"currentHandIndex"`
	Phase            string        `json:"phase"`
	Message          string        `json:"message"`
	GameResult       Result        `json:"gameResult,omitempty"`
	HandResults      []*HandResult `json:"handResults,omitempty"`
	Balance          int           `json:"balance"`
	LastBet          int           `json:"lastBet"`
	CardsLeft        int           `json:"cardsLeft"`
	AvailableActions []Action      `json:"availableActions"`
}

func (g *Game) getState() *State {
	cardsLeft := 0
	if g.deck != nil {
		cardsLeft = g.deck.CardsLeft()
	}

	dealer := g.maskedDealerHand()
	dealerValue, _ := dealer.Value()

	return &State{
		Dealer:           dealer,
		DealerValue:      dealerValue,
		Hands:            g.hands,
		CurrentHandIndex: g.currentHandIndex,
		Phase:            g.phase.String(),
		Message:          g.message,
		GameResult:       g.result,
		HandResults:      g.handResults,
		Balance:          g.balance,
		LastBet:          g.lastBet,
		CardsLeft:        cardsLeft,
		AvailableActions: g.availableActions(),
	}
}

// maskedDealerHand hides the rank and suit of any face-down dealer card
func (g *Game) maskedDealerHand() *Hand {
	masked := *g.dealer
	masked.Cards = make([]*deck.Card, len(g.dealer.Cards))
	for i, card := range g.dealer.Cards {
		if card.FaceUp {
			masked.Cards[i] = card
		} else {
			masked.Cards[i] = &deck.Card{}
		}
	}

	// don't telegraph a dealer blackjack while the hole card is hidden
	if !allFaceUp(g.dealer.Cards) && g.phase != PhaseGameOver {
		masked.IsBlackjack = false
	}

	return &masked
}

func allFaceUp(cards []*deck.Card) bool {
	for _, card := range cards {
		if !card.FaceUp {
			return false
		}
	}

	return true
}

func (g *Game) availableActions() []Action {
	switch g.phase {
	case PhaseBetting:
		return []Action{ActionPlaceBet}
	case PhasePlayerTurn:
		if len(g.hands[g.currentHandIndex].Cards) == 0 {
			return []Action{ActionDeal}
		}

		hand := g.hands[g.currentHandIndex]
		actions := []Action{ActionHit, ActionStand}
		if hand.CanDoubleDown(g.balance, g.options) {
			actions = append(actions, ActionDoubleDown)
		}
		if hand.CanSplit() && g.balance >= hand.Bet {
			actions = append(actions, ActionSplit)
		}

		return actions
	case PhaseDealerTurn:
		return []Action{ActionDealerPlay}
	case PhaseEvaluating:
		return []Action{ActionEvaluate}
	case PhaseGameOver:
		return []Action{ActionNewRound}
	}

	return nil
}

// GetPlayerState returns the current state of the game for the player
func (g *Game) GetPlayerState() (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.getState(),
	}, nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Message returns the current player-facing message
func (g *Game) Message() string {
	return g.message
}

// Balance returns the player's current balance
func (g *Game) Balance() int {
	return g.balance
}

// LastBet returns the most recent bet, the suggested next bet when
// KeepBetBetweenRounds is enabled
func (g *Game) LastBet() int {
	return g.lastBet
}

// Result returns the round's aggregate result, empty for multi-hand rounds
func (g *Game) Result() Result {
	return g.result
}

// HandResults returns the structured per-hand settlement results, nil
// before the round has been settled
func (g *Game) HandResults() []*HandResult {
	return g.handResults
}

// PlayerHands returns the player's hands
func (g *Game) PlayerHands() []*Hand {
	return g.hands
}

// DealerHand returns the dealer's hand
func (g *Game) DealerHand() *Hand {
	return g.dealer
}

// Options returns the house rules for the round
func (g *Game) Options() Options {
	return g.options
}
