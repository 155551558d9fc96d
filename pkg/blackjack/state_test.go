package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())
	stackShoe(g, "10s,9c,7d,8h")

	res, err := g.GetPlayerState()
	a.NoError(err)
	a.Equal("game", res.Key)
	a.Equal("blackjack", res.Value)

	state := res.Data.(*State)
	a.Equal("betting", state.Phase)
	a.Equal(1000, state.Balance)
	a.Equal(0, state.CardsLeft)
	a.Equal([]Action{ActionPlaceBet}, state.AvailableActions)

	a.NoError(g.PlaceBet(100))
	a.NoError(g.DealInitialCards())

	res, _ = g.GetPlayerState()
	state = res.Data.(*State)
	a.Equal("playerTurn", state.Phase)
	a.Equal(900, state.Balance)
	a.Equal(0, state.CurrentHandIndex)
}

// the hole card must be scrubbed from the state, not just flagged
func TestGame_GetPlayerState_MasksHoleCard(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())
	stackShoe(g, "10s,9c,7d,8h")

	a.NoError(g.PlaceBet(100))
	a.NoError(g.DealInitialCards())

	res, _ := g.GetPlayerState()
	state := res.Data.(*State)

	a.Len(state.Dealer.Cards, 2)
	a.Equal(9, state.Dealer.Cards[0].Rank)
	a.Equal(0, state.Dealer.Cards[1].Rank)
	a.Empty(state.Dealer.Cards[1].Suit)

	// the visible dealer value counts only the up card
	a.Equal(9, state.DealerValue)

	// the real hand is untouched
	a.Equal(8, g.DealerHand().Cards[1].Rank)

	a.NoError(g.Stand())
	a.NoError(g.DealerPlay())

	res, _ = g.GetPlayerState()
	state = res.Data.(*State)
	a.Equal(8, state.Dealer.Cards[1].Rank)
	a.Equal(17, state.DealerValue)
}

func TestGame_AvailableActions(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())
	stackShoe(g, "8s,9c,8d,8h,2c,3c")

	a.NoError(g.PlaceBet(100))
	a.Equal([]Action{ActionDeal}, g.availableActions())

	a.NoError(g.DealInitialCards())
	a.Equal([]Action{ActionHit, ActionStand, ActionDoubleDown, ActionSplit}, g.availableActions())

	a.NoError(g.Split())
	// the first split hand drew a 2, so it is no longer a pair
	a.Equal([]Action{ActionHit, ActionStand, ActionDoubleDown}, g.availableActions())

	a.NoError(g.Stand())
	a.NoError(g.Stand())
	a.Equal([]Action{ActionDealerPlay}, g.availableActions())

	a.NoError(g.DealerPlay())
	a.Equal([]Action{ActionEvaluate}, g.availableActions())

	a.NoError(g.EvaluateHands())
	a.Equal([]Action{ActionNewRound}, g.availableActions())
}

func TestGame_AvailableActions_NoDoubleWithoutFunds(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 150, DefaultOptions())
	stackShoe(g, "10s,9c,7d,8h")

	a.NoError(g.PlaceBet(100))
	a.NoError(g.DealInitialCards())

	// balance 50 cannot cover the second bet
	a.Equal([]Action{ActionHit, ActionStand}, g.availableActions())
}
