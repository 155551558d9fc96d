package blackjack

import (
	"fmt"

	"deluxeblackjack-server/pkg/playable"
)

// Action is an action the player (or the session, for the automatic dealer
// steps) can perform
type Action string

// actions
const (
	ActionPlaceBet   Action = "bet"
	ActionDeal       Action = "deal"
	ActionHit        Action = "hit"
	ActionStand      Action = "stand"
	ActionDoubleDown Action = "doubleDown"
	ActionSplit      Action = "split"
	ActionDealerPlay Action = "dealerPlay"
	ActionEvaluate   Action = "evaluate"
	ActionNewRound   Action = "newRound"
)

// ActionFromString returns the Action for the string
func ActionFromString(s string) (Action, error) {
	switch Action(s) {
	case ActionPlaceBet, ActionDeal, ActionHit, ActionStand, ActionDoubleDown,
		ActionSplit, ActionDealerPlay, ActionEvaluate, ActionNewRound:
		return Action(s), nil
	}

	return "", fmt.Errorf("unknown action: %s", s)
}

// Action performs with a message
// If playerResponse is not null, that's the response sent directly to the client
// If updateState is true, it will trigger a state update for all connected clients
func (g *Game) Action(message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	action, err := ActionFromString(message.Subject)
	if err != nil {
		return nil, false, err
	}

	switch action {
	case ActionPlaceBet:
		amount, ok := message.AdditionalData.GetInt("amount")
		if !ok {
			return nil, false, UserError("bet requires an amount")
		}

		err = g.PlaceBet(amount)
	case ActionDeal:
		err = g.DealInitialCards()
	case ActionHit:
		err = g.Hit()
	case ActionStand:
		err = g.Stand()
	case ActionDoubleDown:
		err = g.DoubleDown()
	case ActionSplit:
		err = g.Split()
	case ActionDealerPlay:
		err = g.DealerPlay()
	case ActionEvaluate:
		err = g.EvaluateHands()
	case ActionNewRound:
		err = g.NewRound()
	}

	if err != nil {
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}
