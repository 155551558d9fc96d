package blackjack

import (
	"encoding/json"

	"deluxeblackjack-server/pkg/deck"

	"github.com/sirupsen/logrus"
)

// gameSnapshot is the serialized form of an in-progress game, persisted as
// an opaque blob so a player can resume a round after a disconnect
type gameSnapshot struct {
	Options          Options       `json:"options"`
	PlayerID         int64         `json:"playerId"`
	PlayerName       string        `json:"playerName"`
	Balance          int           `json:"balance"`
	Deck             *deck.Deck    `json:"deck"`
	Dealer           *Hand         `json:"dealer"`
	Hands            []*Hand       `json:"hands"`
	CurrentHandIndex int           `json:"currentHandIndex"`
	Phase            Phase         `json:"phase"`
	Message          string        `json:"message"`
	GameResult       Result        `json:"gameResult"`
	HandResults      []*HandResult `json:"handResults"`
	LastBet          int           `json:"lastBet"`
}

// Snapshot serializes the full game, including the remaining shoe
func (g *Game) Snapshot() ([]byte, error) {
	return json.Marshal(gameSnapshot{
		Options:          g.options,
		PlayerID:         g.playerID,
		PlayerName:       g.playerName,
		Balance:          g.balance,
		Deck:             g.deck,
		Dealer:           g.dealer,
		Hands:            g.hands,
		CurrentHandIndex: g.currentHandIndex,
		Phase:            g.phase,
		Message:          g.message,
		GameResult:       g.result,
		HandResults:      g.handResults,
		LastBet:          g.lastBet,
	})
}

// Restore rebuilds a game from a snapshot produced by Snapshot.
// The shoe's shuffle source is not serialized; the remaining cards are, so
// a restored mid-round game keeps drawing the same cards.
func Restore(logger logrus.FieldLogger, data []byte) (*Game, error) {
	var snap gameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	g, err := NewGame(logger, snap.PlayerID, snap.PlayerName, 0, snap.Options)
	if err != nil {
		return nil, err
	}

	g.balance = snap.Balance
	g.deck = snap.Deck
	g.dealer = snap.Dealer
	g.hands = snap.Hands
	g.currentHandIndex = snap.CurrentHandIndex
	g.phase = snap.Phase
	g.message = snap.Message
	g.result = snap.GameResult
	g.handResults = snap.HandResults
	g.lastBet = snap.LastBet

	if g.dealer == nil {
		g.dealer = newHand(0)
	}

	if len(g.hands) == 0 {
		g.hands = []*Hand{newHand(0)}
	}

	return g, nil
}
