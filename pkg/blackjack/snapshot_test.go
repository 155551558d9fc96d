package blackjack

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// a mid-round game survives a snapshot/restore round trip and keeps
// drawing the same cards
func TestGame_Snapshot_RoundTrip(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())
	stackShoe(g, "10s,9c,6d,8h,2s,3c")

	a.NoError(g.PlaceBet(100))
	a.NoError(g.DealInitialCards())

	data, err := g.Snapshot()
	a.NoError(err)

	restored, err := Restore(logrus.StandardLogger(), data)
	a.NoError(err)

	a.Equal(PhasePlayerTurn, restored.Phase())
	a.Equal(900, restored.Balance())
	a.Equal(g.Message(), restored.Message())
	a.Equal(g.Options(), restored.Options())

	hand := restored.PlayerHands()[0]
	a.Equal(100, hand.Bet)
	total, _ := hand.Value()
	a.Equal(16, total)

	a.Equal(8, restored.DealerHand().Cards[1].Rank)
	a.False(restored.DealerHand().Cards[1].FaceUp)

	// the restored shoe continues where the original left off
	a.NoError(restored.Hit())
	total, _ = restored.PlayerHands()[0].Value()
	a.Equal(18, total)

	a.NoError(restored.Stand())
	a.NoError(restored.DealerPlay())
	a.NoError(restored.EvaluateHands())

	// player 18 beats dealer 17
	a.Equal(ResultWin, restored.Result())
	a.Equal(1100, restored.Balance())
}

func TestGame_Snapshot_GameOver(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())
	stackShoe(g, "14s,9c,13d,5h")

	a.NoError(g.PlaceBet(100))
	a.NoError(g.DealInitialCards())

	data, err := g.Snapshot()
	a.NoError(err)

	restored, err := Restore(logrus.StandardLogger(), data)
	a.NoError(err)

	a.Equal(PhaseGameOver, restored.Phase())
	a.Equal(ResultBlackjack, restored.Result())
	a.Equal(1150, restored.Balance())
	a.Equal(100, restored.LastBet())

	results := restored.HandResults()
	a.Len(results, 1)
	a.Equal(250, results[0].Payout)

	a.NoError(restored.NewRound())
	a.Equal(PhaseBetting, restored.Phase())
}

func TestRestore_BadData(t *testing.T) {
	_, err := Restore(logrus.StandardLogger(), []byte("not json"))
	assert.Error(t, err)
}

// a snapshot taken before any deal restores with playable empty hands
func TestGame_Snapshot_BettingPhase(t *testing.T) {
	a := assert.New(t)
	g := setupGame(t, 1000, DefaultOptions())

	data, err := g.Snapshot()
	a.NoError(err)

	restored, err := Restore(logrus.StandardLogger(), data)
	a.NoError(err)

	a.Equal(PhaseBetting, restored.Phase())
	a.Equal(1000, restored.Balance())
	a.Len(restored.PlayerHands(), 1)
	a.NotNil(restored.DealerHand())
}
