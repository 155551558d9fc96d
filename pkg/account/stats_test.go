package account

import (
	"testing"

	"deluxeblackjack-server/pkg/blackjack"

	"github.com/stretchr/testify/assert"
)

func TestStats_RecordAndReset(t *testing.T) {
	a := assert.New(t)
	user := createTestUser(t)

	s, err := GetStats(cbg, user.ID)
	a.NoError(err)
	a.Equal(0, s.HandsPlayed)
	a.Equal(0.0, s.WinRate())

	a.NoError(RecordResult(cbg, user.ID, &blackjack.HandResult{Result: blackjack.ResultWin, Bet: 100, Payout: 200}))
	a.NoError(RecordResult(cbg, user.ID, &blackjack.HandResult{Result: blackjack.ResultLose, Bet: 100, Payout: 0}))
	a.NoError(RecordResult(cbg, user.ID, &blackjack.HandResult{Result: blackjack.ResultBlackjack, Bet: 100, Payout: 250}))
	a.NoError(RecordResult(cbg, user.ID, &blackjack.HandResult{Result: blackjack.ResultPush, Bet: 100, Payout: 100}))

	s, err = GetStats(cbg, user.ID)
	a.NoError(err)
	a.Equal(4, s.HandsPlayed)
	a.Equal(1, s.Wins)
	a.Equal(1, s.Losses)
	a.Equal(1, s.Pushes)
	a.Equal(1, s.Blackjacks)
	a.Equal(100-100+150+0, s.Profit)
	a.Equal(0.5, s.WinRate())

	a.NoError(ResetStats(cbg, user.ID))

	s, err = GetStats(cbg, user.ID)
	a.NoError(err)
	a.Equal(0, s.HandsPlayed)
	a.Equal(0, s.Profit)
}
