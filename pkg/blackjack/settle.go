package blackjack

// settle determines the result and payout for a single player hand against
// the final dealer hand. The payout includes the returned bet: a win pays
// 2×bet, a push returns the bet, a loss pays nothing, and a natural
// blackjack pays bet×(1+BlackjackPayout) with any fractional part floored.
//
// The order of the checks matters: busts are settled before blackjacks,
// and blackjacks before the numeric comparison. Blackjack status comes
// from the hands' flags, so a split hand dealt 21 settles as a plain 21.
func settle(playerHand *Hand, dealerHand *Hand, options Options) (Result, int) {
	playerTotal, _ := playerHand.Value()
	dealerTotal, _ := dealerHand.Value()

	if playerTotal > target {
		return ResultLose, 0
	}

	if dealerTotal > target {
		return ResultWin, playerHand.Bet * 2
	}

	if playerHand.IsBlackjack && !dealerHand.IsBlackjack {
		return ResultBlackjack, playerHand.Bet + int(float64(playerHand.Bet)*options.BlackjackPayout)
	}

	if dealerHand.IsBlackjack && !playerHand.IsBlackjack {
		return ResultLose, 0
	}

	if playerHand.IsBlackjack && dealerHand.IsBlackjack {
		return ResultPush, playerHand.Bet
	}

	if playerTotal > dealerTotal {
		return ResultWin, playerHand.Bet * 2
	}

	if playerTotal < dealerTotal {
		return ResultLose, 0
	}

	return ResultPush, playerHand.Bet
}
