package blackjack

import (
	"deluxeblackjack-server/pkg/deck"
)

// target is the total a hand is trying to reach without exceeding
const target = 21

// Hand is a set of cards plus betting flags for one segment of play.
// The dealer has one hand; the player has one or more (more after splits).
type Hand struct {
	Cards        []*deck.Card `json:"cards"`
	Bet          int          `json:"bet"`
	DoubleDown   bool         `json:"doubleDown"`
	Insurance    bool         `json:"insurance"`
	InsuranceBet int          `json:"insuranceBet"`
	IsStanding   bool         `json:"isStanding"`
	IsBusted     bool         `json:"isBusted"`
	IsBlackjack  bool         `json:"isBlackjack"`
	IsSplit      bool         `json:"isSplit"`
}

func newHand(bet int) *Hand {
	return &Hand{
		Cards: []*deck.Card{},
		Bet:   bet,
	}
}

// Value returns the best total for the face-up cards in the hand.
// Aces are counted separately: one ace counts as 11 (and the total is soft)
// if that keeps the total at or under 21, otherwise every ace counts as 1.
func (h *Hand) Value() (total int, soft bool) {
	aceCount := 0
	for _, card := range h.Cards {
		if !card.FaceUp {
			continue
		}

		switch {
		case card.Rank == deck.Ace:
			aceCount++
		case card.Rank >= deck.Jack:
			total += 10
		default:
			total += card.Rank
		}
	}

	if aceCount > 0 {
		if total+11+(aceCount-1) <= target {
			total += 11 + (aceCount - 1)
			soft = true
		} else {
			total += aceCount
		}
	}

	return total, soft
}

// valueWithHoleCard returns the total counting face-down cards as well.
// Only used to detect a dealer blackjack before the hole card is revealed.
func (h *Hand) valueWithHoleCard() int {
	total := 0
	aceCount := 0
	for _, card := range h.Cards {
		switch {
		case card.Rank == deck.Ace:
			aceCount++
		case card.Rank >= deck.Jack:
			total += 10
		default:
			total += card.Rank
		}
	}

	if aceCount > 0 {
		if total+11+(aceCount-1) <= target {
			total += 11 + (aceCount - 1)
		} else {
			total += aceCount
		}
	}

	return total
}

// Blackjack returns true if the hand is exactly two face-up cards totaling 21.
// This is the card check only; a split hand keeps IsBlackjack false no
// matter what it is dealt.
func (h *Hand) Blackjack() bool {
	if len(h.Cards) != 2 {
		return false
	}

	total, _ := h.Value()
	return total == target
}

// Busted returns true if the hand's total exceeds 21
func (h *Hand) Busted() bool {
	total, _ := h.Value()
	return total > target
}

// CanSplit returns true if the hand is exactly two cards of equal rank
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// CanDoubleDown returns true if the hand may double down given the balance
// and house rules
func (h *Hand) CanDoubleDown(balance int, options Options) bool {
	if len(h.Cards) != 2 {
		return false
	}

	if balance < h.Bet {
		return false
	}

	if h.IsSplit && !options.AllowDoubleAfterSplit {
		return false
	}

	return true
}

// IsComplete returns true once the hand is standing or busted
func (h *Hand) IsComplete() bool {
	return h.IsStanding || h.IsBusted
}

func allHandsBusted(hands []*Hand) bool {
	for _, h := range hands {
		if !h.IsBusted {
			return false
		}
	}

	return true
}

func allHandsComplete(hands []*Hand) bool {
	for _, h := range hands {
		if !h.IsComplete() {
			return false
		}
	}

	return true
}
