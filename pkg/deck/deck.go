package deck

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// standardDeckSize is the number of cards in a single deck
const standardDeckSize = 52

// Deck is the multi-deck shoe for a single round of blackjack.
// The shoe only shrinks: cards are drawn by popping from the end, and the
// shoe is rebuilt fresh each round rather than tracking penetration.
type Deck struct {
	Cards []*Card `json:"cards"`
	seed  int64
	rng   *rand.Rand
}

// New returns a new shoe built from deckCount concatenated 52-card decks.
// Important! the shoe is unshuffled. You must call the Shuffle() method to
// shuffle the cards. deckCount must be > 0; callers never pass anything
// else, so a bad count is a programming error.
func New(deckCount int) *Deck {
	if deckCount <= 0 {
		panic(fmt.Sprintf("deck count must be > 0, got %d", deckCount))
	}

	d := &Deck{
		seed: -1,
	}

	d.buildDeck(deckCount)
	return d
}

// SetSeed will set the seed
// This should only be used by tests. Setting the seed is normally handled when you call Shuffle()
func (d *Deck) SetSeed(seed int64) {
	d.seed = seed
	d.rng = rand.New(rand.NewSource(seed))
}

func (d *Deck) buildDeck(deckCount int) {
	cards := make([]*Card, 0, deckCount*standardDeckSize)
	for i := 0; i < deckCount; i++ {
		for _, suit := range []Suit{Clubs, Diamonds, Hearts, Spades} {
			for rank := 2; rank <= Ace; rank++ {
				cards = append(cards, &Card{
					Rank:   rank,
					Suit:   suit,
					FaceUp: true,
				})
			}
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle the shoe using a Fisher–Yates permutation
func (d *Deck) Shuffle() {
	if d.rng == nil {
		d.SetSeed(time.Now().UnixNano())
	}

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// GetSeed returns the seed used to shuffle the deck
func (d *Deck) GetSeed() int64 {
	return d.seed
}

// Draw will draw the next card from the end of the shoe, stamping it with
// the supplied face-up flag.
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw(faceUp bool) (*Card, error) {
	if len(d.Cards) == 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[len(d.Cards)-1]
	d.Cards = d.Cards[:len(d.Cards)-1]
	card.FaceUp = faceUp

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
