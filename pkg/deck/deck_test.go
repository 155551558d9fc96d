package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNew(t *testing.T) {
	d := New(1)

	assert.Equal(t, 52, d.CardsLeft())
	assert.Equal(t, Card{Rank: 2, Suit: Clubs, FaceUp: true}, *d.Cards[0])
	assert.Equal(t, Card{Rank: 14, Suit: Spades, FaceUp: true}, *d.Cards[51])
}

func TestNew_MultiDeck(t *testing.T) {
	d := New(6)
	assert.Equal(t, 312, d.CardsLeft())

	// six copies of every card
	count := make(map[string]int)
	for _, c := range d.Cards {
		count[c.String()]++
	}

	assert.Equal(t, 52, len(count))
	for card, n := range count {
		assert.Equal(t, 6, n, "expected six copies of %s", card)
	}
}

func TestNew_BadDeckCount(t *testing.T) {
	assert.Panics(t, func() {
		New(0)
	})
}

func TestDeck_Shuffle(t *testing.T) {
	d := New(1)
	d.SetSeed(1)
	d.Shuffle()

	first := CardsToString(d.Cards)

	d2 := New(1)
	d2.SetSeed(1)
	d2.Shuffle()
	assert.Equal(t, first, CardsToString(d2.Cards))

	d2.Shuffle()
	assert.NotEqual(t, first, CardsToString(d2.Cards))
}

func TestDeck_Draw(t *testing.T) {
	d := New(1)

	if !d.CanDraw(52) {
		t.Errorf("expected CanDraw(52) to be true")
	}

	if d.CanDraw(53) {
		t.Errorf("expected CanDraw(53) to be false")
	}

	// drawing pops from the end
	last := d.Cards[51].Clone()
	card, err := d.Draw(true)
	assert.NoError(t, err)
	assert.True(t, card.Equal(last))
	assert.Equal(t, 51, d.CardsLeft())

	card, err = d.Draw(false)
	assert.NoError(t, err)
	assert.False(t, card.FaceUp)

	for i := 0; i < 50; i++ {
		card, err := d.Draw(true)
		if card == nil {
			t.Error("expected card, got nil")
		}

		if err != nil {
			t.Errorf("expected err to be nil, got %v", err)
		}
	}

	if d.CanDraw(1) {
		t.Errorf("expected CanDraw(1) to be false")
	}

	card, err = d.Draw(true)
	if card != nil {
		t.Errorf("expected card to be nil, got %#v", card)
	}

	if err != ErrEndOfDeck {
		t.Errorf("expected err to be ErrEndOfDeck, got %#v", err)
	}
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	c := CardFromString("14s")
	a.Equal(Ace, c.Rank)
	a.Equal(Spades, c.Suit)
	a.True(c.FaceUp)
	a.Equal("A♠", c.String())

	c = CardFromString("?10d")
	a.Equal(10, c.Rank)
	a.Equal(Diamonds, c.Suit)
	a.False(c.FaceUp)

	a.Equal("14s,?10d", CardsToString(CardsFromString("14s,?10d")))

	a.Panics(func() {
		CardFromString("15x")
	})
}
