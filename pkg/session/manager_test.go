package session

import (
	"context"
	"testing"
	"time"

	"deluxeblackjack-server/internal/config"
	"deluxeblackjack-server/pkg/blackjack"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestOptionsFromConfig(t *testing.T) {
	a := assert.New(t)

	var cfg config.Config
	a.Equal(blackjack.DefaultOptions(), OptionsFromConfig(cfg))

	hitSoft17 := false
	noDouble := false
	cfg.Table.DeckCount = 4
	cfg.Table.BlackjackPayout = 1.2
	cfg.Table.MinimumBet = 10
	cfg.Table.MaximumBet = 500
	cfg.Table.DealerStandsOnSoft17 = &hitSoft17
	cfg.Table.AllowDoubleAfterSplit = &noDouble

	opts := OptionsFromConfig(cfg)
	a.Equal(4, opts.DeckCount)
	a.Equal(1.2, opts.BlackjackPayout)
	a.Equal(10, opts.MinimumBet)
	a.Equal(500, opts.MaximumBet)
	a.False(opts.DealerStandsOnSoft17)
	a.False(opts.AllowDoubleAfterSplit)

	// the untouched defaults survive
	a.Equal(blackjack.DefaultOptions().AllowSurrender, opts.AllowSurrender)
}

func TestManager_Session(t *testing.T) {
	a := assert.New(t)
	m := NewManager(logrus.StandardLogger(), newMemoryStore(), blackjack.DefaultOptions(), 0)

	ctx := context.Background()
	s, err := m.Session(ctx, testUser())
	a.NoError(err)
	a.NotNil(s)

	s2, err := m.Session(ctx, testUser())
	a.NoError(err)
	a.Same(s, s2)
}

// sessions played over plain HTTP have no disconnect; the sweeper saves
// and releases them once they go quiet
func TestManager_Sweep(t *testing.T) {
	a := assert.New(t)
	store := newMemoryStore()
	m := NewManager(logrus.StandardLogger(), store, blackjack.DefaultOptions(), 0)

	s, err := m.Session(context.Background(), testUser())
	a.NoError(err)

	// recent activity keeps the session
	m.sweep(time.Hour)
	s2, err := m.Session(context.Background(), testUser())
	a.NoError(err)
	a.Same(s, s2)

	// a connected client keeps the session no matter how old
	c := NewClient(nil, testUser())
	s.AddClient(c)
	m.sweep(0)
	s2, err = m.Session(context.Background(), testUser())
	a.NoError(err)
	a.Same(s, s2)

	// no clients and past the threshold: saved and released
	s.RemoveClient(c)
	m.sweep(0)
	a.NotNil(store.states[1])

	s3, err := m.Session(context.Background(), testUser())
	a.NoError(err)
	a.NotSame(s, s3)
	defer s3.End()
}

func TestManager_ClientLifecycle(t *testing.T) {
	a := assert.New(t)
	store := newMemoryStore()
	m := NewManager(logrus.StandardLogger(), store, blackjack.DefaultOptions(), 0)

	c := NewClient(nil, testUser())
	c2 := NewClient(nil, testUser())

	a.NoError(m.ClientConnected(c))
	a.NoError(m.ClientConnected(c2))

	s := c.session
	if !a.NotNil(s) {
		return
	}
	a.Same(s, c2.session)
	a.Len(s.Clients(), 2)

	// the session stays live until the last client leaves
	m.ClientDisconnected(c)
	s2, err := m.Session(context.Background(), testUser())
	a.NoError(err)
	a.Same(s, s2)

	m.ClientDisconnected(c2)
	a.NotNil(store.states[1])

	s3, err := m.Session(context.Background(), testUser())
	a.NoError(err)
	a.NotSame(s, s3)
	defer s3.End()
}
