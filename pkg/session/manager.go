package session

import (
	"context"
	"sync"
	"time"

	"deluxeblackjack-server/internal/config"
	"deluxeblackjack-server/pkg/account"
	"deluxeblackjack-server/pkg/blackjack"

	"github.com/sirupsen/logrus"
)

// how often the sweeper looks for abandoned sessions, and how long a
// session with no clients may sit untouched before it is released
const (
	sweepInterval  = time.Minute
	maxSessionIdle = time.Minute * 15
)

// Manager hands out one session per player and tears them down when the
// last client disconnects. Sessions played over plain HTTP have no
// disconnect, so a background sweeper releases the abandoned ones.
type Manager struct {
	logger   logrus.FieldLogger
	store    Store
	defaults blackjack.Options
	delay    time.Duration

	lock     sync.Mutex
	sessions map[int64]*Session
}

// NewManager returns a new session manager
func NewManager(logger logrus.FieldLogger, store Store, defaults blackjack.Options, delay time.Duration) *Manager {
	return &Manager{
		logger:   logger,
		store:    store,
		defaults: defaults,
		delay:    delay,
		sessions: make(map[int64]*Session),
	}
}

// OptionsFromConfig overlays the server-wide table rules onto the engine
// defaults
func OptionsFromConfig(cfg config.Config) blackjack.Options {
	opts := blackjack.DefaultOptions()

	if cfg.Table.DeckCount > 0 {
		opts.DeckCount = cfg.Table.DeckCount
	}

	if cfg.Table.BlackjackPayout > 0 {
		opts.BlackjackPayout = cfg.Table.BlackjackPayout
	}

	if cfg.Table.MinimumBet > 0 {
		opts.MinimumBet = cfg.Table.MinimumBet
	}

	if cfg.Table.MaximumBet > 0 {
		opts.MaximumBet = cfg.Table.MaximumBet
	}

	if cfg.Table.DealerStandsOnSoft17 != nil {
		opts.DealerStandsOnSoft17 = *cfg.Table.DealerStandsOnSoft17
	}

	if cfg.Table.AllowDoubleAfterSplit != nil {
		opts.AllowDoubleAfterSplit = *cfg.Table.AllowDoubleAfterSplit
	}

	return opts
}

// Session returns the user's live session, creating one (and resuming any
// saved game) if needed
func (m *Manager) Session(ctx context.Context, user *account.User) (*Session, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if s, ok := m.sessions[user.ID]; ok {
		return s, nil
	}

	s, err := NewSession(m.logger, user, m.store, m.defaults, m.delay)
	if err != nil {
		return nil, err
	}

	m.sessions[user.ID] = s
	return s, nil
}

// ClientConnected attaches a websocket client to the user's session
func (m *Manager) ClientConnected(client *Client) error {
	s, err := m.Session(context.Background(), client.User())
	if err != nil {
		return err
	}

	s.AddClient(client)
	return nil
}

// StartSweeper starts the background loop that releases idle sessions
func (m *Manager) StartSweeper() {
	go func() {
		t := time.NewTicker(sweepInterval)
		defer t.Stop()

		for range t.C {
			m.sweep(maxSessionIdle)
		}
	}()
}

// sweep saves and releases every session idle beyond the threshold
func (m *Manager) sweep(threshold time.Duration) {
	m.lock.Lock()
	var idle []*Session
	for id, s := range m.sessions {
		if s.Idle(threshold) {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.lock.Unlock()

	for _, s := range idle {
		if err := s.Save(context.Background()); err != nil {
			m.logger.WithError(err).Error("could not save game")
		}

		s.End()
		m.logger.WithField("userId", s.userID).Debug("released idle session")
	}
}

// ClientDisconnected detaches a client. When the last client leaves, the
// session is saved and released; the game itself lives on in the store.
func (m *Manager) ClientDisconnected(client *Client) {
	s := client.session
	if s == nil {
		return
	}

	if !s.RemoveClient(client) {
		return
	}

	if err := s.Save(context.Background()); err != nil {
		m.logger.WithError(err).Error("could not save game")
	}

	s.End()

	m.lock.Lock()
	delete(m.sessions, s.userID)
	m.lock.Unlock()
}
