package session

import (
	"context"
	"sync"
	"time"

	"deluxeblackjack-server/pkg/account"
	"deluxeblackjack-server/pkg/blackjack"
	"deluxeblackjack-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const logMessageLimit = 25

// Session owns the live game for one authenticated player. All access to
// the game goes through the session, which serializes it, runs the
// automatic dealer steps after a short delay, persists the game between
// actions, and fans state updates out to the player's connected clients.
type Session struct {
	logger logrus.FieldLogger
	store  Store
	userID int64
	game   *blackjack.Game

	// delay before the automatic dealer steps run; zero runs them inline
	delay time.Duration

	lock sync.Mutex

	// lastActivity is guarded by lock; the manager's sweeper uses it to
	// evict sessions abandoned without a client disconnect
	lastActivity time.Time

	clientsLock sync.RWMutex
	clients     map[*Client]bool

	logMessages []*playable.LogMessage
	done        chan bool
}

// NewSession builds the session for the user, resuming the saved game if
// there is one, otherwise starting a fresh game with the user's house
// rules (or the table defaults)
func NewSession(logger logrus.FieldLogger, user *account.User, store Store, defaults blackjack.Options, delay time.Duration) (*Session, error) {
	s := &Session{
		logger:       logger.WithField("userId", user.ID),
		store:        store,
		userID:       user.ID,
		delay:        delay,
		clients:      make(map[*Client]bool),
		done:         make(chan bool),
		lastActivity: time.Now(),
	}

	ctx := context.Background()

	saved, err := store.GetGameState(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if saved != nil {
		game, err := blackjack.Restore(s.logger, saved)
		if err == nil {
			// between rounds the stored balance is authoritative, so chip
			// purchases made since the last save are picked up
			game.SyncBalance(user.Balance)
			s.game = game
		} else {
			// a bad blob should not lock the player out
			s.logger.WithError(err).Warn("could not restore saved game")
			if err := store.DeleteGameState(ctx, user.ID); err != nil {
				s.logger.WithError(err).Error("could not delete saved game")
			}
		}
	}

	if s.game == nil {
		options := defaults
		if opts, err := store.SavedOptions(ctx, user.ID); err != nil {
			return nil, err
		} else if opts != nil {
			options = *opts
		}

		game, err := blackjack.NewGame(s.logger, user.ID, user.DisplayName, user.Balance, options)
		if err != nil {
			return nil, err
		}

		s.game = game
	}

	go s.pumpLogs()
	return s, nil
}

// pumpLogs forwards the game's log messages to the connected clients
func (s *Session) pumpLogs() {
	for {
		select {
		case messages := <-s.game.LogChan():
			s.clientsLock.Lock()
			m := append(s.logMessages, messages...)
			if count := len(m); count > logMessageLimit {
				m = m[count-logMessageLimit:]
			}
			s.logMessages = m
			s.clientsLock.Unlock()

			s.broadcast(&playable.Response{
				Key:  "logs",
				Data: messages,
			})
		case <-s.done:
			return
		}
	}
}

// Dispatch performs a game action on behalf of the player. On success the
// new state is broadcast to every connected client; the returned response
// is for the caller alone.
func (s *Session) Dispatch(ctx context.Context, msg *playable.PayloadIn) (*playable.Response, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.lastActivity = time.Now()
	s.refreshBalance(ctx)

	res, updateState, err := s.game.Action(msg)
	if err != nil {
		return nil, err
	}

	if updateState {
		s.postAction(ctx)
		s.broadcastState()
	}

	return res, nil
}

// refreshBalance picks up balance changes made outside the game, such as
// chip purchases over HTTP, before the next bet. Mid-round the game keeps
// the bankroll it started with. Must be called with the lock held.
func (s *Session) refreshBalance(ctx context.Context) {
	switch s.game.Phase() {
	case blackjack.PhaseBetting, blackjack.PhaseGameOver:
	default:
		return
	}

	balance, err := s.store.Balance(ctx, s.userID)
	if err != nil {
		s.logger.WithError(err).Warn("could not refresh balance")
		return
	}

	s.game.SyncBalance(balance)
}

// State returns the player-visible game state
func (s *Session) State() (*playable.Response, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.lastActivity = time.Now()
	s.refreshBalance(context.Background())
	return s.game.GetPlayerState()
}

// Balance returns the in-game balance
func (s *Session) Balance() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.game.Balance()
}

// Save persists the current game
func (s *Session) Save(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.save(ctx)
}

// End stops the session's background work. The saved game remains, so a
// new session can pick the round back up.
func (s *Session) End() {
	close(s.done)
}

// Idle reports whether the session has no connected clients and has not
// seen an action or state read within the threshold
func (s *Session) Idle(threshold time.Duration) bool {
	if len(s.Clients()) > 0 {
		return false
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	return time.Since(s.lastActivity) >= threshold
}

// postAction runs after every state-changing action, with the lock held.
// It chains the automatic phases and persists the game.
func (s *Session) postAction(ctx context.Context) {
	switch s.game.Phase() {
	case blackjack.PhaseDealerTurn:
		s.scheduleAuto(ctx, blackjack.ActionDealerPlay)
	case blackjack.PhaseEvaluating:
		s.scheduleAuto(ctx, blackjack.ActionEvaluate)
	case blackjack.PhaseGameOver:
		s.settle(ctx)
	}

	if err := s.save(ctx); err != nil {
		s.logger.WithError(err).Error("could not save game")
	}
}

// scheduleAuto runs an automatic dealer step, after the configured delay
// so the client can animate the reveal. A zero delay runs it inline.
func (s *Session) scheduleAuto(ctx context.Context, action blackjack.Action) {
	if s.delay == 0 {
		s.runAuto(ctx, action)
		return
	}

	time.AfterFunc(s.delay, func() {
		s.lock.Lock()
		defer s.lock.Unlock()

		// the request context that triggered the action is long gone
		s.runAuto(context.Background(), action)
		s.broadcastState()
	})
}

// runAuto must be called with the lock held
func (s *Session) runAuto(ctx context.Context, action blackjack.Action) {
	var err error
	switch action {
	case blackjack.ActionDealerPlay:
		err = s.game.DealerPlay()
	case blackjack.ActionEvaluate:
		err = s.game.EvaluateHands()
	}

	if err != nil {
		s.logger.WithError(err).WithField("action", action).Error("automatic step failed")
		return
	}

	s.postAction(ctx)
}

// settle persists the round's outcome: the new balance, one stats row and
// one history row per hand
func (s *Session) settle(ctx context.Context) {
	if err := s.store.SetBalance(ctx, s.userID, s.game.Balance()); err != nil {
		s.logger.WithError(err).Error("could not persist balance")
	}

	hands := s.game.PlayerHands()
	dealer := s.game.DealerHand()
	for i, res := range s.game.HandResults() {
		if err := s.store.RecordResult(ctx, s.userID, res); err != nil {
			s.logger.WithError(err).Error("could not record result")
		}

		if err := s.store.AppendMatch(ctx, s.userID, res, hands[i].Cards, dealer.Cards); err != nil {
			s.logger.WithError(err).Error("could not append match")
		}
	}
}

// save must be called with the lock held
func (s *Session) save(ctx context.Context) error {
	snapshot, err := s.game.Snapshot()
	if err != nil {
		return err
	}

	return s.store.SaveGameState(ctx, s.userID, snapshot)
}

// broadcastState sends the current game state to every connected client
func (s *Session) broadcastState() {
	state, err := s.game.GetPlayerState()
	if err != nil {
		s.logger.WithError(err).Error("could not get player state")
		return
	}

	s.broadcast(state)
}

func (s *Session) broadcast(msg interface{}) {
	for _, client := range s.Clients() {
		if !client.Send(msg) {
			s.logger.WithField("client", client.String()).Warn("client send buffer is full")
		}
	}
}

// Clients will return a slice of connected (at the time) clients
func (s *Session) Clients() []*Client {
	s.clientsLock.RLock()
	defer s.clientsLock.RUnlock()

	clients := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient adds a client and sends it the current state and the recent
// log messages
func (s *Session) AddClient(client *Client) {
	s.clientsLock.Lock()
	client.session = s
	s.clients[client] = true
	logMessages := s.logMessages
	s.clientsLock.Unlock()

	if len(logMessages) > 0 {
		client.Send(&playable.Response{
			Key:  "logs",
			Data: logMessages,
		})
	}

	state, err := s.State()
	if err != nil {
		s.logger.WithError(err).Error("could not get player state")
		return
	}

	client.Send(state)
}

// RemoveClient removes a client, reporting whether it was the last one
func (s *Session) RemoveClient(client *Client) (lastClient bool) {
	s.clientsLock.Lock()
	delete(s.clients, client)
	nClients := len(s.clients)
	s.clientsLock.Unlock()

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (s *Session) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	res, err := s.Dispatch(context.Background(), msg)
	if err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if res != nil {
		res.Context = msg.Context
		c.Send(res)
	}
}
