package blackjack

import (
	"errors"
	"fmt"
	"strings"

	"deluxeblackjack-server/pkg/deck"
	"deluxeblackjack-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

// dealerStandTotal is the total at which the dealer stops drawing
const dealerStandTotal = 17

// Game is a single-player round of blackjack.
// Each transition validates the current phase, mutates the game, and
// returns an error. A UserError leaves the game unchanged except for the
// message; any other error is a programming-level failure (an exhausted
// shoe, which cannot happen with correct deck sizing).
//
// Transitions are synchronous and the Game is not safe for concurrent use;
// the session layer serializes access.
type Game struct {
	options Options
	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	playerID   int64
	playerName string
	balance    int

	deck             *deck.Deck
	dealer           *Hand
	hands            []*Hand
	currentHandIndex int
	phase            Phase
	message          string
	result           Result
	handResults      []*HandResult
	lastBet          int

	// newShoe builds the fresh shoe for each initial deal; tests swap in a
	// stacked deck
	newShoe func() *deck.Deck
}

const newRoundMessage = "Place your bet to start the game."

// NewGame returns a new game in the betting phase
func NewGame(logger logrus.FieldLogger, playerID int64, playerName string, balance int, options Options) (*Game, error) {
	if balance < 0 {
		return nil, errors.New("balance cannot be negative")
	}

	if options.DeckCount <= 0 {
		return nil, errors.New("deck count must be > 0")
	}

	if options.BlackjackPayout <= 0 {
		return nil, errors.New("blackjack payout must be > 0")
	}

	if options.MinimumBet <= 0 || options.MaximumBet < options.MinimumBet {
		return nil, errors.New("invalid bet limits")
	}

	g := &Game{
		options:    options,
		logger:     logger,
		logChan:    make(chan []*playable.LogMessage, 256),
		playerID:   playerID,
		playerName: playerName,
		balance:    balance,
		dealer:     newHand(0),
		hands:      []*Hand{newHand(0)},
		phase:      PhaseBetting,
		message:    newRoundMessage,
	}

	g.newShoe = func() *deck.Deck {
		d := deck.New(g.options.DeckCount)
		d.Shuffle()
		return d
	}

	return g, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Blackjack"
}

// Key returns a unique key
func (g *Game) Key() string {
	return "blackjack"
}

// LogChan should return a channel that a game will send log messages to
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// PlaceBet debits the balance and creates the round's initial hand.
// The caller is expected to issue DealInitialCards immediately after.
func (g *Game) PlaceBet(amount int) error {
	if g.phase != PhaseBetting {
		return g.reject(ErrNotBettingPhase)
	}

	if amount <= 0 || amount > g.balance {
		return g.reject(ErrInvalidBet)
	}

	if amount < g.options.MinimumBet {
		return g.reject(UserError(fmt.Sprintf("The minimum bet is $%d.", g.options.MinimumBet)))
	}

	if amount > g.options.MaximumBet {
		return g.reject(UserError(fmt.Sprintf("The maximum bet is $%d.", g.options.MaximumBet)))
	}

	g.balance -= amount
	g.hands = []*Hand{newHand(amount)}
	g.currentHandIndex = 0
	g.phase = PhasePlayerTurn
	g.message = "Dealing cards..."
	g.result = ""
	g.handResults = nil
	g.lastBet = amount

	g.sendLogMessages(playable.SimpleLogMessageSlice("%s bet $%d", g.playerName, amount))
	return nil
}

// DealInitialCards builds a fresh shuffled shoe and deals the opening
// cards in strict order: player up, dealer up, player up, dealer down.
// A blackjack on either side short-circuits the round to gameOver; the
// dealer's blackjack is detected from the hole card's value even though
// the card stays face down (instant resolution, by house choice).
func (g *Game) DealInitialCards() error {
	if g.phase != PhasePlayerTurn || len(g.hands) != 1 || len(g.hands[0].Cards) > 0 {
		return g.reject(UserError("The cards have already been dealt."))
	}

	g.deck = g.newShoe()

	playerCard1, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	dealerCard1, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	playerCard2, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	dealerCard2, err := g.deck.Draw(false)
	if err != nil {
		return err
	}

	hand := g.hands[0]
	hand.Cards = []*deck.Card{playerCard1, playerCard2}
	hand.IsBlackjack = hand.Blackjack()

	g.dealer = newHand(0)
	g.dealer.Cards = []*deck.Card{dealerCard1, dealerCard2}
	g.dealer.IsBlackjack = g.dealer.valueWithHoleCard() == target

	g.sendLogMessages(playable.SimpleLogMessageSlice("%s was dealt %s and %s; dealer shows %s",
		g.playerName, playerCard1, playerCard2, dealerCard1))

	if hand.IsBlackjack || g.dealer.IsBlackjack {
		result, payout := settle(hand, g.dealer, g.options)
		g.balance += payout
		g.handResults = []*HandResult{{Result: result, Bet: hand.Bet, Payout: payout}}
		g.result = result
		g.phase = PhaseGameOver

		switch result {
		case ResultPush:
			g.message = "Both have blackjack - Push (Bet returned)"
		case ResultBlackjack:
			g.message = fmt.Sprintf("Blackjack! (+$%d)", payout-hand.Bet)
		default:
			g.message = fmt.Sprintf("Dealer has blackjack (-$%d)", hand.Bet)
		}

		g.sendLogMessages(playable.SimpleLogMessageSlice(g.message))
		return nil
	}

	g.phase = PhasePlayerTurn
	if hand.CanSplit() {
		g.message = "Hit, stand, double down, or split."
	} else {
		g.message = "Hit, stand, or double down."
	}

	return nil
}

// Hit draws one card face up into the current hand
func (g *Game) Hit() error {
	hand, err := g.currentHand()
	if err != nil {
		return err
	}

	card, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	hand.Cards = append(hand.Cards, card)
	hand.IsBusted = hand.Busted()
	g.sendLogMessages(playable.SimpleLogMessageSlice("%s hit and drew %s", g.playerName, card))

	if hand.IsBusted {
		switch g.advanceTurn() {
		case advancedAllBusted:
			total := 0
			for _, h := range g.hands {
				total += h.Bet
			}
			g.message = fmt.Sprintf("All hands busted (-$%d)", total)
		case advancedDealerTurn:
			g.message = "Dealer's turn."
		case advancedNextHand:
			g.message = g.playingHandMessage()
		}

		return nil
	}

	total, _ := hand.Value()
	if total == target && g.options.AutoStandOn21 {
		hand.IsStanding = true
		if g.advanceTurn() == advancedDealerTurn {
			g.message = "Player stands with 21. Dealer's turn."
		} else {
			g.message = g.playingHandMessage()
		}

		return nil
	}

	if total == target {
		g.message = "You have 21! Hit or Stand?"
	} else {
		g.message = "Hit or Stand?"
	}

	return nil
}

// Stand marks the current hand standing and advances the turn
func (g *Game) Stand() error {
	hand, err := g.currentHand()
	if err != nil {
		return err
	}

	hand.IsStanding = true
	g.sendLogMessages(playable.SimpleLogMessageSlice("%s stands", g.playerName))

	if g.advanceTurn() == advancedDealerTurn {
		g.message = "Dealer's turn."
	} else {
		g.message = g.playingHandMessage()
	}

	return nil
}

// DoubleDown doubles the bet on the current hand in exchange for exactly
// one more card and a forced stand
func (g *Game) DoubleDown() error {
	hand, err := g.currentHand()
	if err != nil {
		return err
	}

	if len(hand.Cards) != 2 {
		return g.reject(ErrDoubleDownCardCount)
	}

	if g.balance < hand.Bet {
		return g.reject(ErrDoubleDownBalance)
	}

	if hand.IsSplit && !g.options.AllowDoubleAfterSplit {
		return g.reject(ErrDoubleAfterSplit)
	}

	card, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	g.balance -= hand.Bet
	hand.Bet *= 2
	hand.DoubleDown = true
	hand.Cards = append(hand.Cards, card)
	hand.IsStanding = true
	hand.IsBusted = hand.Busted()

	g.sendLogMessages(playable.SimpleLogMessageSlice("%s doubled down and drew %s", g.playerName, card))

	switch g.advanceTurn() {
	case advancedAllBusted:
		g.message = fmt.Sprintf("Busted after doubling down! (-$%d)", hand.Bet)
	case advancedDealerTurn:
		g.message = "Dealer's turn."
	case advancedNextHand:
		g.message = g.playingHandMessage()
	}

	return nil
}

// Split converts the current pair into two independent hands, each taking
// one original card plus one freshly drawn card. Neither new hand is
// eligible for blackjack status.
func (g *Game) Split() error {
	hand, err := g.currentHand()
	if err != nil {
		return err
	}

	if !hand.CanSplit() {
		return g.reject(ErrCannotSplit)
	}

	if g.balance < hand.Bet {
		return g.reject(ErrSplitBalance)
	}

	card1, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	card2, err := g.deck.Draw(true)
	if err != nil {
		return err
	}

	g.balance -= hand.Bet

	first := &Hand{
		Cards:   []*deck.Card{hand.Cards[0], card1},
		Bet:     hand.Bet,
		IsSplit: true,
	}

	second := &Hand{
		Cards:   []*deck.Card{hand.Cards[1], card2},
		Bet:     hand.Bet,
		IsSplit: true,
	}

	hands := make([]*Hand, 0, len(g.hands)+1)
	hands = append(hands, g.hands[:g.currentHandIndex]...)
	hands = append(hands, first, second)
	hands = append(hands, g.hands[g.currentHandIndex+1:]...)
	g.hands = hands

	g.phase = PhasePlayerTurn
	g.message = g.playingHandMessage()
	g.sendLogMessages(playable.SimpleLogMessageSlice("%s split the pair", g.playerName))

	return nil
}

// DealerPlay flips the hole card and draws until the dealer must stand.
// With DealerStandsOnSoft17 disabled, the dealer also hits a soft 17.
func (g *Game) DealerPlay() error {
	if g.phase != PhaseDealerTurn {
		return g.reject(UserError("It is not the dealer's turn."))
	}

	// only reachable through a corrupt restore; the dealer turn follows the deal
	if g.deck == nil {
		return errors.New("no shoe in play")
	}

	for _, card := range g.dealer.Cards {
		card.FaceUp = true
	}

	g.dealer.IsBlackjack = g.dealer.Blackjack()

	for {
		total, soft := g.dealer.Value()
		if total >= dealerStandTotal && !(total == dealerStandTotal && soft && !g.options.DealerStandsOnSoft17) {
			break
		}

		card, err := g.deck.Draw(true)
		if err != nil {
			return err
		}

		g.dealer.Cards = append(g.dealer.Cards, card)
	}

	g.dealer.IsBusted = g.dealer.Busted()
	g.phase = PhaseEvaluating
	g.message = "Evaluating hands..."

	total, _ := g.dealer.Value()
	g.sendLogMessages(playable.SimpleLogMessageSlice("dealer stands with %d", total))

	return nil
}

// EvaluateHands settles every player hand against the final dealer hand,
// credits the total payout once, and ends the round. Per-hand results are
// always populated; the aggregate result is only set for a single hand.
func (g *Game) EvaluateHands() error {
	if g.phase != PhaseEvaluating {
		return g.reject(UserError("There is nothing to evaluate."))
	}

	handResults := make([]*HandResult, len(g.hands))
	totalPayout := 0
	for i, hand := range g.hands {
		result, payout := settle(hand, g.dealer, g.options)
		handResults[i] = &HandResult{Result: result, Bet: hand.Bet, Payout: payout}
		totalPayout += payout
	}

	g.balance += totalPayout
	g.handResults = handResults
	g.lastBet = g.hands[0].Bet
	g.phase = PhaseGameOver

	if len(handResults) == 1 {
		res := handResults[0]
		g.result = res.Result

		switch res.Result {
		case ResultWin:
			g.message = fmt.Sprintf("You win (+$%d)", res.Profit())
		case ResultLose:
			g.message = fmt.Sprintf("You lose (-$%d)", res.Bet)
		case ResultPush:
			g.message = "Push (Bet returned)"
		case ResultBlackjack:
			g.message = fmt.Sprintf("Blackjack! (+$%d)", res.Profit())
		}
	} else {
		g.result = ""
		g.message = g.multiHandMessage(handResults)
	}

	g.sendLogMessages(playable.SimpleLogMessageSlice(g.message))
	return nil
}

func (g *Game) multiHandMessage(handResults []*HandResult) string {
	parts := make([]string, 0, len(handResults)+1)
	netWin := 0
	for i, res := range handResults {
		netWin += res.Profit()

		var text string
		switch res.Result {
		case ResultWin:
			text = "Win"
		case ResultLose:
			text = "Lose"
		case ResultPush:
			text = "Push"
		case ResultBlackjack:
			text = "Blackjack!"
		}

		parts = append(parts, fmt.Sprintf("Hand %d: %s", i+1, text))
	}

	switch {
	case netWin > 0:
		parts = append(parts, fmt.Sprintf("Total: +$%d", netWin))
	case netWin < 0:
		parts = append(parts, fmt.Sprintf("Total: -$%d", -netWin))
	default:
		parts = append(parts, "Total: Push")
	}

	return strings.Join(parts, " | ")
}

// NewRound resets the table for the next round, preserving the balance
// and, if configured, the previous bet as the suggested next bet
func (g *Game) NewRound() error {
	if g.phase != PhaseGameOver && g.phase != PhaseBetting {
		return g.reject(ErrRoundInProgress)
	}

	g.deck = nil
	g.dealer = newHand(0)
	g.hands = []*Hand{newHand(0)}
	g.currentHandIndex = 0
	g.phase = PhaseBetting
	g.message = newRoundMessage
	g.result = ""
	g.handResults = nil

	if !g.options.KeepBetBetweenRounds {
		g.lastBet = 0
	}

	return nil
}

// --- helpers ---

type advanceOutcome int

const (
	advancedNextHand advanceOutcome = iota
	advancedDealerTurn
	advancedAllBusted
)

// advanceTurn applies the uniform completion rule: if every hand busted,
// the dealer does not play; if every hand is complete, the dealer plays;
// otherwise play moves to the next incomplete hand. The same rule applies
// no matter how the current hand completed.
func (g *Game) advanceTurn() advanceOutcome {
	if allHandsBusted(g.hands) {
		g.phase = PhaseEvaluating
		return advancedAllBusted
	}

	if allHandsComplete(g.hands) {
		g.phase = PhaseDealerTurn
		return advancedDealerTurn
	}

	// hands complete strictly in order, so the next incomplete hand is
	// always at a later index
	for i := g.currentHandIndex + 1; i < len(g.hands); i++ {
		if !g.hands[i].IsComplete() {
			g.currentHandIndex = i
			break
		}
	}

	g.phase = PhasePlayerTurn
	return advancedNextHand
}

func (g *Game) currentHand() (*Hand, error) {
	if g.phase != PhasePlayerTurn {
		return nil, g.reject(ErrNotPlayerTurn)
	}

	hand := g.hands[g.currentHandIndex]

	// the bet is down but there is no shoe until DealInitialCards
	if len(hand.Cards) == 0 {
		return nil, g.reject(ErrNotDealt)
	}

	if hand.IsComplete() {
		return nil, g.reject(ErrNotPlayerTurn)
	}

	return hand, nil
}

// SyncBalance replaces the bankroll between rounds, used when the stored
// balance changed outside the game (such as a chip purchase). Mid-round it
// is a no-op so the money in play stays consistent.
func (g *Game) SyncBalance(balance int) {
	if g.phase == PhaseBetting || g.phase == PhaseGameOver {
		g.balance = balance
	}
}

// reject records the rejection message and passes the error through
func (g *Game) reject(err UserError) error {
	g.message = err.Error()
	return err
}

func (g *Game) playingHandMessage() string {
	n := g.currentHandIndex + 1
	return fmt.Sprintf("Playing %d%s hand. Hit, stand, or double down.", n, ordinal(n))
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func (g *Game) sendLogMessages(messages []*playable.LogMessage) {
	select {
	case g.logChan <- messages:
	default:
		g.logger.Warn("log channel is full")
	}
}
