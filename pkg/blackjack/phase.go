package blackjack

// Phase is the round's position in the turn sequence
type Phase int

// game phases
const (
	PhaseBetting Phase = iota
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseEvaluating
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhasePlayerTurn:
		return "playerTurn"
	case PhaseDealerTurn:
		return "dealerTurn"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Result is the outcome of a settled hand
type Result string

// hand results. The empty string means no result yet (or, for the round
// aggregate, a multi-hand round with per-hand results only).
const (
	ResultWin       Result = "win"
	ResultLose      Result = "lose"
	ResultPush      Result = "push"
	ResultBlackjack Result = "blackjack"
)

// HandResult is the structured settlement outcome for a single hand
type HandResult struct {
	Result Result `json:"result"`
	Bet    int    `json:"bet"`
	Payout int    `json:"payout"`
}

// Profit is the payout net of the bet
func (r *HandResult) Profit() int {
	return r.Payout - r.Bet
}
