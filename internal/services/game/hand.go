package game

import (
	"fmt"

	"github.com/dicehall/dicehall/internal/model"
)

// Default session parameters
const (
	// DefaultBet is the fixed stake per resolved roll
	DefaultBet = 50
	// WinScoreBump is the score increment awarded on every won hand
	WinScoreBump = 5
)

// Hand is the craps state machine for one playable session. It is purely
// in-memory; reading the player's bankroll and writing results back through
// the account store is the controller's job.
//
// Point == 0 means the come-out phase. Once Cash drops to or below zero the
// hand is terminal: further rolls return the error outcome and leave every
// field untouched.
type Hand struct {
	Cash     int
	Bet      int
	Point    int
	Wins     int
	Losses   int
	Score    int
	GameOver bool
}

// NewHand starts a hand against the given bankroll and running score
func NewHand(cash, bet, score int) *Hand {
	return &Hand{
		Cash:     cash,
		Bet:      bet,
		Score:    score,
		GameOver: cash <= 0,
	}
}

func isNatural(sum int) bool { return sum == 7 || sum == 11 }
func isCraps(sum int) bool   { return sum == 2 || sum == 3 || sum == 12 }

// ApplyRoll applies the sum of one two-die roll (2..12) to the hand and
// reports what happened. The reason strings on resolved rolls are part of
// the observable contract.
func (h *Hand) ApplyRoll(sum int) model.RollOutcome {
	if h.GameOver {
		return model.RollOutcome{
			Kind:    model.RollError,
			Message: "No cash left. Game over.",
		}
	}

	// Come-out phase
	if h.Point == 0 {
		if isNatural(sum) {
			h.Wins++
			h.Cash += h.Bet
			h.Score += WinScoreBump
			out := model.RollOutcome{
				Kind:   model.RollResolve,
				Phase:  model.PhaseComeOut,
				Result: model.ResultWin,
				Reason: "Natural (7 or 11).",
			}
			h.settle()
			return out
		}
		if isCraps(sum) {
			h.Losses++
			h.Cash -= h.Bet
			out := model.RollOutcome{
				Kind:   model.RollResolve,
				Phase:  model.PhaseComeOut,
				Result: model.ResultLoss,
				Reason: "Craps (2, 3, or 12).",
			}
			h.settle()
			return out
		}
		h.Point = sum
		return model.RollOutcome{
			Kind:    model.RollContinue,
			Phase:   model.PhasePoint,
			Point:   h.Point,
			Message: fmt.Sprintf("Point is %d. Roll again.", h.Point),
		}
	}

	// Point phase
	if sum == 7 {
		point := h.Point
		h.Losses++
		h.Cash -= h.Bet
		h.Point = 0
		out := model.RollOutcome{
			Kind:   model.RollResolve,
			Phase:  model.PhasePoint,
			Result: model.ResultLoss,
			Reason: fmt.Sprintf("Seven-out before making %d.", point),
			Point:  point,
		}
		h.settle()
		return out
	}

	if sum == h.Point {
		point := h.Point
		h.Wins++
		h.Cash += h.Bet
		h.Score += WinScoreBump
		h.Point = 0
		out := model.RollOutcome{
			Kind:   model.RollResolve,
			Phase:  model.PhasePoint,
			Result: model.ResultWin,
			Reason: fmt.Sprintf("Made the point %d!", point),
			Point:  point,
		}
		h.settle()
		return out
	}

	return model.RollOutcome{
		Kind:    model.RollContinue,
		Phase:   model.PhasePoint,
		Point:   h.Point,
		Message: fmt.Sprintf("Still aiming for %d.", h.Point),
	}
}

// settle re-evaluates the terminal condition after a resolution
func (h *Hand) settle() {
	if h.Cash <= 0 {
		h.GameOver = true
	}
}

// State is a value snapshot of the hand for callers outside the package
type State struct {
	Cash     int  `json:"cash"`
	Bet      int  `json:"bet"`
	Point    int  `json:"point"`
	Wins     int  `json:"wins"`
	Losses   int  `json:"losses"`
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
}

// State returns a snapshot of the hand
func (h *Hand) State() State {
	return State{
		Cash:     h.Cash,
		Bet:      h.Bet,
		Point:    h.Point,
		Wins:     h.Wins,
		Losses:   h.Losses,
		Score:    h.Score,
		GameOver: h.GameOver,
	}
}
