package model

// RollKind tags what applying a roll did to the hand
type RollKind string

const (
	// RollError means the roll was rejected (bankroll exhausted)
	RollError RollKind = "error"
	// RollContinue means the hand is still open and the shooter rolls again
	RollContinue RollKind = "continue"
	// RollResolve means the hand ended in a win or a loss
	RollResolve RollKind = "resolve"
)

// HandPhase identifies which craps phase a roll was resolved in
type HandPhase string

const (
	PhaseComeOut HandPhase = "come-out"
	PhasePoint   HandPhase = "point"
)

// RollResult distinguishes win from loss on a resolved roll
type RollResult string

const (
	ResultWin  RollResult = "win"
	ResultLoss RollResult = "loss"
)

// RollOutcome describes what a single roll did to the hand. The kind tag,
// the win/loss result and the human-readable reason strings are part of the
// observable contract consumed by clients.
type RollOutcome struct {
	Kind    RollKind   `json:"kind"`
	Phase   HandPhase  `json:"phase,omitempty"`
	Result  RollResult `json:"outcome,omitempty"`
	Reason  string     `json:"reason,omitempty"`
	Message string     `json:"message,omitempty"`
	Point   int        `json:"point,omitempty"`
}
