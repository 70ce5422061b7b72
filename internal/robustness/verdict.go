package robustness

import (
	"robustscan/internal/network"
)

type Outcome int

const (
	// SAT: a counterexample exists, the example is not robust.
	SAT Outcome = iota
	// UNSAT: no counterexample within the box, the example is robust.
	UNSAT
	TIMEOUT
	ERROR
)

var outcomeNames = []string{"SAT", "UNSAT", "TIMEOUT", "ERROR"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) && o >= 0 {
		return outcomeNames[o]
	}
	return "UNKNOWN"
}

func (o Outcome) Robust() bool {
	return o == UNSAT
}

// Classify maps a raw engine result to an outcome. A witness wins over the
// timed-out flag: a counterexample is definitive whatever the timing.
func Classify(result network.Result) Outcome {
	if len(result.Witness) > 0 {
		return SAT
	}
	if result.Stats.HasTimedOut() {
		return TIMEOUT
	}
	if result.Status == network.StatusUnsat {
		return UNSAT
	}
	// sat without a witness, unknown or error: nothing can be concluded
	return ERROR
}
