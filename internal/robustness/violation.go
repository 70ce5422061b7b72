package robustness

import (
	"robustscan/internal/network"
)

// EncodeViolation builds "some competitor scores at least as high as the
// true label": one clause output[true] - output[j] <= 0 per competitor j.
func EncodeViolation(outputVars []network.Var, trueLabel int) (network.Disjunction, error) {
	if trueLabel < 0 || trueLabel >= len(outputVars) {
		return nil, configErrorf("label", "label %d out of range [0, %d)", trueLabel, len(outputVars))
	}
	if len(outputVars) < 2 {
		return nil, ErrNoCompetitors
	}
	disjunction := make(network.Disjunction, 0, len(outputVars)-1)
	for j := range outputVars {
		if j == trueLabel {
			continue
		}
		eq := network.NewEquation(network.LE)
		eq.AddAddend(1, outputVars[trueLabel])
		eq.AddAddend(-1, outputVars[j])
		eq.SetScalar(0)
		disjunction = append(disjunction, network.Clause{eq})
	}
	return disjunction, nil
}

// Competitor returns the output index the clause pits against the true label.
func Competitor(clause network.Clause, outputVars []network.Var) int {
	for _, eq := range clause {
		for _, a := range eq.Addends {
			if a.Coefficient >= 0 {
				continue
			}
			for j, v := range outputVars {
				if v == a.Var {
					return j
				}
			}
		}
	}
	return -1
}
