package robustness

import (
	"math"

	"robustscan/internal/network"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SweepResult brackets the critical radius of an example.
type SweepResult struct {
	// Robust is the largest radius proven UNSAT, NaN if none was.
	Robust float64
	// Broken is the smallest radius found SAT, NaN if none was.
	Broken float64
	// Stopped is set when a TIMEOUT or ERROR ended the search early.
	Stopped *Report
	Queries int
}

// Sweep bisects δ in [lo, hi]. Shrinking the box never introduces a
// counterexample, so every UNSAT raises the lower end and every SAT lowers
// the upper end.
func (v *Verifier) Sweep(factory network.Factory, example Example, lo, hi float64, steps int) (*SweepResult, error) {
	if lo < 0 || hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, configErrorf("sweep", "invalid radius interval [%v, %v]", lo, hi)
	}
	result := &SweepResult{Robust: math.NaN(), Broken: math.NaN()}

	check := func(delta float64) (Outcome, error) {
		verifier, err := v.WithDelta(delta)
		if err != nil {
			return ERROR, err
		}
		net, err := factory()
		if err != nil {
			return ERROR, errors.Wrap(err, "load network")
		}
		result.Queries++
		report, err := verifier.Verify(net, example)
		if err != nil {
			return ERROR, err
		}
		switch report.Outcome {
		case UNSAT:
			result.Robust = delta
		case SAT:
			result.Broken = delta
		default:
			result.Stopped = report
		}
		return report.Outcome, nil
	}

	outcome, err := check(hi)
	if err != nil || outcome != SAT {
		return result, err
	}
	outcome, err = check(lo)
	if err != nil || outcome != UNSAT {
		return result, err
	}
	low, high := lo, hi
	for i := 0; i < steps; i++ {
		mid := low + (high-low)/2
		outcome, err = check(mid)
		if err != nil {
			return result, err
		}
		switch outcome {
		case UNSAT:
			low = mid
		case SAT:
			high = mid
		default:
			log.Warnf("sweep stopped at delta %v: %s", mid, outcome)
			return result, nil
		}
	}
	return result, nil
}
