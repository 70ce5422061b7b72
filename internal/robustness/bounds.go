package robustness

import (
	"math"

	"robustscan/internal/network"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Perturbation is an axis-aligned box radius together with the valid value
// range every coordinate is clipped to.
type Perturbation struct {
	Delta float64
	Low   float64
	High  float64
}

// DefaultPerturbation matches normalized pixel intensities.
func DefaultPerturbation(delta float64) Perturbation {
	return Perturbation{Delta: delta, Low: 0, High: 1}
}

func (p Perturbation) Validate() error {
	if math.IsNaN(p.Delta) || math.IsInf(p.Delta, 0) || p.Delta < 0 {
		return configErrorf("delta", "must be a finite value >= 0, got %v", p.Delta)
	}
	if math.IsNaN(p.Low) || math.IsNaN(p.High) {
		return configErrorf("range", "bounds must not be NaN")
	}
	if p.Low > p.High {
		return configErrorf("range", "low %v is greater than high %v", p.Low, p.High)
	}
	return nil
}

type Interval struct {
	Var   network.Var
	Lower float64
	Upper float64
}

func (iv Interval) Contains(v float64) bool {
	return v >= iv.Lower && v <= iv.Upper
}

// DeriveBounds computes the feasible box around x.
func DeriveBounds(x []float64, p Perturbation, inputVars []network.Var) ([]Interval, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(x) != len(inputVars) {
		return nil, configErrorf("input", "example has %d dimensions, network expects %d", len(x), len(inputVars))
	}
	intervals := make([]Interval, len(x))
	outside := 0
	for i := range x {
		if math.IsNaN(x[i]) {
			return nil, configErrorf("input", "dimension %d is NaN", i)
		}
		if x[i] < p.Low || x[i] > p.High {
			outside++
			log.Debugf("input dimension %d value %v outside [%v, %v]", i, x[i], p.Low, p.High)
		}
		lower := math.Max(p.Low, x[i]-p.Delta)
		upper := math.Min(p.High, x[i]+p.Delta)
		// the box lies entirely outside the range, snap to the nearest end
		if lower > upper {
			if x[i] < p.Low {
				upper = lower
			} else {
				lower = upper
			}
		}
		intervals[i] = Interval{Var: inputVars[i], Lower: lower, Upper: upper}
	}
	if outside > 0 {
		log.Warnf("%d input dimensions lie outside [%v, %v], bounds were clipped", outside, p.Low, p.High)
	}
	return intervals, nil
}

// ApplyBounds sets both bounds of every interval on the network.
func ApplyBounds(net network.Network, intervals []Interval) error {
	for _, iv := range intervals {
		if err := net.SetLowerBound(iv.Var, iv.Lower); err != nil {
			return errors.Wrapf(err, "SetLowerBound v%d", iv.Var)
		}
		if err := net.SetUpperBound(iv.Var, iv.Upper); err != nil {
			return errors.Wrapf(err, "SetUpperBound v%d", iv.Var)
		}
	}
	return nil
}
