package robustness

import (
	"robustscan/internal/network"

	"github.com/pkg/errors"
)

// Query is exactly one robustness question: a perturbation box over the
// inputs and the violation condition over the outputs.
type Query struct {
	Bounds    []Interval
	Violation network.Disjunction
}

// BuildQuery runs the bound deriver and the violation encoder.
func BuildQuery(net network.Network, x []float64, label int, p Perturbation) (*Query, error) {
	bounds, err := DeriveBounds(x, p, net.InputVars())
	if err != nil {
		return nil, err
	}
	violation, err := EncodeViolation(net.OutputVars(), label)
	if err != nil {
		return nil, err
	}
	return &Query{Bounds: bounds, Violation: violation}, nil
}

// Assemble resets the network and writes the query into it. Bounds are
// applied in full before the disjunction is attached.
func Assemble(net network.Network, q *Query) error {
	if len(q.Violation) == 0 {
		return ErrNoCompetitors
	}
	if err := net.Reset(); err != nil {
		return errors.Wrap(err, "Reset")
	}
	if err := ApplyBounds(net, q.Bounds); err != nil {
		return err
	}
	if err := net.AddDisjunctionConstraint(q.Violation); err != nil {
		return errors.Wrap(err, "AddDisjunctionConstraint")
	}
	return nil
}
