package robustness

import (
	"fmt"

	"robustscan/internal/network"
)

// fakeNetwork records every call and answers Solve through solveFn.
type fakeNetwork struct {
	inputs  []network.Var
	outputs []network.Var

	lower       map[network.Var]float64
	upper       map[network.Var]float64
	disjunction network.Disjunction
	calls       []string
	resets      int
	solves      int

	solveFn func(f *fakeNetwork, options network.SolveOptions) (network.Result, error)
}

func newFakeNetwork(numInputs, numOutputs int) *fakeNetwork {
	f := &fakeNetwork{
		inputs:  make([]network.Var, numInputs),
		outputs: make([]network.Var, numOutputs),
		lower:   make(map[network.Var]float64),
		upper:   make(map[network.Var]float64),
	}
	for i := range f.inputs {
		f.inputs[i] = network.Var(i)
	}
	for j := range f.outputs {
		f.outputs[j] = network.Var(numInputs + j)
	}
	return f
}

func (f *fakeNetwork) InputVars() []network.Var  { return f.inputs }
func (f *fakeNetwork) OutputVars() []network.Var { return f.outputs }

func (f *fakeNetwork) SetLowerBound(v network.Var, value float64) error {
	f.calls = append(f.calls, fmt.Sprintf("lower v%d", v))
	f.lower[v] = value
	return nil
}

func (f *fakeNetwork) SetUpperBound(v network.Var, value float64) error {
	f.calls = append(f.calls, fmt.Sprintf("upper v%d", v))
	f.upper[v] = value
	return nil
}

func (f *fakeNetwork) AddDisjunctionConstraint(d network.Disjunction) error {
	f.calls = append(f.calls, "disjunction")
	if f.disjunction != nil {
		return network.ErrQueryAssembled
	}
	f.disjunction = d
	return nil
}

func (f *fakeNetwork) Solve(options network.SolveOptions) (network.Result, error) {
	f.calls = append(f.calls, "solve")
	f.solves++
	if f.solveFn == nil {
		return network.Result{Status: network.StatusUnsat}, nil
	}
	return f.solveFn(f, options)
}

func (f *fakeNetwork) Reset() error {
	f.calls = append(f.calls, "reset")
	f.resets++
	f.lower = make(map[network.Var]float64)
	f.upper = make(map[network.Var]float64)
	f.disjunction = nil
	return nil
}

// answer returns a fixed result regardless of the query.
func answer(result network.Result, err error) func(*fakeNetwork, network.SolveOptions) (network.Result, error) {
	return func(*fakeNetwork, network.SolveOptions) (network.Result, error) {
		return result, err
	}
}

// breaksAbove is SAT whenever input 0 may exceed threshold, with a witness
// at its upper bound and output 1 overtaking output 0.
func breaksAbove(threshold float64) func(*fakeNetwork, network.SolveOptions) (network.Result, error) {
	return func(f *fakeNetwork, _ network.SolveOptions) (network.Result, error) {
		if f.upper[f.inputs[0]] <= threshold {
			return network.Result{Status: network.StatusUnsat}, nil
		}
		witness := make(map[network.Var]float64)
		for _, v := range f.inputs {
			witness[v] = f.upper[v]
		}
		for j, v := range f.outputs {
			witness[v] = 0
			if j == 1 {
				witness[v] = 1
			}
		}
		return network.Result{Status: network.StatusSat, Witness: witness}, nil
	}
}
