// Package engine poses queries over an nnet.Model to the yices SMT solver.
// Every unit of the network becomes a real variable constrained to equal
// its affine pre-activation, passed through an if-then-else for ReLU units.
package engine

import (
	"fmt"
	"os"
	"time"

	"robustscan/internal/network"
	"robustscan/internal/nnet"
	"robustscan/internal/smt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Engine holds the per-query state for one model. The model itself is only
// read.
type Engine struct {
	model      *nnet.Model
	inputVars  []network.Var
	outputVars []network.Var
	numVars    int

	lower       map[network.Var]float64
	upper       map[network.Var]float64
	disjunction network.Disjunction
}

func New(model *nnet.Model) *Engine {
	e := &Engine{
		model:     model,
		inputVars: make([]network.Var, model.Inputs),
	}
	for i := range e.inputVars {
		e.inputVars[i] = network.Var(i)
	}
	next := model.Inputs
	for i := range model.Layers {
		next += model.Layers[i].Outputs()
	}
	e.numVars = next
	outputs := model.Outputs()
	e.outputVars = make([]network.Var, outputs)
	for j := range e.outputVars {
		e.outputVars[j] = network.Var(next - outputs + j)
	}
	e.reset()
	return e
}

// Factory returns a constructor of independent engines sharing model.
func Factory(model *nnet.Model) network.Factory {
	return func() (network.Network, error) {
		return New(model), nil
	}
}

func (e *Engine) InputVars() []network.Var {
	return e.inputVars
}

func (e *Engine) OutputVars() []network.Var {
	return e.outputVars
}

func (e *Engine) NumVars() int {
	return e.numVars
}

func (e *Engine) Reset() error {
	e.reset()
	return nil
}

func (e *Engine) reset() {
	e.lower = make(map[network.Var]float64)
	e.upper = make(map[network.Var]float64)
	e.disjunction = nil
}

func (e *Engine) checkVar(v network.Var) error {
	if v < 0 || int(v) >= e.numVars {
		return errors.Errorf("unknown variable v%d", v)
	}
	return nil
}

func (e *Engine) SetLowerBound(v network.Var, value float64) error {
	if err := e.checkVar(v); err != nil {
		return err
	}
	if _, ok := e.lower[v]; ok {
		return errors.Errorf("lower bound of v%d already set in this query", v)
	}
	e.lower[v] = value
	return nil
}

func (e *Engine) SetUpperBound(v network.Var, value float64) error {
	if err := e.checkVar(v); err != nil {
		return err
	}
	if _, ok := e.upper[v]; ok {
		return errors.Errorf("upper bound of v%d already set in this query", v)
	}
	e.upper[v] = value
	return nil
}

func (e *Engine) AddDisjunctionConstraint(d network.Disjunction) error {
	if e.disjunction != nil {
		return network.ErrQueryAssembled
	}
	if len(d) == 0 {
		return errors.New("empty disjunction")
	}
	for _, clause := range d {
		for _, eq := range clause {
			for _, a := range eq.Addends {
				if err := e.checkVar(a.Var); err != nil {
					return err
				}
			}
		}
	}
	e.disjunction = d
	return nil
}

// Solve encodes the network and the current query into a fresh yices
// context and checks it within options.Timeout.
func (e *Engine) Solve(options network.SolveOptions) (network.Result, error) {
	startTime := time.Now()
	solver := smt.NewSolver()
	defer solver.Close()

	vars, formulas, err := e.encode()
	if err != nil {
		return network.Result{Status: network.StatusError, Reason: err.Error()}, errors.Wrap(err, "encode")
	}
	formulas, folded := fold(formulas)
	if folded {
		log.Debugf("query folded to false, no search needed")
		return network.Result{
			Status: network.StatusUnsat,
			Stats: network.Stats{
				Elapsed:   time.Since(startTime),
				Variables: len(vars),
			},
		}, nil
	}
	if options.Verbosity >= 2 {
		for _, f := range formulas {
			yices2.PpTerm(os.Stderr, f.GetRaw(), 200, 80, 0)
		}
	}
	if err := solver.Assert(formulas...); err != nil {
		return network.Result{Status: network.StatusError, Reason: err.Error()}, errors.Wrap(err, "Assert")
	}
	if options.Verbosity >= 1 {
		log.Infof("solving: %d variables, %d formulas, timeout %s", len(vars), len(formulas), options.Timeout)
	}

	status, model, timedOut, err := solver.CheckWithTimeout(options.Timeout)
	result := network.Result{
		Stats: network.Stats{
			TimedOut:    timedOut,
			Elapsed:     time.Since(startTime),
			Variables:   len(vars),
			Constraints: len(formulas),
		},
	}
	if err != nil {
		result.Status = network.StatusError
		result.Reason = err.Error()
		return result, errors.Wrap(err, "CheckWithTimeout")
	}

	switch status {
	case yices2.StatusSat:
		defer model.Close()
		result.Status = network.StatusSat
		result.Witness = make(map[network.Var]float64, len(vars))
		for i := range vars {
			val, err := model.Float64(vars[i])
			if err != nil {
				result.Status = network.StatusError
				result.Witness = nil
				result.Reason = err.Error()
				return result, errors.Wrap(err, "read witness")
			}
			result.Witness[network.Var(i)] = val
		}
	case yices2.StatusUnsat:
		result.Status = network.StatusUnsat
	default:
		result.Status = network.StatusUnknown
		result.Reason = fmt.Sprintf("search ended with yices status %d", status)
	}
	return result, nil
}

func (e *Engine) encode() ([]smt.Real, []smt.Bool, error) {
	var (
		vars     = make([]smt.Real, 0, e.numVars)
		formulas = make([]smt.Bool, 0, e.numVars+len(e.lower)+len(e.upper)+1)
	)
	for i := 0; i < e.model.Inputs; i++ {
		vars = append(vars, smt.NewReal(fmt.Sprintf("x_%d", i)))
	}

	prev := vars[:e.model.Inputs]
	for l := range e.model.Layers {
		layer := &e.model.Layers[l]
		units := make([]smt.Real, layer.Outputs())
		for j, row := range layer.Weights {
			terms := make([]smt.Real, 0, len(row)+1)
			for k, w := range row {
				if w == 0 {
					continue
				}
				t, err := prev[k].Scale(w)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "layer %d unit %d", l, j)
				}
				terms = append(terms, t)
			}
			bias, err := smt.NewRealVal(layer.Biases[j])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "layer %d bias %d", l, j)
			}
			pre := smt.Sum(append(terms, bias)...)
			if layer.Activation == nnet.ReLU {
				pre = pre.Relu()
			}
			units[j] = smt.NewReal(fmt.Sprintf("h_%d_%d", l, j))
			formulas = append(formulas, units[j].Eq(pre))
		}
		vars = append(vars, units...)
		prev = units
	}

	for v, value := range e.lower {
		c, err := smt.NewRealVal(value)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "lower bound of v%d", v)
		}
		formulas = append(formulas, vars[v].Ge(c))
	}
	for v, value := range e.upper {
		c, err := smt.NewRealVal(value)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "upper bound of v%d", v)
		}
		formulas = append(formulas, vars[v].Le(c))
	}

	if e.disjunction != nil {
		clauses := make([]smt.Bool, len(e.disjunction))
		for i, clause := range e.disjunction {
			conj := make([]smt.Bool, len(clause))
			for k, eq := range clause {
				f, err := encodeEquation(vars, eq)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "clause %d", i)
				}
				conj[k] = f
			}
			clauses[i] = smt.And(conj...)
		}
		formulas = append(formulas, smt.Or(clauses...))
	}
	return vars, formulas, nil
}

// fold drops formulas yices already reduced to true and reports whether
// one of them was reduced to false.
func fold(formulas []smt.Bool) ([]smt.Bool, bool) {
	kept := formulas[:0]
	for _, f := range formulas {
		if f.IsFalse() {
			return nil, true
		}
		if !f.IsTrue() {
			kept = append(kept, f)
		}
	}
	return kept, false
}

func encodeEquation(vars []smt.Real, eq *network.Equation) (smt.Bool, error) {
	terms := make([]smt.Real, len(eq.Addends))
	for i, a := range eq.Addends {
		t, err := vars[a.Var].Scale(a.Coefficient)
		if err != nil {
			return smt.Bool{}, err
		}
		terms[i] = t
	}
	lhs := smt.Sum(terms...)
	rhs, err := smt.NewRealVal(eq.Scalar)
	if err != nil {
		return smt.Bool{}, err
	}
	switch eq.Relation {
	case network.LE:
		return lhs.Le(rhs), nil
	case network.GE:
		return lhs.Ge(rhs), nil
	case network.EQ:
		return lhs.Eq(rhs), nil
	}
	return smt.Bool{}, errors.Errorf("unknown relation %d", eq.Relation)
}
