// Package network describes the capability set a constraint-solving backend
// must provide so that robustness queries can be posed against it.
package network

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrQueryAssembled is returned when a second disjunction is added to a
// network that has not been reset since the previous query.
var ErrQueryAssembled = errors.New("a query is already assembled on this network, reset it first")

// Var identifies a variable of a network's input/output relation.
type Var int

type Relation int

const (
	LE Relation = iota // Σ a·x <= c
	GE                 // Σ a·x >= c
	EQ                 // Σ a·x == c
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "=="
	}
	return "?"
}

type Addend struct {
	Coefficient float64
	Var         Var
}

// Equation is a linear (in)equality over network variables.
type Equation struct {
	Relation Relation
	Addends  []Addend
	Scalar   float64
}

func NewEquation(relation Relation) *Equation {
	return &Equation{
		Relation: relation,
		Addends:  make([]Addend, 0, 2),
	}
}

func (eq *Equation) AddAddend(coefficient float64, v Var) {
	eq.Addends = append(eq.Addends, Addend{Coefficient: coefficient, Var: v})
}

func (eq *Equation) SetScalar(scalar float64) {
	eq.Scalar = scalar
}

// Holds evaluates the equation under the given assignment.
func (eq *Equation) Holds(values map[Var]float64) bool {
	sum := 0.0
	for _, a := range eq.Addends {
		sum += a.Coefficient * values[a.Var]
	}
	switch eq.Relation {
	case LE:
		return sum <= eq.Scalar
	case GE:
		return sum >= eq.Scalar
	case EQ:
		return sum == eq.Scalar
	}
	return false
}

func (eq *Equation) String() string {
	var sb strings.Builder
	for i, a := range eq.Addends {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%g*v%d", a.Coefficient, a.Var)
	}
	fmt.Fprintf(&sb, " %s %g", eq.Relation, eq.Scalar)
	return sb.String()
}

// Clause is a conjunction of equations; it is one alternative of a
// disjunction.
type Clause []*Equation

func (c Clause) String() string {
	parts := make([]string, len(c))
	for i := range c {
		parts[i] = c[i].String()
	}
	return strings.Join(parts, " && ")
}

// Disjunction is satisfied as soon as any one of its clauses is.
type Disjunction []Clause

func (d Disjunction) String() string {
	parts := make([]string, len(d))
	for i := range d {
		parts[i] = "(" + d[i].String() + ")"
	}
	return strings.Join(parts, " || ")
}

type SolveOptions struct {
	Verbosity int
	Timeout   time.Duration
}

const DefaultTimeout = 60 * time.Second

func DefaultSolveOptions() SolveOptions {
	return SolveOptions{Verbosity: 1, Timeout: DefaultTimeout}
}

type Status int

const (
	StatusUnknown Status = iota
	StatusSat
	StatusUnsat
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSat:
		return "sat"
	case StatusUnsat:
		return "unsat"
	case StatusError:
		return "error"
	}
	return "unknown"
}

type Stats struct {
	TimedOut    bool
	Elapsed     time.Duration
	Variables   int
	Constraints int
}

func (s Stats) HasTimedOut() bool {
	return s.TimedOut
}

// Result is the raw answer of a backend. Witness is empty unless the query
// was found satisfiable.
type Result struct {
	Status  Status
	Witness map[Var]float64
	Stats   Stats
	Reason  string
}

// Network is one instance of a loaded network together with its per-query
// state. Implementations are not safe for concurrent use.
type Network interface {
	InputVars() []Var
	OutputVars() []Var
	SetLowerBound(v Var, value float64) error
	SetUpperBound(v Var, value float64) error
	AddDisjunctionConstraint(d Disjunction) error
	Solve(options SolveOptions) (Result, error)
	// Reset drops all bounds and constraints added since the last reset.
	Reset() error
}

// Factory produces independent network instances sharing one read-only
// topology.
type Factory func() (Network, error)
