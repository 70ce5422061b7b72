package smt

import (
	"fmt"
	"math"
	"strconv"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Real is a term of sort real. Products are only ever formed with
// constants so every formula stays in linear real arithmetic.
type Real struct {
	name  string
	value yices2.TermT
}

func NewReal(name string) Real {
	term := yices2.NewUninterpretedTerm(yices2.RealType())
	errcode := yices2.SetTermName(term, name)
	if errcode < 0 {
		fmt.Println("set term name ", errcode)
	}
	return Real{
		name:  name,
		value: term,
	}
}

// NewRealVal converts v exactly through its decimal representation.
func NewRealVal(v float64) (Real, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Real{}, fmt.Errorf("cannot encode %v as a real constant", v)
	}
	term := yices2.ParseFloat(strconv.FormatFloat(v, 'f', -1, 64))
	if term < 0 {
		return Real{}, fmt.Errorf("parse %v: %s", v, yices2.ErrorString())
	}
	return Real{value: term}, nil
}

func Zero() Real {
	return Real{value: yices2.Zero()}
}

func (r Real) Name() string {
	if r.name == "" {
		return fmt.Sprintf("t%d", r.value)
	}
	return r.name
}

func (r Real) GetRaw() yices2.TermT {
	return r.value
}

func (r Real) Add(other Real) Real {
	return Real{value: yices2.Add(r.value, other.value)}
}

// Scale multiplies by a constant.
func (r Real) Scale(c float64) (Real, error) {
	if c == 1 {
		return r, nil
	}
	k, err := NewRealVal(c)
	if err != nil {
		return Real{}, err
	}
	return Real{value: yices2.Mul(k.value, r.value)}, nil
}

func (r Real) Ge(other Real) Bool {
	return Bool{value: yices2.ArithGeqAtom(r.value, other.value)}
}

func (r Real) Le(other Real) Bool {
	return Bool{value: yices2.ArithLeqAtom(r.value, other.value)}
}

func (r Real) Eq(other Real) Bool {
	return Bool{value: yices2.ArithEqAtom(r.value, other.value)}
}

// Relu is max(r, 0) as an if-then-else term.
func (r Real) Relu() Real {
	zero := yices2.Zero()
	return Real{value: yices2.Ite(yices2.ArithGeqAtom(r.value, zero), r.value, zero)}
}

// Sum folds terms with +; the sum of nothing is zero.
func Sum(terms ...Real) Real {
	if len(terms) == 0 {
		return Zero()
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = acc.Add(t)
	}
	return acc
}
