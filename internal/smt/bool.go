package smt

import (
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Bool is a formula. Atoms come from comparing Real terms.
type Bool struct {
	value yices2.TermT
}

func (b Bool) GetRaw() yices2.TermT {
	return b.value
}

// And of no formulas is true.
func And(formulas ...Bool) Bool {
	return Bool{value: yices2.And(raws(formulas))}
}

// Or of no formulas is false.
func Or(formulas ...Bool) Bool {
	return Bool{value: yices2.Or(raws(formulas))}
}

// IsTrue reports whether yices already folded the formula to true.
func (b Bool) IsTrue() bool {
	var val int32
	errcode := yices2.BoolConstValue(b.value, &val)
	if errcode != 0 {
		return false
	}
	return val != 0
}

// IsFalse reports whether yices already folded the formula to false.
func (b Bool) IsFalse() bool {
	var val int32
	errcode := yices2.BoolConstValue(b.value, &val)
	if errcode != 0 {
		return false
	}
	return val == 0
}

func raws(formulas []Bool) []yices2.TermT {
	terms := make([]yices2.TermT, len(formulas))
	for i := range formulas {
		terms[i] = formulas[i].value
	}
	return terms
}
