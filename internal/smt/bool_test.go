package smt

import (
	"testing"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
)

func Test_BoolFolding(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	x := NewReal("x")
	one := realVal(t, 1)
	symbolic := x.Ge(Zero())
	valid := Zero().Le(one)
	invalid := one.Le(Zero())

	var testCases = []struct {
		Name    string
		Formula Bool
		True    bool
		False   bool
	}{
		{"symbolic atom", symbolic, false, false},
		{"constant atom", valid, true, false},
		{"constant false atom", invalid, false, true},
		{"empty and", And(), true, false},
		{"empty or", Or(), false, true},
		{"and with false", And(symbolic, invalid), false, true},
		{"or with true", Or(symbolic, valid), true, false},
		{"or of symbolic", Or(symbolic, x.Le(one)), false, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.True, tc.Formula.IsTrue(), tc.Name)
		assert.Equal(t, tc.False, tc.Formula.IsFalse(), tc.Name)
	}
}
