package smt

import (
	"fmt"
	"testing"
	"time"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pigeonhole asserts that holes+1 pigeons sit in distinct holes. It is
// unsatisfiable and takes a CDCL search exponential time in holes.
func pigeonhole(t *testing.T, solver *Solver, holes int) {
	in := make([][]yices2.TermT, holes+1)
	for i := range in {
		in[i] = make([]yices2.TermT, holes)
		for j := range in[i] {
			in[i][j] = yices2.NewUninterpretedTerm(yices2.BoolType())
			yices2.SetTermName(in[i][j], fmt.Sprintf("p_%d_%d", i, j))
		}
	}
	var clauses []Bool
	for i := range in {
		someHole := make([]Bool, holes)
		for j := range in[i] {
			someHole[j] = Bool{value: in[i][j]}
		}
		clauses = append(clauses, Or(someHole...))
	}
	for j := 0; j < holes; j++ {
		for i := range in {
			for k := i + 1; k < len(in); k++ {
				clauses = append(clauses, Or(Bool{value: yices2.Not(in[i][j])}, Bool{value: yices2.Not(in[k][j])}))
			}
		}
	}
	require.NoError(t, solver.Assert(clauses...))
}

func Test_CheckWithTimeoutInterrupts(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	var testCases = []struct {
		Name    string
		Timeout time.Duration
	}{
		{"short timeout", 100 * time.Millisecond},
		// expires before the search starts
		{"expired timeout", time.Nanosecond},
	}
	for _, tc := range testCases {
		solver := NewSolver()
		pigeonhole(t, solver, 14)

		startTime := time.Now()
		status, model, timedOut, err := solver.CheckWithTimeout(tc.Timeout)
		elapsed := time.Since(startTime)
		solver.Close()

		require.NoError(t, err, tc.Name)
		assert.Nil(t, model, tc.Name)
		assert.Equal(t, yices2.StatusInterrupted, status, tc.Name)
		assert.True(t, timedOut, tc.Name)
		assert.Less(t, elapsed, 10*time.Second, tc.Name)
	}
}

func Test_CheckWithTimeoutFinishesFirst(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	solver := NewSolver()
	defer solver.Close()
	pigeonhole(t, solver, 3)

	status, model, timedOut, err := solver.CheckWithTimeout(30 * time.Second)
	require.NoError(t, err)
	assert.Nil(t, model)
	assert.False(t, timedOut)
	assert.Equal(t, yices2.StatusUnsat, status)
}
