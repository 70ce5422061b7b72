package smt

import (
	"math"
	"testing"
	"time"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func realVal(t *testing.T, v float64) Real {
	r, err := NewRealVal(v)
	require.NoError(t, err)
	return r
}

func Test_RealBox(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	x := NewReal("x")
	y := NewReal("y")
	twoX, err := x.Scale(2)
	require.NoError(t, err)

	solver := NewSolver()
	defer solver.Close()
	err = solver.Assert(
		x.Ge(realVal(t, 0.25)),
		x.Le(realVal(t, 0.5)),
		y.Eq(twoX.Add(realVal(t, -0.1))),
		y.Ge(realVal(t, 0.8)),
	)
	require.NoError(t, err)

	status, model, timedOut, err := solver.CheckWithTimeout(10 * time.Second)
	require.NoError(t, err)
	assert.False(t, timedOut)
	require.Equal(t, yices2.StatusSat, status)
	defer model.Close()

	xv, err := model.Float64(x)
	require.NoError(t, err)
	yv, err := model.Float64(y)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, xv, 0.45-1e-12)
	assert.LessOrEqual(t, xv, 0.5)
	assert.InDelta(t, 2*xv-0.1, yv, 1e-12)
}

func Test_RealUnsat(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	x := NewReal("x")
	solver := NewSolver()
	defer solver.Close()
	require.NoError(t, solver.Assert(x.Ge(realVal(t, 1)), x.Le(realVal(t, 0.999))))

	status, model, timedOut, err := solver.CheckWithTimeout(10 * time.Second)
	require.NoError(t, err)
	assert.False(t, timedOut)
	assert.Nil(t, model)
	assert.Equal(t, yices2.StatusUnsat, status)
}

func Test_Relu(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	var testCases = []struct {
		In       float64
		Expected float64
	}{
		{-0.75, 0},
		{0, 0},
		{0.3, 0.3},
	}
	for _, tc := range testCases {
		x := NewReal("x")
		h := NewReal("h")
		solver := NewSolver()
		require.NoError(t, solver.Assert(x.Eq(realVal(t, tc.In)), h.Eq(x.Relu())))
		status, model, _, err := solver.CheckWithTimeout(10 * time.Second)
		require.NoError(t, err)
		require.Equal(t, yices2.StatusSat, status)
		hv, err := model.Float64(h)
		require.NoError(t, err)
		assert.InDelta(t, tc.Expected, hv, 1e-12)
		model.Close()
		solver.Close()
	}
}

func Test_RealConstants(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	_, err := NewRealVal(math.NaN())
	assert.Error(t, err)
	_, err = NewRealVal(math.Inf(1))
	assert.Error(t, err)

	for _, v := range []float64{0, -0.001, 1e-9, 123456.789} {
		x := NewReal("x")
		solver := NewSolver()
		require.NoError(t, solver.Assert(x.Eq(realVal(t, v))))
		_, model, _, err := solver.CheckWithTimeout(10 * time.Second)
		require.NoError(t, err)
		xv, err := model.Float64(x)
		require.NoError(t, err)
		assert.InDelta(t, v, xv, 1e-12)
		model.Close()
		solver.Close()
	}

	assert.Equal(t, Zero().GetRaw(), Sum().GetRaw())
}
