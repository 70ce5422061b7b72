package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"robustscan/internal/network"
	"robustscan/internal/robustness"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// h = relu(x0 - x1), out0 = 0.5 - h, out1 = h
const reluNetwork = `
name: relu
inputs: 2
layers:
  - activation: relu
    weights: [[1, -1]]
    biases: [0]
  - weights: [[-1], [1]]
    biases: [0.5, 0]
`

const points = `
examples:
  - name: robust
    label: 0
    input: [0.3, 0.1]
  - name: broken
    label: 0
    input: [0.34, 0.1]
`

func writeFile(t *testing.T, dir, name, body string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestLoader(t *testing.T) *Loader {
	dir := t.TempDir()
	loader := NewLoader()
	require.NoError(t, loader.LoadNetwork(writeFile(t, dir, "net.yaml", reluNetwork)))
	require.NoError(t, loader.LoadDataset(writeFile(t, dir, "set.yaml", points)))
	return loader
}

func Test_LoaderExample(t *testing.T) {
	loader := newTestLoader(t)
	assert.Equal(t, 2, loader.GetModel().Inputs)
	require.Len(t, loader.GetExamples(), 2)

	e, err := loader.Example("broken")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.34, 0.1}, e.Input)

	e, err = loader.Example("0")
	require.NoError(t, err)
	assert.Equal(t, "robust", e.Name)

	_, err = loader.Example("2")
	assert.Error(t, err)
	_, err = loader.Example("missing")
	assert.Error(t, err)
}

func Test_LoaderErrors(t *testing.T) {
	loader := NewLoader()
	assert.Error(t, loader.LoadNetwork(filepath.Join(t.TempDir(), "none.yaml")))
	assert.Error(t, loader.LoadDataset(writeFile(t, t.TempDir(), "empty.yaml", "examples: []")))
	assert.Nil(t, loader.GetModel())

	verifier, err := robustness.NewVerifier(robustness.DefaultPerturbation(0.01), network.DefaultSolveOptions())
	require.NoError(t, err)
	_, err = NewAnalyzer(loader, verifier, 1).Run(context.Background())
	assert.Error(t, err)
}

func Test_AnalyzerRun(t *testing.T) {
	yices2.Init()
	defer yices2.Exit()

	verifier, err := robustness.NewVerifier(robustness.DefaultPerturbation(0.01), network.SolveOptions{Timeout: 30 * time.Second})
	require.NoError(t, err)
	analyzer := NewAnalyzer(newTestLoader(t), verifier, 1)

	summary, err := analyzer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, robustness.UNSAT, summary.Reports[0].Outcome)
	assert.Equal(t, robustness.SAT, summary.Reports[1].Outcome)

	result, err := analyzer.Sweep("robust", 0, 0.5, 10)
	require.NoError(t, err)
	assert.Nil(t, result.Stopped)
	assert.LessOrEqual(t, result.Robust, 0.025)
	assert.GreaterOrEqual(t, result.Broken, 0.025)
}
