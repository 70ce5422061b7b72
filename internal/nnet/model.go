// Package nnet describes feed-forward classifiers made of dense layers.
package nnet

import (
	"fmt"

	"github.com/pkg/errors"
)

type Activation string

const (
	ReLU   Activation = "relu"
	Linear Activation = "linear"
)

// Layer computes activation(W·a + b). Weights has one row per output unit.
type Layer struct {
	Weights    [][]float64 `yaml:"weights" json:"weights"`
	Biases     []float64   `yaml:"biases" json:"biases"`
	Activation Activation  `yaml:"activation" json:"activation"`
}

func (l *Layer) Outputs() int {
	return len(l.Weights)
}

// Model is read-only once validated and may be shared between goroutines.
type Model struct {
	Name   string  `yaml:"name" json:"name"`
	Inputs int     `yaml:"inputs" json:"inputs"`
	Layers []Layer `yaml:"layers" json:"layers"`
}

func (m *Model) Outputs() int {
	if len(m.Layers) == 0 {
		return 0
	}
	return m.Layers[len(m.Layers)-1].Outputs()
}

// Validate checks that consecutive layer shapes line up.
func (m *Model) Validate() error {
	if m.Inputs <= 0 {
		return fmt.Errorf("model %q: inputs must be positive, got %d", m.Name, m.Inputs)
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("model %q: no layers", m.Name)
	}
	width := m.Inputs
	for i := range m.Layers {
		layer := &m.Layers[i]
		if layer.Activation == "" {
			layer.Activation = Linear
		}
		if layer.Activation != ReLU && layer.Activation != Linear {
			return fmt.Errorf("layer %d: unsupported activation %q", i, layer.Activation)
		}
		if layer.Outputs() == 0 {
			return fmt.Errorf("layer %d: no units", i)
		}
		if len(layer.Biases) != layer.Outputs() {
			return fmt.Errorf("layer %d: %d biases for %d units", i, len(layer.Biases), layer.Outputs())
		}
		for j, row := range layer.Weights {
			if len(row) != width {
				return fmt.Errorf("layer %d unit %d: %d weights, previous layer has %d units", i, j, len(row), width)
			}
		}
		width = layer.Outputs()
	}
	return nil
}

// Evaluate runs a concrete forward pass.
func (m *Model) Evaluate(x []float64) ([]float64, error) {
	if len(x) != m.Inputs {
		return nil, errors.Errorf("input has %d dimensions, model expects %d", len(x), m.Inputs)
	}
	a := x
	for i := range m.Layers {
		layer := &m.Layers[i]
		z := make([]float64, layer.Outputs())
		for j, row := range layer.Weights {
			sum := layer.Biases[j]
			for k, w := range row {
				sum += w * a[k]
			}
			if layer.Activation == ReLU && sum < 0 {
				sum = 0
			}
			z[j] = sum
		}
		a = z
	}
	return a, nil
}

// Predict returns the index of the highest output, the first one on ties.
func (m *Model) Predict(x []float64) (int, error) {
	out, err := m.Evaluate(x)
	if err != nil {
		return -1, err
	}
	best := 0
	for j := range out {
		if out[j] > out[best] {
			best = j
		}
	}
	return best, nil
}
