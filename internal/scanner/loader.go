package scanner

import (
	"fmt"
	"strconv"

	"robustscan/internal/dataset"
	"robustscan/internal/nnet"
	"robustscan/internal/robustness"
)

// Loader holds the network topology and the examples of one run.
type Loader struct {
	model    *nnet.Model
	examples []robustness.Example
}

func NewLoader() *Loader {
	loader := &Loader{}
	return loader
}

func (ml *Loader) GetModel() *nnet.Model {
	return ml.model
}

func (ml *Loader) GetExamples() []robustness.Example {
	return ml.examples
}

func (ml *Loader) LoadNetwork(source string) error {
	model, err := nnet.Load(source)
	if err != nil {
		return err
	}
	ml.model = model
	return nil
}

func (ml *Loader) LoadDataset(sources ...string) error {
	for _, source := range sources {
		examples, err := dataset.Load(source)
		if err != nil {
			return err
		}
		ml.examples = append(ml.examples, examples...)
	}
	return nil
}

// Example finds an example by name, or by position when ref is a number.
func (ml *Loader) Example(ref string) (robustness.Example, error) {
	for _, e := range ml.examples {
		if e.Name == ref {
			return e, nil
		}
	}
	if index, err := strconv.Atoi(ref); err == nil && index >= 0 && index < len(ml.examples) {
		return ml.examples[index], nil
	}
	return robustness.Example{}, fmt.Errorf("example %q not found", ref)
}
