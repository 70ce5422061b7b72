// Package dataset loads labeled examples to verify.
package dataset

import (
	"fmt"

	"robustscan/internal/robustness"
	"robustscan/internal/util"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type entry struct {
	Name  string    `yaml:"name" json:"name"`
	Label int       `yaml:"label" json:"label"`
	Input []float64 `yaml:"input" json:"input"`
}

type document struct {
	Examples []entry `yaml:"examples" json:"examples"`
}

// Load reads examples from a path or URL. Unnamed examples are called
// digit_<label>, numbered when a label repeats.
func Load(source string) ([]robustness.Example, error) {
	data, err := util.ReadSource(source)
	if err != nil {
		return nil, errors.Wrapf(err, "read dataset %s", source)
	}
	examples, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset %s", source)
	}
	log.Infof("loaded %d examples from %s", len(examples), source)
	return examples, nil
}

func Parse(data []byte) ([]robustness.Example, error) {
	doc := &document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	if len(doc.Examples) == 0 {
		return nil, errors.New("no examples")
	}
	var (
		examples = make([]robustness.Example, len(doc.Examples))
		seen     = make(map[string]int)
	)
	for i, e := range doc.Examples {
		if len(e.Input) == 0 {
			return nil, fmt.Errorf("example %d has no input", i)
		}
		base := e.Name
		if base == "" {
			base = fmt.Sprintf("digit_%d", e.Label)
		}
		name := base
		if n := seen[base]; n > 0 {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		seen[base]++
		examples[i] = robustness.Example{
			Name:  name,
			Label: e.Label,
			Input: e.Input,
		}
	}
	return examples, nil
}
