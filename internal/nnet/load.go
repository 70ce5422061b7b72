package nnet

import (
	"robustscan/internal/util"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load reads a model description from a path or URL. JSON documents are
// accepted as YAML.
func Load(source string) (*Model, error) {
	data, err := util.ReadSource(source)
	if err != nil {
		return nil, errors.Wrapf(err, "read model %s", source)
	}
	model, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "model %s", source)
	}
	log.Infof("loaded model %q: %d inputs, %d layers, %d outputs", model.Name, model.Inputs, len(model.Layers), model.Outputs())
	return model, nil
}

func Parse(data []byte) (*Model, error) {
	model := &Model{}
	if err := yaml.Unmarshal(data, model); err != nil {
		return nil, errors.Wrap(err, "Unmarshal")
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}
