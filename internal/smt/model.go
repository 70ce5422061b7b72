package smt

import (
	"fmt"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
)

// Model is a satisfying assignment read back from a context.
type Model struct {
	raw *yices2.ModelT
}

func NewModel(raw *yices2.ModelT) *Model {
	return &Model{raw: raw}
}

func (m *Model) Close() {
	if m.raw == nil {
		return
	}
	yices2.CloseModel(m.raw)
	m.raw = nil
}

func (m *Model) Float64(r Real) (float64, error) {
	var val float64
	errcode := yices2.GetDoubleValue(*m.raw, r.GetRaw(), &val)
	if errcode != 0 {
		return 0, fmt.Errorf("value of %s: %s", r.Name(), yices2.ErrorString())
	}
	return val, nil
}
