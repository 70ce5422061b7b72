package report

import (
	"strings"
	"testing"

	"robustscan/internal/robustness"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Line(t *testing.T) {
	var testCases = []struct {
		Report   robustness.Report
		Expected []string
	}{
		{robustness.Report{Example: "digit_0", Delta: 0.001, Outcome: robustness.UNSAT}, []string{"digit_0", "UNSAT", "robust with delta=0.001"}},
		{robustness.Report{Example: "digit_1", Label: 1, Outcome: robustness.UNSAT, Trivial: true}, []string{"single output label"}},
		{robustness.Report{Example: "digit_2", Label: 2, Outcome: robustness.SAT, Counterexample: &robustness.Counterexample{Competitor: 7}}, []string{"SAT", "label 7 reaches label 2"}},
		{robustness.Report{Example: "digit_3", Outcome: robustness.TIMEOUT}, []string{"TIMEOUT", "timed out"}},
		{robustness.Report{Example: "digit_4", Outcome: robustness.ERROR, Err: errors.New("label 12 out of range")}, []string{"ERROR", "label 12 out of range"}},
	}
	for _, tc := range testCases {
		line := Line(&tc.Report)
		for _, s := range tc.Expected {
			assert.Contains(t, line, s)
		}
		assert.NotContains(t, line, "\n")
	}
}

func Test_Counterexample(t *testing.T) {
	r := &robustness.Report{Outcome: robustness.UNSAT}
	assert.Empty(t, Counterexample(r, 4))

	r.Counterexample = &robustness.Counterexample{
		Input:   []float64{0, 0.25, 0.5, 0.75, 1},
		Outputs: []float64{0.1, 0.9},
	}
	text := Counterexample(r, 2)
	assert.Contains(t, text, "[0 0.25] ... (3 more)")
	assert.Contains(t, text, "outputs: [0.1 0.9]")

	text = Counterexample(r, 0)
	assert.Contains(t, text, "[0 0.25 0.5 0.75 1]")
	assert.NotContains(t, text, "more")
}

func Test_Summary(t *testing.T) {
	summary := &robustness.Summary{
		RunID: "run-1",
		Delta: 0.001,
		Reports: []*robustness.Report{
			{Example: "digit_0", Delta: 0.001, Outcome: robustness.UNSAT},
			{Example: "digit_1", Label: 1, Delta: 0.001, Outcome: robustness.SAT},
		},
	}
	text := Summary(summary)
	assert.Contains(t, text, "run-1")
	assert.Contains(t, text, "Robustness for digit_0 (label 0, delta=0.001): UNSAT\n")
	assert.Contains(t, text, "Robustness for digit_1 (label 1, delta=0.001): SAT\n")
	assert.True(t, strings.HasSuffix(text, "\n"))
	assert.Contains(t, text, "total 2")
}
