package robustness

import (
	"robustscan/internal/network"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Example is one labeled input point under test.
type Example struct {
	Name  string
	Label int
	Input []float64
}

// Counterexample is the input part of a satisfying witness together with
// the outputs the engine assigned to it.
type Counterexample struct {
	Input      []float64
	Outputs    []float64
	Competitor int
}

// Report is the verdict for one example.
type Report struct {
	Example string
	Label   int
	Delta   float64
	Outcome Outcome
	// Trivial marks single-label networks that never reached the engine.
	Trivial        bool
	ConfigError    bool
	Err            error
	Counterexample *Counterexample
	Stats          network.Stats
}

type Verifier struct {
	perturbation Perturbation
	options      network.SolveOptions
}

func NewVerifier(p Perturbation, options network.SolveOptions) (*Verifier, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if options.Timeout <= 0 {
		options.Timeout = network.DefaultTimeout
	}
	return &Verifier{perturbation: p, options: options}, nil
}

func (v *Verifier) Perturbation() Perturbation {
	return v.perturbation
}

func (v *Verifier) Options() network.SolveOptions {
	return v.options
}

// WithDelta returns a copy of the verifier using another radius.
func (v *Verifier) WithDelta(delta float64) (*Verifier, error) {
	p := v.perturbation
	p.Delta = delta
	return NewVerifier(p, v.options)
}

// Verify runs the pipeline for one example on net. Configuration problems
// are returned as *ConfigurationError before the engine is touched; every
// other failure becomes an ERROR report.
func (v *Verifier) Verify(net network.Network, example Example) (*Report, error) {
	logger := log.WithFields(log.Fields{"example": example.Name, "label": example.Label, "delta": v.perturbation.Delta})
	logger.Info("verifying local robustness")

	report := &Report{
		Example: example.Name,
		Label:   example.Label,
		Delta:   v.perturbation.Delta,
	}

	query, err := BuildQuery(net, example.Input, example.Label, v.perturbation)
	if errors.Is(err, ErrNoCompetitors) {
		logger.Warn("single output label, trivially robust")
		report.Outcome = UNSAT
		report.Trivial = true
		verificationsTotal.WithLabelValues(report.Outcome.String()).Inc()
		return report, nil
	}
	if err != nil {
		configurationErrorsTotal.Inc()
		return nil, err
	}
	logger.Debugf("query: %d bounds, %d clauses", len(query.Bounds), len(query.Violation))

	if err := Assemble(net, query); err != nil {
		logger.Errorf("assemble: %v", err)
		return v.fail(report, &EngineError{Err: err}), nil
	}

	result, err := Invoke(net, v.options)
	report.Stats = result.Stats
	if err != nil {
		return v.fail(report, err), nil
	}

	report.Outcome = Classify(result)
	switch report.Outcome {
	case SAT:
		report.Counterexample = extractCounterexample(net, query, result.Witness, example.Label)
		if report.Counterexample.Competitor >= 0 {
			logger.Infof("SAT: counterexample found, label %d reaches label %d", report.Counterexample.Competitor, example.Label)
		} else {
			logger.Infof("SAT: counterexample found, competing label unknown")
		}
	case UNSAT:
		logger.Infof("UNSAT: robust")
	case TIMEOUT:
		logger.Warnf("TIMEOUT after %s", result.Stats.Elapsed)
	case ERROR:
		report.Err = errors.Errorf("engine returned status %s without a witness: %s", result.Status, result.Reason)
		logger.Error(report.Err)
	}
	verificationsTotal.WithLabelValues(report.Outcome.String()).Inc()
	return report, nil
}

func (v *Verifier) fail(report *Report, err error) *Report {
	report.Outcome = ERROR
	report.Err = err
	verificationsTotal.WithLabelValues(report.Outcome.String()).Inc()
	return report
}

func extractCounterexample(net network.Network, query *Query, witness map[network.Var]float64, label int) *Counterexample {
	var (
		inputVars  = net.InputVars()
		outputVars = net.OutputVars()
		ce         = &Counterexample{
			Input:      make([]float64, len(inputVars)),
			Competitor: -1,
		}
	)
	for i, iv := range query.Bounds {
		ce.Input[i] = witness[iv.Var]
		if !iv.Contains(ce.Input[i]) {
			log.Warnf("witness input %d = %v lies outside [%v, %v]", i, ce.Input[i], iv.Lower, iv.Upper)
		}
	}

	haveOutputs := true
	for _, o := range outputVars {
		if _, ok := witness[o]; !ok {
			haveOutputs = false
			break
		}
	}
	if haveOutputs {
		ce.Outputs = make([]float64, len(outputVars))
		for j, o := range outputVars {
			ce.Outputs[j] = witness[o]
		}
		for j := range ce.Outputs {
			if j == label {
				continue
			}
			if ce.Competitor < 0 || ce.Outputs[j] > ce.Outputs[ce.Competitor] {
				ce.Competitor = j
			}
		}
		return ce
	}

	// without output values fall back to the first clause the witness satisfies
	for _, clause := range query.Violation {
		satisfied := true
		for _, eq := range clause {
			if !eq.Holds(witness) {
				satisfied = false
				break
			}
		}
		if satisfied {
			ce.Competitor = Competitor(clause, outputVars)
			break
		}
	}
	return ce
}
