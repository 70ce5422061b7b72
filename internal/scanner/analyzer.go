package scanner

import (
	"context"
	"fmt"
	"time"

	"robustscan/internal/engine"
	"robustscan/internal/report"
	"robustscan/internal/robustness"

	log "github.com/sirupsen/logrus"
)

// counterexampleDims caps how many witness coordinates are printed.
const counterexampleDims = 16

type Analyzer struct {
	loader   *Loader
	verifier *robustness.Verifier
	workers  int
}

func NewAnalyzer(loader *Loader, verifier *robustness.Verifier, workers int) *Analyzer {
	ma := &Analyzer{
		loader:   loader,
		verifier: verifier,
		workers:  workers,
	}
	return ma
}

// Run verifies every loaded example and prints the verdicts.
func (ma *Analyzer) Run(ctx context.Context) (*robustness.Summary, error) {
	if ma.loader.GetModel() == nil {
		return nil, fmt.Errorf("no network loaded")
	}
	if len(ma.loader.GetExamples()) == 0 {
		return nil, fmt.Errorf("no example found")
	}

	startTime := time.Now()
	model := ma.loader.GetModel()
	log.Infof("analyzing model %s: %d inputs, %d outputs", model.Name, model.Inputs, model.Outputs())

	batch := robustness.NewBatch(ma.verifier, ma.workers)
	summary := batch.Run(ctx, engine.Factory(model), ma.loader.GetExamples())
	for _, r := range summary.Reports {
		fmt.Println(report.Line(r))
		if r.Outcome == robustness.SAT {
			fmt.Print(report.Counterexample(r, counterexampleDims))
		}
	}
	fmt.Println()
	fmt.Print(report.Summary(summary))
	fmt.Println("analyze time used: ", time.Since(startTime).Seconds())
	return summary, nil
}

// Sweep searches the critical radius of one example.
func (ma *Analyzer) Sweep(ref string, lo, hi float64, steps int) (*robustness.SweepResult, error) {
	if ma.loader.GetModel() == nil {
		return nil, fmt.Errorf("no network loaded")
	}
	example, err := ma.loader.Example(ref)
	if err != nil {
		return nil, err
	}
	return ma.verifier.Sweep(engine.Factory(ma.loader.GetModel()), example, lo, hi, steps)
}
