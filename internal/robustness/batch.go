package robustness

import (
	"context"
	"time"

	"robustscan/internal/network"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Summary aggregates the reports of one batch run, in dataset order.
type Summary struct {
	RunID        string
	Delta        float64
	Reports      []*Report
	ConfigErrors int
	Elapsed      time.Duration
	counts       map[Outcome]int
}

func newSummary(runID string, delta float64, size int) *Summary {
	return &Summary{
		RunID:   runID,
		Delta:   delta,
		Reports: make([]*Report, size),
		counts:  make(map[Outcome]int),
	}
}

func (s *Summary) Count(o Outcome) int {
	return s.counts[o]
}

func (s *Summary) Total() int {
	return len(s.Reports)
}

func (s *Summary) tally() {
	for _, r := range s.Reports {
		s.counts[r.Outcome]++
		if r.ConfigError {
			s.ConfigErrors++
		}
	}
}

// Batch verifies many examples, each against its own network instance.
type Batch struct {
	verifier *Verifier
	workers  int
	runID    string
}

func NewBatch(verifier *Verifier, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{
		verifier: verifier,
		workers:  workers,
		runID:    uuid.NewString(),
	}
}

func (b *Batch) RunID() string {
	return b.runID
}

// Run never aborts on a single bad example. Cancelling ctx stops scheduling;
// examples not yet started are reported as ERROR.
func (b *Batch) Run(ctx context.Context, factory network.Factory, examples []Example) *Summary {
	var (
		startTime = time.Now()
		summary   = newSummary(b.runID, b.verifier.Perturbation().Delta, len(examples))
		logger    = log.WithField("run_id", b.runID)
	)
	logger.Infof("verifying %d examples with %d workers", len(examples), b.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range examples {
		i := i
		if err := gctx.Err(); err != nil {
			summary.Reports[i] = &Report{
				Example: examples[i].Name,
				Label:   examples[i].Label,
				Delta:   summary.Delta,
				Outcome: ERROR,
				Err:     errors.Wrap(err, "not scheduled"),
			}
			continue
		}
		g.Go(func() error {
			summary.Reports[i] = b.verifyOne(factory, examples[i], logger)
			return nil
		})
	}
	_ = g.Wait()

	summary.tally()
	summary.Elapsed = time.Since(startTime)
	logger.Infof("run finished in %s: SAT %d, UNSAT %d, TIMEOUT %d, ERROR %d",
		summary.Elapsed, summary.Count(SAT), summary.Count(UNSAT), summary.Count(TIMEOUT), summary.Count(ERROR))
	return summary
}

func (b *Batch) verifyOne(factory network.Factory, example Example, logger *log.Entry) *Report {
	failed := &Report{
		Example: example.Name,
		Label:   example.Label,
		Delta:   b.verifier.Perturbation().Delta,
		Outcome: ERROR,
	}
	net, err := factory()
	if err != nil {
		logger.Errorf("load network for %s: %v", example.Name, err)
		failed.Err = &EngineError{Err: errors.Wrap(err, "load network")}
		return failed
	}
	report, err := b.verifier.Verify(net, example)
	if err != nil {
		logger.Errorf("example %s rejected: %v", example.Name, err)
		failed.Err = err
		failed.ConfigError = IsConfigurationError(err)
		return failed
	}
	return report
}
