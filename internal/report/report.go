// Package report renders verification verdicts for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"robustscan/internal/robustness"
)

const (
	red    = 31
	green  = 32
	yellow = 33
	cyan   = 36
)

func Colour(color int, str string) string {
	return fmt.Sprintf("\033[%dm%s\033[0m", color, str)
}

func outcomeColour(o robustness.Outcome) int {
	switch o {
	case robustness.UNSAT:
		return green
	case robustness.SAT:
		return red
	case robustness.TIMEOUT:
		return yellow
	}
	return red
}

// Line is the one-line verdict of a report.
func Line(r *robustness.Report) string {
	var detail string
	switch r.Outcome {
	case robustness.SAT:
		detail = "found an adversarial example"
		if r.Counterexample != nil && r.Counterexample.Competitor >= 0 {
			detail = fmt.Sprintf("found an adversarial example, label %d reaches label %d", r.Counterexample.Competitor, r.Label)
		}
	case robustness.UNSAT:
		detail = fmt.Sprintf("network is robust with delta=%g", r.Delta)
		if r.Trivial {
			detail += " (single output label)"
		}
	case robustness.TIMEOUT:
		detail = fmt.Sprintf("solver timed out after %s", r.Stats.Elapsed.Round(time.Millisecond))
	case robustness.ERROR:
		detail = "verification failed"
		if r.Err != nil {
			detail = r.Err.Error()
		}
	}
	return fmt.Sprintf("%-16s label %-3d %s  %s",
		r.Example, r.Label, Colour(outcomeColour(r.Outcome), fmt.Sprintf("%-7s", r.Outcome)), detail)
}

// Counterexample prints the witness, at most limit input dimensions.
func Counterexample(r *robustness.Report, limit int) string {
	ce := r.Counterexample
	if ce == nil {
		return ""
	}
	var sb strings.Builder
	input := ce.Input
	if limit > 0 && len(input) > limit {
		input = input[:limit]
	}
	fmt.Fprintf(&sb, "  input:   %v", input)
	if len(input) < len(ce.Input) {
		fmt.Fprintf(&sb, " ... (%d more)", len(ce.Input)-len(input))
	}
	sb.WriteString("\n")
	if ce.Outputs != nil {
		fmt.Fprintf(&sb, "  outputs: %v\n", ce.Outputs)
	}
	return sb.String()
}

// Summary renders every report followed by the outcome counts.
func Summary(s *robustness.Summary) string {
	var sb strings.Builder
	sb.WriteString(Colour(cyan, fmt.Sprintf("--- Summary (run %s, delta=%g) ---", s.RunID, s.Delta)))
	sb.WriteString("\n")
	for _, r := range s.Reports {
		fmt.Fprintf(&sb, "Robustness for %s (label %d, delta=%g): %s\n", r.Example, r.Label, r.Delta, r.Outcome)
	}
	fmt.Fprintf(&sb, "total %d: SAT %d, UNSAT %d, TIMEOUT %d, ERROR %d (configuration errors %d)\n",
		s.Total(), s.Count(robustness.SAT), s.Count(robustness.UNSAT),
		s.Count(robustness.TIMEOUT), s.Count(robustness.ERROR), s.ConfigErrors)
	return sb.String()
}
