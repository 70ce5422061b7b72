package main

import (
	"fmt"
	"math"

	"robustscan/internal/robustness"
	"robustscan/internal/scanner"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/spf13/cobra"
)

var sweepCommand = &cobra.Command{
	Use:   "sweep",
	Short: "bisect the largest robust delta of one example",
	Long:  ``,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := sweep(cmd); err != nil {
			fmt.Printf("service err: %v\n", err)
		}
	},
}

var (
	SweepLo    float64
	SweepHi    float64
	SweepSteps int
)

func init() {
	addRunFlags(sweepCommand)
	sweepCommand.Flags().StringVar(&ExampleRef, "example", "0", "example name or index")
	sweepCommand.Flags().Float64Var(&SweepLo, "lo", 0, "smallest radius to try")
	sweepCommand.Flags().Float64Var(&SweepHi, "hi", 0.1, "largest radius to try")
	sweepCommand.Flags().IntVar(&SweepSteps, "steps", 8, "bisection steps")
}

func sweep(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	yices2.Init()
	defer yices2.Exit()

	loader := scanner.NewLoader()
	if err := loader.LoadNetwork(cfg.Network); err != nil {
		return err
	}
	if err := loader.LoadDataset(cfg.Dataset); err != nil {
		return err
	}
	verifier, err := robustness.NewVerifier(cfg.Perturbation(), cfg.SolveOptions())
	if err != nil {
		return err
	}
	result, err := scanner.NewAnalyzer(loader, verifier, 1).Sweep(ExampleRef, SweepLo, SweepHi, SweepSteps)
	if err != nil {
		return err
	}
	fmt.Printf("queries:        %d\n", result.Queries)
	fmt.Printf("robust up to:   %s\n", radius(result.Robust))
	fmt.Printf("broken from:    %s\n", radius(result.Broken))
	if result.Stopped != nil {
		fmt.Printf("stopped early:  %s at delta %g\n", result.Stopped.Outcome, result.Stopped.Delta)
	}
	return nil
}

func radius(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}
