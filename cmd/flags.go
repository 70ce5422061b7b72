package main

import (
	"time"

	"robustscan/internal/config"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	ConfigFile  string
	NetworkFile string
	DatasetFile string
	Delta       float64
	RangeLow    float64
	RangeHigh   float64
	Timeout     time.Duration
	Verbosity   int
	Workers     int
	MetricsAddr string
	ThreadSafe  bool
)

func addRunFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVar(&ConfigFile, "config", "", "run configuration file (yaml)")
	cmd.Flags().StringVar(&NetworkFile, "network", "", "network description file or url")
	cmd.Flags().StringVar(&DatasetFile, "dataset", "", "labeled examples file or url")
	cmd.Flags().Float64Var(&Delta, "delta", defaults.Delta, "perturbation radius per coordinate")
	cmd.Flags().Float64Var(&RangeLow, "low", defaults.Range.Low, "lowest valid input value")
	cmd.Flags().Float64Var(&RangeHigh, "high", defaults.Range.High, "highest valid input value")
	cmd.Flags().DurationVar(&Timeout, "timeout", defaults.Solver.Timeout, "solver timeout per example")
	cmd.Flags().IntVar(&Verbosity, "verbosity", defaults.Solver.Verbosity, "0 quiet, 1 progress, 2 dump solver terms")
}

// loadConfig reads --config and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = NetworkFile
	}
	if flags.Changed("dataset") {
		cfg.Dataset = DatasetFile
	}
	if flags.Changed("delta") {
		cfg.Delta = Delta
	}
	if flags.Changed("low") {
		cfg.Range.Low = RangeLow
	}
	if flags.Changed("high") {
		cfg.Range.High = RangeHigh
	}
	if flags.Changed("timeout") {
		cfg.Solver.Timeout = Timeout
	}
	if flags.Changed("verbosity") {
		cfg.Solver.Verbosity = Verbosity
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers = Workers
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr = MetricsAddr
	}
	if flags.Lookup("thread-safe-solver") != nil && flags.Changed("thread-safe-solver") {
		cfg.ThreadSafeSolver = ThreadSafe
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config")
	}
	setLogLevel(cfg.Solver.Verbosity)
	return cfg, nil
}

func setLogLevel(verbosity int) {
	switch {
	case verbosity <= 0:
		log.SetLevel(log.WarnLevel)
	case verbosity == 1:
		log.SetLevel(log.InfoLevel)
	default:
		log.SetLevel(log.DebugLevel)
	}
}
