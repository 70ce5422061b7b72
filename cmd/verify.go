package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"robustscan/internal/robustness"
	"robustscan/internal/scanner"

	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verifyCommand = &cobra.Command{
	Use:   "verify",
	Short: "verify delta-local robustness of every example",
	Long:  ``,
	Run: func(cmd *cobra.Command, _ []string) {
		summary, err := verifyExec(cmd)
		if err != nil {
			fmt.Printf("service err: %v\n", err)
			os.Exit(1)
		}
		if summary.ConfigErrors > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	addRunFlags(verifyCommand)
	verifyCommand.Flags().IntVar(&Workers, "workers", 1, "examples verified in parallel, above 1 requires --thread-safe-solver")
	verifyCommand.Flags().BoolVar(&ThreadSafe, "thread-safe-solver", false, "libyices was built thread-safe")
	verifyCommand.Flags().StringVar(&MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}

func verifyExec(cmd *cobra.Command) (*robustness.Summary, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.MetricsAddr != "" {
		serveMetrics(cfg.MetricsAddr)
	}

	yices2.Init()
	defer yices2.Exit()

	loader := scanner.NewLoader()
	if err := loader.LoadNetwork(cfg.Network); err != nil {
		return nil, err
	}
	if err := loader.LoadDataset(cfg.Dataset); err != nil {
		return nil, err
	}
	verifier, err := robustness.NewVerifier(cfg.Perturbation(), cfg.SolveOptions())
	if err != nil {
		return nil, err
	}
	if cfg.Workers > 1 {
		log.Warnf("running %d workers, this needs a thread-safe libyices build", cfg.Workers)
	}
	analyzer := scanner.NewAnalyzer(loader, verifier, cfg.Workers)
	return analyzer.Run(context.Background())
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Infof("serving metrics on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Errorf("metrics server: %v", err)
		}
	}()
}
