package main

import (
	"fmt"

	"robustscan/internal/engine"
	"robustscan/internal/robustness"
	"robustscan/internal/scanner"

	"github.com/spf13/cobra"
)

var inspectCommand = &cobra.Command{
	Use:   "inspect",
	Short: "print the query of one example without solving it",
	Long:  ``,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := inspect(cmd); err != nil {
			fmt.Printf("service err: %v\n", err)
		}
	},
}

var ExampleRef string

func init() {
	addRunFlags(inspectCommand)
	inspectCommand.Flags().StringVar(&ExampleRef, "example", "0", "example name or index")
}

func inspect(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loader := scanner.NewLoader()
	if err := loader.LoadNetwork(cfg.Network); err != nil {
		return err
	}
	if err := loader.LoadDataset(cfg.Dataset); err != nil {
		return err
	}
	example, err := loader.Example(ExampleRef)
	if err != nil {
		return err
	}

	net := engine.New(loader.GetModel())
	query, err := robustness.BuildQuery(net, example.Input, example.Label, cfg.Perturbation())
	if err != nil {
		return err
	}
	fmt.Printf("Example %s, label %d, delta %g, range [%g, %g]\n",
		example.Name, example.Label, cfg.Delta, cfg.Range.Low, cfg.Range.High)
	fmt.Printf("Input bounds (%d):\n", len(query.Bounds))
	for i, iv := range query.Bounds {
		fmt.Printf("  x%-4d v%-5d [%g, %g]\n", i, iv.Var, iv.Lower, iv.Upper)
	}
	fmt.Printf("Violation (%d clauses):\n", len(query.Violation))
	for _, clause := range query.Violation {
		fmt.Printf("  label %d: %s\n", robustness.Competitor(clause, net.OutputVars()), clause)
	}
	if predicted, err := loader.GetModel().Predict(example.Input); err == nil {
		fmt.Printf("Predicted label at the unperturbed point: %d\n", predicted)
	}
	return nil
}
