package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biograph-ai/biograph/internal/agent"
	"github.com/biograph-ai/biograph/internal/eval"
)

var (
	evalDataset string
	evalOutput  string
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Run the evaluation harness over the golden dataset",
	Long: `Runs all four evaluation scenarios (baseline, memory, reasoning, and
memory plus reasoning) against the golden dataset, prints the report, and
writes it to the configured report path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		datasetPath := cfg.Eval.DatasetPath
		if evalDataset != "" {
			datasetPath = evalDataset
		}
		reportPath := cfg.Eval.ReportPath
		if evalOutput != "" {
			reportPath = evalOutput
		}

		dataset, err := eval.LoadDataset(datasetPath)
		if err != nil {
			return err
		}

		provider, err := newProvider()
		if err != nil {
			return err
		}
		graphClient, err := newGraphClient(ctx)
		if err != nil {
			return err
		}
		defer graphClient.Close(ctx)

		factory := func(opts agent.Options) (*agent.Agent, error) {
			opts.Model = cfg.Agent.Model
			opts.MaxRows = cfg.Graph.MaxRows
			opts.MemoryTurns = cfg.Agent.MemoryTurns
			opts.Logger = log
			return agent.New(provider, graphClient, opts)
		}

		harness, err := eval.NewHarness(factory, dataset, log)
		if err != nil {
			return err
		}

		log.Info("starting evaluation",
			"dataset", datasetPath, "examples", len(dataset))

		report, err := harness.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), report.Format())

		if err := report.WriteFile(reportPath); err != nil {
			return err
		}
		log.Info("report written", "path", reportPath)
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVar(&evalDataset, "dataset", "",
		"path to the golden dataset (overrides config)")
	evalCmd.Flags().StringVarP(&evalOutput, "output", "o", "",
		"path to write the report to (overrides config)")
}
