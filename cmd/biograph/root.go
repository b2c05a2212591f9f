package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/biograph-ai/biograph/internal/config"
)

var (
	cfgPath string
	verbose bool

	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "biograph",
	Short: "Question answering over a biomedical knowledge graph",
	Long: `biograph answers natural-language biomedical questions by classifying
them, extracting entities, running parameterized Cypher queries against a
Neo4j knowledge graph, and formatting the results with an LLM.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadWithDefaults(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if verbose {
			cfg.Logging.Level = "debug"
		}
		log = config.NewLogger(cfg.Logging)
		slog.SetDefault(log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "biograph.yaml",
		"path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(schemaCmd)
}

// Execute runs the root command with the given base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
