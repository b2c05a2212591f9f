package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askReasoning bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single biomedical question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		ctx := cmd.Context()

		memoryOn := cfg.Agent.ConversationMemory
		reasoning := effectiveToggle(cmd, "reasoning", askReasoning, cfg.Agent.Reasoning)

		a, graphClient, err := newAgent(ctx, memoryOn, reasoning)
		if err != nil {
			return err
		}
		defer graphClient.Close(ctx)

		result := a.Answer(ctx, question)
		if result.Err != "" {
			return errors.New(result.Err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "\n[type: %s, entities: %v, rows: %d]\n",
				result.QuestionType, result.Entities, result.ResultCount)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askReasoning, "reasoning", false,
		"ask the model for step-by-step reasoning before its final answer")
}
