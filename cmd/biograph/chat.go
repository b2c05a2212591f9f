package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	chatNoMemory  bool
	chatReasoning bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive multi-turn session",
	Long: `Starts a read-eval-print loop. With conversation memory on (the
default), every prompt is conditioned on the prior turns of the session so
follow-up questions can refer back to earlier answers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reasoning := effectiveToggle(cmd, "reasoning", chatReasoning, cfg.Agent.Reasoning)

		a, graphClient, err := newAgent(ctx, !chatNoMemory, reasoning)
		if err != nil {
			return err
		}
		defer graphClient.Close(ctx)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "biograph chat. Type a question, \"clear\" to reset the session, or \"exit\" to quit.")

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				break
			}
			if err := ctx.Err(); err != nil {
				return nil
			}

			question := strings.TrimSpace(scanner.Text())
			switch question {
			case "":
				continue
			case "exit", "quit":
				return nil
			case "clear":
				a.ResetMemory()
				fmt.Fprintln(out, "session cleared")
				continue
			}

			result := a.Answer(ctx, question)
			if result.Err != "" {
				fmt.Fprintf(out, "error: %s\n", result.Err)
				continue
			}
			fmt.Fprintln(out, result.Answer)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().BoolVar(&chatNoMemory, "no-memory", false,
		"disable conversation memory for this session")
	chatCmd.Flags().BoolVar(&chatReasoning, "reasoning", false,
		"ask the model for step-by-step reasoning before its final answer")
}
