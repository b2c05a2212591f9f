package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the knowledge graph schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		graphClient, err := newGraphClient(ctx)
		if err != nil {
			return err
		}
		defer graphClient.Close(ctx)

		schema, err := graphClient.Schema(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Node labels: %s\n", strings.Join(schema.NodeLabels, ", "))
		fmt.Fprintf(out, "Relationship types: %s\n", strings.Join(schema.RelationshipTypes, ", "))

		labels := make([]string, 0, len(schema.NodeProperties))
		for label := range schema.NodeProperties {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		for _, label := range labels {
			fmt.Fprintf(out, "\n%s:\n", label)
			for _, prop := range schema.NodeProperties[label] {
				line := "  " + prop
				if samples := schema.PropertyValues[prop]; len(samples) > 0 {
					parts := make([]string, len(samples))
					for i, v := range samples {
						parts[i] = fmt.Sprint(v)
					}
					line += " (e.g. " + strings.Join(parts, ", ") + ")"
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	},
}
