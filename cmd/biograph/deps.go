package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/biograph-ai/biograph/internal/agent"
	"github.com/biograph-ai/biograph/internal/graph"
	"github.com/biograph-ai/biograph/internal/llm"
	"github.com/biograph-ai/biograph/internal/llm/providers"
)

// effectiveToggle resolves a boolean toggle: the flag value wins when the
// flag was set explicitly on the command line, the config default otherwise.
func effectiveToggle(cmd *cobra.Command, flag string, flagValue, configDefault bool) bool {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	return configDefault
}

// newGraphClient builds and connects the Neo4j client.
func newGraphClient(ctx context.Context) (graph.Client, error) {
	client, err := graph.NewNeo4jClient(cfg.Graph)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// newProvider builds the configured LLM provider.
func newProvider() (llm.Provider, error) {
	return providers.NewProvider(cfg.LLM)
}

// newAgent wires provider and graph client into a workflow agent with the
// given toggles. The caller owns closing the returned graph client.
func newAgent(ctx context.Context, memoryOn, reasoning bool) (*agent.Agent, graph.Client, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, nil, err
	}

	graphClient, err := newGraphClient(ctx)
	if err != nil {
		return nil, nil, err
	}

	a, err := agent.New(provider, graphClient, agent.Options{
		Model:              cfg.Agent.Model,
		MaxRows:            cfg.Graph.MaxRows,
		ConversationMemory: memoryOn,
		MemoryTurns:        cfg.Agent.MemoryTurns,
		Reasoning:          reasoning,
		Logger:             log,
	})
	if err != nil {
		graphClient.Close(ctx)
		return nil, nil, err
	}
	return a, graphClient, nil
}
