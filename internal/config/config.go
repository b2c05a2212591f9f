// Package config loads and validates the application configuration from a
// YAML file with ${VAR} environment interpolation. Credentials and the
// database target are consumed once at process start; they are not part of
// the pipeline's runtime contract.
package config

import (
	"time"

	"github.com/biograph-ai/biograph/internal/graph"
	"github.com/biograph-ai/biograph/internal/llm"
)

// Config is the root configuration for biograph.
type Config struct {
	LLM     llm.ProviderConfig `mapstructure:"llm" yaml:"llm" validate:"required"`
	Graph   graph.Config       `mapstructure:"graph" yaml:"graph" validate:"required"`
	Agent   AgentConfig        `mapstructure:"agent" yaml:"agent"`
	Eval    EvalConfig         `mapstructure:"eval" yaml:"eval"`
	Logging LoggingConfig      `mapstructure:"logging" yaml:"logging"`
}

// AgentConfig contains workflow agent settings.
type AgentConfig struct {
	// Model overrides the provider default model.
	Model string `mapstructure:"model" yaml:"model"`

	// MemoryTurns bounds the conversation history in chat sessions.
	MemoryTurns int `mapstructure:"memory_turns" yaml:"memory_turns" validate:"min=0,max=100"`

	// ConversationMemory sets the memory toggle for ask; chat always starts
	// with memory on unless --no-memory is given.
	ConversationMemory bool `mapstructure:"conversation_memory" yaml:"conversation_memory"`

	// Reasoning sets the default reasoning toggle; the --reasoning flag
	// overrides it per invocation.
	Reasoning bool `mapstructure:"reasoning" yaml:"reasoning"`
}

// EvalConfig contains evaluation harness settings.
type EvalConfig struct {
	// DatasetPath locates the golden benchmark JSON file.
	DatasetPath string `mapstructure:"dataset" yaml:"dataset"`

	// ReportPath is where the text report is persisted.
	ReportPath string `mapstructure:"report" yaml:"report"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// DefaultConfig returns a configuration with local development defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: llm.ProviderConfig{
			Type: llm.ProviderAnthropic,
		},
		Graph: graph.Config{
			URI:               "bolt://localhost:7687",
			Username:          "neo4j",
			MaxRows:           25,
			ConnectionTimeout: 10 * time.Second,
			SampleValues:      5,
		},
		Agent: AgentConfig{
			MemoryTurns: 10,
		},
		Eval: EvalConfig{
			DatasetPath: "golden_dataset.json",
			ReportPath:  "evaluation_report.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
