package graph

import (
	"context"
	"time"

	"github.com/biograph-ai/biograph/internal/types"
)

// Client provides read-only access to the biomedical graph store.
type Client interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the connection.
	Close(ctx context.Context) error

	// Health returns the current health of the graph connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a parameterized Cypher query and returns the result
	// records. Untrusted input must only ever travel through params; queries
	// containing write-capable keywords are rejected.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Schema reports node labels, relationship types, and per-label property
	// names with sampled values.
	Schema(ctx context.Context) (Schema, error)
}

// QueryResult holds the rows returned by a Cypher query.
type QueryResult struct {
	// Records contains result rows as maps of column name to value.
	Records []map[string]any

	// Columns contains the column names of the result set.
	Columns []string

	// ExecutionTime is the wall-clock duration of the query.
	ExecutionTime time.Duration

	// Truncated is true when the row cap cut off additional results.
	Truncated bool
}

// Schema describes the shape of the graph as reported by introspection.
type Schema struct {
	// NodeLabels lists the distinct node labels.
	NodeLabels []string

	// RelationshipTypes lists the distinct relationship type names.
	RelationshipTypes []string

	// NodeProperties maps a node label to its property names.
	NodeProperties map[string][]string

	// PropertyValues maps a property name to a small sample of its
	// distinct values, used to ground entity extraction prompts.
	PropertyValues map[string][]any
}

// Config holds graph client connection settings.
type Config struct {
	// URI is the bolt/neo4j connection URI.
	URI string `mapstructure:"uri" yaml:"uri" validate:"required"`

	// Username and Password authenticate against the store.
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`

	// Database selects the database; empty uses the server default.
	Database string `mapstructure:"database" yaml:"database"`

	// MaxRows caps the number of records returned per query.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows" validate:"min=1"`

	// ConnectionTimeout bounds connection establishment.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`

	// SampleValues caps how many distinct values Schema samples per property.
	SampleValues int `mapstructure:"sample_values" yaml:"sample_values"`
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeInvalidConfig, "graph URI is required")
	}
	if c.MaxRows <= 0 {
		return types.NewError(ErrCodeInvalidConfig, "max_rows must be positive")
	}
	return nil
}

// DefaultConfig returns a Config with local development defaults.
func DefaultConfig() Config {
	return Config{
		URI:               "bolt://localhost:7687",
		Username:          "neo4j",
		MaxRows:           25,
		ConnectionTimeout: 10 * time.Second,
		SampleValues:      5,
	}
}
