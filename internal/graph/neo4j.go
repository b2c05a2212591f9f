package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/biograph-ai/biograph/internal/types"
)

// Neo4jClient implements Client for Neo4j graph databases.
type Neo4jClient struct {
	config Config
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config Config) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Neo4jClient{config: config}, nil
}

// Connect establishes a connection to the Neo4j database and verifies
// connectivity before returning.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(cfg *neo4j.Config) {
		cfg.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
	})
	if err != nil {
		return types.WrapError(ErrCodeConnectionFailed, "failed to create driver", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return types.WrapError(ErrCodeConnectionFailed,
			fmt.Sprintf("cannot reach %s", c.config.URI), err)
	}

	c.driver = driver
	return nil
}

// Close releases all resources and closes the connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}
	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(ErrCodeConnectionClosed, "failed to close driver", err)
	}
	c.driver = nil
	return nil
}

// Health returns the current health of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not connected")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}
	return types.Healthy("connected to Neo4j")
}

// Query executes a read-only parameterized Cypher query. Results are capped
// at the configured row maximum.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(ErrCodeConnectionClosed, "driver not connected")
	}
	if err := CheckReadOnly(cypher); err != nil {
		return QueryResult{}, err
	}

	start := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		var columns []string
		if keys, err := res.Keys(); err == nil {
			columns = keys
		}
		return convertRecords(records, columns, c.config.MaxRows), nil
	})
	if err != nil {
		return QueryResult{}, translateNeo4jError(err)
	}

	qr := result.(QueryResult)
	qr.ExecutionTime = time.Since(start)
	return qr, nil
}

// Schema introspects node labels, relationship types, per-label property
// names, and a bounded sample of property values.
func (c *Neo4jClient) Schema(ctx context.Context) (Schema, error) {
	schema := Schema{
		NodeProperties: make(map[string][]string),
		PropertyValues: make(map[string][]any),
	}

	labels, err := c.collectStrings(ctx, "CALL db.labels() YIELD label RETURN label", "label")
	if err != nil {
		return Schema{}, types.WrapError(ErrCodeSchemaFailed, "label introspection failed", err)
	}
	schema.NodeLabels = labels

	relTypes, err := c.collectStrings(ctx,
		"CALL db.relationshipTypes() YIELD relationshipType RETURN relationshipType", "relationshipType")
	if err != nil {
		return Schema{}, types.WrapError(ErrCodeSchemaFailed, "relationship introspection failed", err)
	}
	schema.RelationshipTypes = relTypes

	for _, label := range labels {
		props, err := c.labelProperties(ctx, label)
		if err != nil {
			return Schema{}, types.WrapError(ErrCodeSchemaFailed,
				fmt.Sprintf("property introspection failed for label %s", label), err)
		}
		schema.NodeProperties[label] = props

		for _, prop := range props {
			if _, seen := schema.PropertyValues[prop]; seen {
				continue
			}
			values, err := c.sampleValues(ctx, label, prop)
			if err != nil {
				continue
			}
			if len(values) > 0 {
				schema.PropertyValues[prop] = values
			}
		}
	}

	return schema, nil
}

func (c *Neo4jClient) collectStrings(ctx context.Context, cypher, column string) ([]string, error) {
	result, err := c.Query(ctx, cypher, nil)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(result.Records))
	for _, rec := range result.Records {
		if s, ok := rec[column].(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (c *Neo4jClient) labelProperties(ctx context.Context, label string) ([]string, error) {
	// Labels come from db.labels(), not user input, but are still escaped
	// since they cannot travel as query parameters.
	cypher := fmt.Sprintf("MATCH (n:`%s`) UNWIND keys(n) AS key RETURN DISTINCT key LIMIT 50",
		escapeIdentifier(label))
	return c.collectStrings(ctx, cypher, "key")
}

func (c *Neo4jClient) sampleValues(ctx context.Context, label, prop string) ([]any, error) {
	cypher := fmt.Sprintf(
		"MATCH (n:`%s`) WHERE n.`%s` IS NOT NULL RETURN DISTINCT n.`%s` AS value LIMIT $limit",
		escapeIdentifier(label), escapeIdentifier(prop), escapeIdentifier(prop))

	limit := c.config.SampleValues
	if limit <= 0 {
		limit = 5
	}

	result, err := c.Query(ctx, cypher, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(result.Records))
	for _, rec := range result.Records {
		out = append(out, rec["value"])
	}
	return out, nil
}

func convertRecords(records []*neo4j.Record, columns []string, maxRows int) QueryResult {
	qr := QueryResult{Columns: columns}

	for _, rec := range records {
		if maxRows > 0 && len(qr.Records) >= maxRows {
			qr.Truncated = true
			break
		}
		row := make(map[string]any, len(rec.Keys))
		for i, key := range rec.Keys {
			row[key] = rec.Values[i]
		}
		qr.Records = append(qr.Records, row)
	}

	return qr
}

func translateNeo4jError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "syntaxerror") || strings.Contains(msg, "syntax error"):
		return types.WrapError(ErrCodeInvalidQuery, "cypher syntax error", err)
	case strings.Contains(msg, "connection") || strings.Contains(msg, "routing") ||
		strings.Contains(msg, "unavailable"):
		return types.WrapError(ErrCodeConnectionFailed, "graph store unavailable", err)
	default:
		return types.WrapError(ErrCodeQueryFailed, "query execution failed", err)
	}
}

// escapeIdentifier neutralizes backticks in identifiers interpolated into
// introspection queries.
func escapeIdentifier(s string) string {
	return strings.ReplaceAll(s, "`", "``")
}
