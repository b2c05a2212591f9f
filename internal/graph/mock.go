package graph

import (
	"context"
	"sync"
	"time"

	"github.com/biograph-ai/biograph/internal/types"
)

// QueryCall records one Query invocation on the mock client.
type QueryCall struct {
	Cypher string
	Params map[string]any
	At     time.Time
}

// MockClient is an in-memory Client for tests. Results are served from a
// configurable queue and every query is recorded for verification.
type MockClient struct {
	mu sync.Mutex

	connected bool

	schema  Schema
	results []QueryResult
	calls   []QueryCall

	connectError error
	queryError   error
	schemaError  error
}

// NewMockClient creates a mock graph client with an empty result queue.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// WithSchema sets the schema returned by Schema().
func (m *MockClient) WithSchema(schema Schema) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schema = schema
	return m
}

// WithResults queues query results consumed one per Query call. When the
// queue is empty, Query returns an empty result set.
func (m *MockClient) WithResults(results ...QueryResult) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, results...)
	return m
}

// WithRecords queues a single result built from the given records.
func (m *MockClient) WithRecords(records ...map[string]any) *MockClient {
	return m.WithResults(QueryResult{Records: records})
}

// WithConnectError makes Connect fail.
func (m *MockClient) WithConnectError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
	return m
}

// WithQueryError makes every Query call fail.
func (m *MockClient) WithQueryError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
	return m
}

// WithSchemaError makes Schema fail.
func (m *MockClient) WithSchemaError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemaError = err
	return m
}

// Calls returns a copy of the recorded query calls.
func (m *MockClient) Calls() []QueryCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]QueryCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Connect simulates connection establishment.
func (m *MockClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close simulates closing the connection.
func (m *MockClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

// Health reports healthy while connected.
func (m *MockClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return types.Unhealthy("mock not connected")
	}
	return types.Healthy("mock graph client")
}

// Query records the call, enforces the read-only guard, and serves the next
// queued result.
func (m *MockClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if err := CheckReadOnly(cypher); err != nil {
		return QueryResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, QueryCall{Cypher: cypher, Params: params, At: time.Now()})

	if m.queryError != nil {
		return QueryResult{}, m.queryError
	}

	if len(m.results) > 0 {
		result := m.results[0]
		m.results = m.results[1:]
		return result, nil
	}

	return QueryResult{}, nil
}

// Schema returns the configured schema fixture.
func (m *MockClient) Schema(ctx context.Context) (Schema, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.schemaError != nil {
		return Schema{}, m.schemaError
	}
	return m.schema, nil
}
