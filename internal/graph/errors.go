package graph

import "github.com/biograph-ai/biograph/internal/types"

// Graph store error codes
const (
	ErrCodeConnectionFailed  types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeConnectionClosed  types.ErrorCode = "GRAPH_CONNECTION_CLOSED"
	ErrCodeInvalidConfig     types.ErrorCode = "GRAPH_INVALID_CONFIG"
	ErrCodeInvalidQuery      types.ErrorCode = "GRAPH_INVALID_QUERY"
	ErrCodeQueryFailed       types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeReadOnlyViolation types.ErrorCode = "GRAPH_READONLY_VIOLATION"
	ErrCodeSchemaFailed      types.ErrorCode = "GRAPH_SCHEMA_FAILED"
)
