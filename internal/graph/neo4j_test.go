package graph

import (
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biograph-ai/biograph/internal/types"
)

func TestNewNeo4jClient_ValidatesConfig(t *testing.T) {
	_, err := NewNeo4jClient(Config{})
	assert.Error(t, err)
	assert.Equal(t, ErrCodeInvalidConfig, types.CodeOf(err))

	_, err = NewNeo4jClient(Config{URI: "bolt://localhost:7687", MaxRows: 0})
	assert.Error(t, err)

	client, err := NewNeo4jClient(DefaultConfig())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestConvertRecords_RowCap(t *testing.T) {
	records := []*neo4j.Record{
		{Keys: []string{"gene"}, Values: []any{"ACE"}},
		{Keys: []string{"gene"}, Values: []any{"BRCA1"}},
		{Keys: []string{"gene"}, Values: []any{"TP53"}},
	}

	result := convertRecords(records, []string{"gene"}, 2)
	assert.Len(t, result.Records, 2)
	assert.True(t, result.Truncated)
	assert.Equal(t, "ACE", result.Records[0]["gene"])

	result = convertRecords(records, []string{"gene"}, 10)
	assert.Len(t, result.Records, 3)
	assert.False(t, result.Truncated)
}

func TestTranslateNeo4jError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected types.ErrorCode
	}{
		{
			name:     "syntax error",
			err:      errors.New("Neo.ClientError.Statement.SyntaxError: Invalid input"),
			expected: ErrCodeInvalidQuery,
		},
		{
			name:     "connection refused",
			err:      errors.New("ConnectivityError: connection refused by server"),
			expected: ErrCodeConnectionFailed,
		},
		{
			name:     "service unavailable",
			err:      errors.New("server is unavailable"),
			expected: ErrCodeConnectionFailed,
		},
		{
			name:     "anything else",
			err:      errors.New("transaction rolled back"),
			expected: ErrCodeQueryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, types.CodeOf(translateNeo4jError(tt.err)))
		})
	}
}

func TestEscapeIdentifier(t *testing.T) {
	assert.Equal(t, "Gene", escapeIdentifier("Gene"))
	assert.Equal(t, "evil````label", escapeIdentifier("evil``label"))
}

func TestMockClient_ReadOnlyGuard(t *testing.T) {
	m := NewMockClient()

	_, err := m.Query(t.Context(), "CREATE (n) RETURN n", nil)
	assert.Error(t, err)
	assert.Empty(t, m.Calls(), "rejected queries are not recorded")
}
