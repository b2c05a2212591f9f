package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biograph-ai/biograph/internal/graph"
	"github.com/biograph-ai/biograph/internal/llm/providers"
	"github.com/biograph-ai/biograph/internal/types"
)

func testSchema() graph.Schema {
	return graph.Schema{
		NodeLabels:        []string{"Disease", "Drug", "Gene", "Protein"},
		RelationshipTypes: []string{"ASSOCIATED_WITH", "ENCODES", "TREATS"},
		NodeProperties: map[string][]string{
			"Disease": {"disease_name"},
			"Drug":    {"drug_name"},
			"Gene":    {"gene_name"},
		},
		PropertyValues: map[string][]any{
			"disease_name": {"Hypertension", "Diabetes"},
			"drug_name":    {"Lisinopril", "Metformin"},
			"gene_name":    {"ACE", "BRCA1"},
		},
	}
}

func TestAnswer_DrugTreatmentEndToEnd(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Classify this biomedical question", "drug_treatment").
		WithRule("Extract specific biomedical entities", `["Hypertension"]`).
		WithRule("Convert these database results", "Lisinopril is used to treat Hypertension.")

	graphClient := graph.NewMockClient().
		WithSchema(testSchema()).
		WithRecords(map[string]any{"drug": "Lisinopril", "disease": "Hypertension"})

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Which drugs treat Hypertension?")

	assert.Empty(t, result.Err)
	assert.Equal(t, QuestionDrugTreatment, result.QuestionType)
	assert.Equal(t, []string{"Hypertension"}, result.Entities)
	assert.Contains(t, result.Answer, "Lisinopril")
	assert.Equal(t, 1, result.ResultCount)

	// The entity travelled as a bound parameter, never in the query text.
	calls := graphClient.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].Cypher, "Hypertension")
	assert.Equal(t, []string{"Hypertension"}, calls[0].Params["terms"])
}

func TestAnswer_NeverBothAnswerAndError(t *testing.T) {
	tests := []struct {
		name  string
		setup func() (*providers.MockProvider, *graph.MockClient)
	}{
		{
			name: "successful run",
			setup: func() (*providers.MockProvider, *graph.MockClient) {
				p := providers.NewMockProvider().
					WithRule("Classify", "gene_disease").
					WithRule("Extract", `["BRCA1"]`).
					WithRule("Convert", "BRCA1 is associated with breast cancer.")
				g := graph.NewMockClient().
					WithRecords(map[string]any{"gene": "BRCA1", "disease": "Breast Cancer"})
				return p, g
			},
		},
		{
			name: "llm failure",
			setup: func() (*providers.MockProvider, *graph.MockClient) {
				p := providers.NewMockProvider().
					WithError(types.NewError("LLM_COMPLETION_FAILED", "boom"))
				return p, graph.NewMockClient()
			},
		},
		{
			name: "graph failure",
			setup: func() (*providers.MockProvider, *graph.MockClient) {
				p := providers.NewMockProvider().
					WithRule("Classify", "gene_disease").
					WithRule("Extract", `["BRCA1"]`)
				g := graph.NewMockClient().
					WithQueryError(types.NewError(graph.ErrCodeConnectionFailed, "down"))
				return p, g
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, g := tt.setup()
			a, err := New(p, g, Options{})
			require.NoError(t, err)

			result := a.Answer(context.Background(), "What genes are associated with breast cancer?")

			if result.Err == "" {
				assert.NotEmpty(t, result.Answer, "successful run must produce an answer")
			} else {
				assert.Empty(t, result.Answer, "failed run must not carry an answer")
			}
			assert.True(t, result.QuestionType.IsValid())
		})
	}
}

func TestAnswer_UnreachableDatabaseFails(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Classify", "drug_treatment").
		WithRule("Extract", `["Hypertension"]`)

	graphClient := graph.NewMockClient().
		WithQueryError(types.NewError(graph.ErrCodeConnectionFailed, "connection refused"))

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Which drugs treat Hypertension?")

	assert.NotEmpty(t, result.Err)
	assert.Contains(t, result.Err, "unavailable")
	assert.Empty(t, result.Answer)
}

func TestAnswer_UnclassifiableDegradesToFallback(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Classify", "no idea, sorry").
		WithRule("Extract", `["Aspirin"]`).
		WithRule("Convert", "Aspirin appears in the graph as a Drug.")

	graphClient := graph.NewMockClient().
		WithRecords(map[string]any{"labels": []string{"Drug"}, "properties": map[string]any{"drug_name": "Aspirin"}})

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Tell me about Aspirin")

	assert.Empty(t, result.Err)
	assert.Equal(t, QuestionUnknown, result.QuestionType)

	// The fallback free-text template ran with the entity bound.
	calls := graphClient.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"Aspirin"}, calls[0].Params["terms"])
}

func TestAnswer_NoEntitiesOnFallbackSkipsQuery(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Classify", "gibberish").
		WithRule("Extract", `[]`)

	graphClient := graph.NewMockClient()

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "hmm?")

	assert.Empty(t, result.Err)
	assert.Equal(t, 0, result.ResultCount)
	assert.Contains(t, result.Answer, "didn't find any information")
	assert.Empty(t, graphClient.Calls(), "no entities and no template: no query should run")
}

func TestAnswer_EmptyResultsNeverInventFacts(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Classify", "drug_treatment").
		WithRule("Extract", `["Rarexin"]`).
		WithRule("Convert", "this response must never be used")

	graphClient := graph.NewMockClient() // empty result queue

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Which drugs treat Rarexin syndrome?")

	assert.Empty(t, result.Err)
	assert.Contains(t, result.Answer, "didn't find any information")
	assert.NotContains(t, result.Answer, "never be used")
}

func TestAnswer_MultiTurnMemoryResolution(t *testing.T) {
	// Turn 1: genes for Hypertension. Turn 2: "Which drugs treat it?" where
	// "it" must resolve through memory.
	provider := providers.NewMockProvider().WithResponses(
		// turn 1: classify, extract, format
		"gene_disease",
		`["Hypertension"]`,
		"ACE is associated with Hypertension.",
		// turn 2: classify, extract, format
		"drug_treatment",
		`["Hypertension"]`,
		"Lisinopril treats Hypertension.",
	)

	graphClient := graph.NewMockClient().
		WithRecords(map[string]any{"gene": "ACE", "disease": "Hypertension"}).
		WithRecords(map[string]any{"drug": "Lisinopril", "disease": "Hypertension"})

	a, err := New(provider, graphClient, Options{ConversationMemory: true})
	require.NoError(t, err)

	first := a.Answer(context.Background(), "What genes are associated with Hypertension?")
	require.Empty(t, first.Err)
	require.Equal(t, 1, a.Memory().Len())

	second := a.Answer(context.Background(), "Which drugs treat it?")
	require.Empty(t, second.Err)
	assert.Equal(t, QuestionDrugTreatment, second.QuestionType)
	assert.Contains(t, second.Answer, "Lisinopril")

	// Turn 2 prompts were conditioned on the prior turn.
	requests := provider.Requests
	require.Len(t, requests, 6)
	turn2Classify := requests[3].Messages[len(requests[3].Messages)-1].Content
	assert.Contains(t, turn2Classify, "Previous conversation:")
	assert.Contains(t, turn2Classify, "Hypertension")

	assert.Equal(t, 2, a.Memory().Len())
}

func TestAnswer_MemoryDisabledDoesNotCondition(t *testing.T) {
	provider := providers.NewMockProvider().WithResponses(
		"gene_disease",
		`["Hypertension"]`,
		"ACE is associated with Hypertension.",
		"drug_treatment",
		`[]`, // without history the model cannot resolve "it"
	)

	graphClient := graph.NewMockClient().
		WithRecords(map[string]any{"gene": "ACE", "disease": "Hypertension"})

	a, err := New(provider, graphClient, Options{})
	require.NoError(t, err)

	first := a.Answer(context.Background(), "What genes are associated with Hypertension?")
	require.Empty(t, first.Err)
	assert.Nil(t, a.Memory())

	second := a.Answer(context.Background(), "Which drugs treat it?")
	require.Empty(t, second.Err)

	// No history prefix reached the model.
	for _, req := range provider.Requests {
		for _, msg := range req.Messages {
			assert.NotContains(t, msg.Content, "Previous conversation:")
		}
	}

	// Unresolved reference: the unfiltered treatment query ran and found
	// nothing, so the pipeline answered with the no-results message.
	assert.Contains(t, second.Answer, "didn't find any information")
}

func TestAnswer_ReasoningModeParsesFinalAnswer(t *testing.T) {
	provider := providers.NewMockProvider().
		WithRule("Think step by step about the main focus",
			"The question asks about treatment.\nAnswer: drug_treatment").
		WithRule("Think step by step: identify candidate terms",
			"Candidates: Hypertension (disease_name match).\n[\"Hypertension\"]").
		WithRule("Think step by step about which results",
			"One drug matches.\nAnswer: Lisinopril treats Hypertension.")

	graphClient := graph.NewMockClient().
		WithSchema(testSchema()).
		WithRecords(map[string]any{"drug": "Lisinopril", "disease": "Hypertension"})

	a, err := New(provider, graphClient, Options{Reasoning: true})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Which drugs treat Hypertension?")

	require.Empty(t, result.Err)
	assert.Equal(t, QuestionDrugTreatment, result.QuestionType)
	assert.Equal(t, "Lisinopril treats Hypertension.", result.Answer)
	assert.NotContains(t, result.Answer, "Think")
}

func TestAnswer_FailedRunDoesNotTouchMemory(t *testing.T) {
	provider := providers.NewMockProvider().
		WithError(types.NewError("LLM_COMPLETION_FAILED", "boom"))

	a, err := New(provider, graph.NewMockClient(), Options{ConversationMemory: true})
	require.NoError(t, err)

	result := a.Answer(context.Background(), "Which drugs treat Hypertension?")

	assert.NotEmpty(t, result.Err)
	assert.Equal(t, 0, a.Memory().Len())
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(nil, graph.NewMockClient(), Options{})
	assert.Error(t, err)

	_, err = New(providers.NewMockProvider(), nil, Options{})
	assert.Error(t, err)
}
