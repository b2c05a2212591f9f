package eval

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biograph-ai/biograph/internal/agent"
	"github.com/biograph-ai/biograph/internal/graph"
	"github.com/biograph-ai/biograph/internal/llm/providers"
	"github.com/biograph-ai/biograph/internal/types"
)

// chainDataset has a multi-turn dependent question: e2's "it" can only be
// resolved from e1's answer via memory.
func chainDataset() []GoldenExample {
	return []GoldenExample{
		{
			ID:               "e1",
			Question:         "What genes are associated with Hypertension?",
			ExpectedType:     agent.QuestionGeneDisease,
			ExpectedEntities: []string{"Hypertension"},
			ExpectedAnswer:   "ACE is associated with Hypertension",
		},
		{
			ID:               "e2",
			Question:         "Which drugs treat it?",
			ExpectedType:     agent.QuestionDrugTreatment,
			ExpectedEntities: []string{"Hypertension"},
			ExpectedAnswer:   "Lisinopril treats Hypertension",
			Follows:          "e1",
		},
		{
			ID:               "e3",
			Question:         "Which drugs treat Diabetes?",
			ExpectedType:     agent.QuestionDrugTreatment,
			ExpectedEntities: []string{"Diabetes"},
			ExpectedAnswer:   "Metformin treats Diabetes",
		},
	}
}

// chainFactory simulates a model whose reference resolution depends on
// memory conditioning: without history, the dependent question e2 is
// unclassifiable and yields no entities.
func chainFactory(opts agent.Options) (*agent.Agent, error) {
	var provider *providers.MockProvider
	var graphClient *graph.MockClient

	if opts.ConversationMemory {
		provider = providers.NewMockProvider().WithResponses(
			// e1
			"gene_disease", `["Hypertension"]`, "ACE is associated with Hypertension.",
			// e2, resolved through the conversation history
			"drug_treatment", `["Hypertension"]`, "Lisinopril treats Hypertension.",
			// e3
			"drug_treatment", `["Diabetes"]`, "Metformin treats Diabetes.",
		)
		graphClient = graph.NewMockClient().
			WithRecords(map[string]any{"gene": "ACE", "disease": "Hypertension"}).
			WithRecords(map[string]any{"drug": "Lisinopril", "disease": "Hypertension"}).
			WithRecords(map[string]any{"drug": "Metformin", "disease": "Diabetes"})
	} else {
		provider = providers.NewMockProvider().WithResponses(
			// e1
			"gene_disease", `["Hypertension"]`, "ACE is associated with Hypertension.",
			// e2, unresolvable without history: no category, no entities,
			// so the pipeline skips the query and answers with no results
			"cannot tell", `[]`,
			// e3
			"drug_treatment", `["Diabetes"]`, "Metformin treats Diabetes.",
		)
		graphClient = graph.NewMockClient().
			WithRecords(map[string]any{"gene": "ACE", "disease": "Hypertension"}).
			WithRecords(map[string]any{"drug": "Metformin", "disease": "Diabetes"})
	}

	merged := opts
	merged.Model = "test-model"
	return agent.New(provider, graphClient, merged)
}

func TestHarness_RunAllScenarios(t *testing.T) {
	h, err := NewHarness(chainFactory, chainDataset(), nil)
	require.NoError(t, err)

	report, err := h.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	for i, res := range report.Results {
		assert.Equal(t, i+1, res.Scenario.Number)
		assert.Equal(t, 3, res.Examples)
		assert.Zero(t, res.Failures)
	}

	// Baseline deltas are zero by construction.
	baseline := report.Results[0]
	assert.Zero(t, baseline.Deltas.Classification)
	assert.Zero(t, baseline.Deltas.Entity)
	assert.Zero(t, baseline.Deltas.Answer)
}

func TestHarness_MemoryImprovesMultiTurnClassification(t *testing.T) {
	h, err := NewHarness(chainFactory, chainDataset(), nil)
	require.NoError(t, err)

	report, err := h.Run(context.Background())
	require.NoError(t, err)

	baseline := report.Results[0].Metrics
	full := report.Results[3].Metrics

	// Regression guard: with a multi-turn dependent question in the
	// dataset, the baseline must not beat the memory-enabled scenario.
	assert.LessOrEqual(t, baseline.Classification, full.Classification)
	assert.InDelta(t, 2.0/3.0, baseline.Classification, 1e-9)
	assert.InDelta(t, 1.0, full.Classification, 1e-9)

	assert.Greater(t, report.Results[3].Deltas.Classification, 0.0)
	assert.Greater(t, report.Results[3].Deltas.Entity, 0.0)
	assert.Greater(t, report.Results[3].Deltas.Answer, 0.0)
}

func TestHarness_FailedExampleScoresZeroWithoutAborting(t *testing.T) {
	factory := func(opts agent.Options) (*agent.Agent, error) {
		provider := providers.NewMockProvider().
			WithError(types.NewError("LLM_COMPLETION_FAILED", "provider down"))
		return agent.New(provider, graph.NewMockClient(), opts)
	}

	h, err := NewHarness(factory, chainDataset(), nil)
	require.NoError(t, err)

	report, err := h.Run(context.Background())
	require.NoError(t, err, "one bad example must not stop the benchmark")
	require.Len(t, report.Results, 4)

	for _, res := range report.Results {
		assert.Equal(t, 3, res.Failures)
		assert.Zero(t, res.Metrics.Classification)
		assert.Zero(t, res.Metrics.Entity)
		assert.Zero(t, res.Metrics.Answer)
	}
}

func TestReport_Format(t *testing.T) {
	h, err := NewHarness(chainFactory, chainDataset(), nil)
	require.NoError(t, err)

	report, err := h.Run(context.Background())
	require.NoError(t, err)

	text := report.Format()

	assert.Regexp(t,
		regexp.MustCompile(`Scenario 1 \(Baseline\): classification \d\.\d\d, entity \d\.\d\d, answer \d\.\d\d`),
		text)
	assert.Regexp(t,
		regexp.MustCompile(`Scenario 4 \(Memory\+Reasoning\): classification \d\.\d\d \([+-]\d\.\d\d\)`),
		text)
	assert.Contains(t, text, report.RunID)
}

func TestValidateDataset(t *testing.T) {
	tests := []struct {
		name     string
		examples []GoldenExample
		wantErr  bool
	}{
		{
			name:     "valid chain",
			examples: chainDataset(),
			wantErr:  false,
		},
		{
			name:     "empty dataset",
			examples: nil,
			wantErr:  true,
		},
		{
			name: "duplicate id",
			examples: []GoldenExample{
				{ID: "a", Question: "q", ExpectedType: agent.QuestionPathway},
				{ID: "a", Question: "q", ExpectedType: agent.QuestionPathway},
			},
			wantErr: true,
		},
		{
			name: "follows a later example",
			examples: []GoldenExample{
				{ID: "a", Question: "q", ExpectedType: agent.QuestionPathway, Follows: "b"},
				{ID: "b", Question: "q", ExpectedType: agent.QuestionPathway},
			},
			wantErr: true,
		},
		{
			name: "invalid expected type",
			examples: []GoldenExample{
				{ID: "a", Question: "q", ExpectedType: agent.QuestionType("made_up")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataset(tt.examples)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
