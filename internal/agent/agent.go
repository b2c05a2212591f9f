// Package agent implements the five-stage question answering workflow over
// the biomedical knowledge graph: classify, extract entities, build a query,
// execute it, and format the answer. Stages run strictly in sequence; any
// stage failure is terminal for the current question and is surfaced as a
// human-readable error, never a panic.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/biograph-ai/biograph/internal/graph"
	"github.com/biograph-ai/biograph/internal/llm"
	"github.com/biograph-ai/biograph/internal/memory"
	"github.com/biograph-ai/biograph/internal/types"
)

// Default prompt budgets, sized per stage.
const (
	defaultClassifyTokens = 50
	defaultExtractTokens  = 100
	defaultFormatTokens   = 250
	reasoningExtraTokens  = 300
)

// Options configures the workflow agent. ConversationMemory and Reasoning
// are independent toggles; both default to off.
type Options struct {
	// Model overrides the provider's default model when non-empty.
	Model string

	// MaxRows caps result rows bound into query templates.
	MaxRows int

	// ConversationMemory enables prompt conditioning on prior turns.
	ConversationMemory bool

	// MemoryTurns bounds the conversation history (FIFO eviction).
	MemoryTurns int

	// Reasoning enables step-by-step prompting; only the final structured
	// answer is kept in the state, the trace is discarded after logging.
	Reasoning bool

	// Logger receives structured stage logs. Defaults to slog.Default().
	Logger *slog.Logger

	// TracerProvider emits one span per stage. Defaults to a noop provider.
	TracerProvider trace.TracerProvider
}

// Agent turns one natural-language question into an answer using the graph
// store and an LLM provider. Dependencies are injected at construction so
// tests can substitute fakes.
type Agent struct {
	provider llm.Provider
	graph    graph.Client
	memory   *memory.ConversationMemory
	opts     Options
	log      *slog.Logger
	tracer   trace.Tracer

	schemaOnce sync.Once
	schema     graph.Schema
}

// New creates a workflow agent with the given LLM provider and graph client.
func New(provider llm.Provider, graphClient graph.Client, opts Options) (*Agent, error) {
	if provider == nil {
		return nil, types.NewError(llm.ErrProviderNotFound, "llm provider is required")
	}
	if graphClient == nil {
		return nil, types.NewError(graph.ErrCodeInvalidConfig, "graph client is required")
	}

	if opts.MaxRows <= 0 {
		opts.MaxRows = 25
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = noop.NewTracerProvider()
	}

	a := &Agent{
		provider: provider,
		graph:    graphClient,
		opts:     opts,
		log:      opts.Logger.With("component", "agent"),
		tracer:   opts.TracerProvider.Tracer("biograph/agent"),
	}
	if opts.ConversationMemory {
		a.memory = memory.NewConversationMemory(opts.MemoryTurns)
	}
	return a, nil
}

// Memory returns the session memory, or nil when memory conditioning is off.
func (a *Agent) Memory() *memory.ConversationMemory {
	return a.memory
}

// ResetMemory clears the session history. No-op when memory is off.
func (a *Agent) ResetMemory() {
	if a.memory != nil {
		a.memory.Clear()
	}
}

// Answer runs the full pipeline for one question. It always returns a
// Result: either a populated answer with an empty error, or an empty answer
// with a non-empty error, never both.
func (a *Agent) Answer(ctx context.Context, question string) Result {
	ctx, span := a.tracer.Start(ctx, "agent.answer")
	defer span.End()

	history := a.history()
	state := NewWorkflowState(question)

	for _, stage := range []func(context.Context, WorkflowState, string) WorkflowState{
		a.classify,
		a.extract,
		a.generate,
		a.execute,
		a.format,
	} {
		state = stage(ctx, state, history)
		if state.Failed() {
			break
		}
	}

	span.SetAttributes(
		attribute.String("question_type", state.QuestionType.String()),
		attribute.String("stage", string(state.Stage)),
		attribute.Int("result_count", len(state.Results)),
	)

	if state.Failed() {
		a.log.Warn("pipeline failed", "stage", state.Stage, "error", state.Err)
	} else if a.memory != nil {
		a.memory.Append(question, state.Answer)
	}

	return resultFromState(state)
}

// classify maps the question onto the fixed type enumeration. An unparsable
// model response degrades to unknown; a failed LLM call is terminal.
func (a *Agent) classify(ctx context.Context, s WorkflowState, history string) WorkflowState {
	ctx, span := a.tracer.Start(ctx, "agent.classify")
	defer span.End()

	resp, err := a.complete(ctx, classifySystemPrompt,
		buildClassifyPrompt(s.Question, history, a.opts.Reasoning), defaultClassifyTokens)
	if err != nil {
		return s.fail(fmt.Sprintf("classification failed: %v", err))
	}

	s.QuestionType = ParseQuestionType(parseFinalAnswer(resp, a.opts.Reasoning))
	s.Stage = StageClassified

	a.log.Debug("question classified", "type", s.QuestionType)
	span.SetAttributes(attribute.String("question_type", s.QuestionType.String()))
	return s
}

// extract pulls candidate entity terms from the question. An empty or
// unparsable entity list is valid and the pipeline proceeds.
func (a *Agent) extract(ctx context.Context, s WorkflowState, history string) WorkflowState {
	ctx, span := a.tracer.Start(ctx, "agent.extract")
	defer span.End()

	resp, err := a.complete(ctx, "",
		buildExtractPrompt(s.Question, history, a.graphSchema(ctx), a.opts.Reasoning),
		defaultExtractTokens)
	if err != nil {
		return s.fail(fmt.Sprintf("entity extraction failed: %v", err))
	}

	entities, err := llm.ExtractStringList(resp)
	if err != nil {
		a.log.Debug("no entities parsed from response", "error", err)
		entities = nil
	}

	s.Entities = entities
	s.Stage = StageEntitiesExtracted

	span.SetAttributes(attribute.Int("entity_count", len(entities)))
	return s
}

// generate selects the parameterized query template for the question type.
// This stage makes no external calls: templates are fixed data and entities
// are bound as parameters at execution time.
func (a *Agent) generate(ctx context.Context, s WorkflowState, _ string) WorkflowState {
	_, span := a.tracer.Start(ctx, "agent.generate")
	defer span.End()

	tpl := templateFor(s.QuestionType)
	switch {
	case len(s.Entities) > 0:
		s.CypherQuery = tpl.Filtered
	case tpl.Unfiltered != "":
		s.CypherQuery = tpl.Unfiltered
	default:
		// Nothing to search for; skip execution and answer from an empty
		// result set instead of scanning the whole graph.
		s.CypherQuery = ""
	}

	s.Stage = StageQueryBuilt
	return s
}

// execute runs the selected template against the graph store. Database
// unavailability and query syntax errors are terminal for this question and
// are never retried here.
func (a *Agent) execute(ctx context.Context, s WorkflowState, _ string) WorkflowState {
	ctx, span := a.tracer.Start(ctx, "agent.execute")
	defer span.End()

	if s.CypherQuery == "" {
		s.Results = nil
		s.Stage = StageQueryExecuted
		return s
	}

	params := map[string]any{
		"terms": s.Entities,
		"limit": a.opts.MaxRows,
	}

	result, err := a.graph.Query(ctx, s.CypherQuery, params)
	if err != nil {
		var appErr *types.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case graph.ErrCodeConnectionFailed, graph.ErrCodeConnectionClosed:
				return s.fail(fmt.Sprintf("the knowledge graph is unavailable: %v", err))
			case graph.ErrCodeInvalidQuery:
				return s.fail(fmt.Sprintf("query template error: %v", err))
			}
		}
		return s.fail(fmt.Sprintf("query execution failed: %v", err))
	}

	s.Results = result.Records
	s.Truncated = result.Truncated
	s.Stage = StageQueryExecuted

	a.log.Debug("query executed",
		"type", s.QuestionType, "rows", len(result.Records), "truncated", result.Truncated)
	span.SetAttributes(attribute.Int("rows", len(result.Records)))
	return s
}

// format renders the result set into a natural-language answer. An empty
// result set yields an explicit no-results answer without an LLM call.
func (a *Agent) format(ctx context.Context, s WorkflowState, history string) WorkflowState {
	ctx, span := a.tracer.Start(ctx, "agent.format")
	defer span.End()

	if len(s.Results) == 0 {
		s.Answer = noResultsAnswer
		s.Stage = StageDone
		return s
	}

	resp, err := a.complete(ctx, "",
		buildFormatPrompt(s.Question, history, s.Results, a.opts.Reasoning),
		defaultFormatTokens)
	if err != nil {
		return s.fail(fmt.Sprintf("answer formatting failed: %v", err))
	}

	if a.opts.Reasoning {
		a.log.Debug("reasoning trace discarded", "stage", "format", "chars", len(resp))
	}

	s.Answer = parseFinalAnswer(resp, a.opts.Reasoning)
	if s.Answer == "" {
		return s.fail("model returned an empty answer")
	}
	s.Stage = StageDone
	return s
}

// complete issues one blocking LLM call.
func (a *Agent) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if a.opts.Reasoning {
		maxTokens += reasoningExtraTokens
	}

	messages := make([]llm.Message, 0, 2)
	if system != "" {
		messages = append(messages, llm.NewSystemMessage(system))
	}
	messages = append(messages, llm.NewUserMessage(user))

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:     a.opts.Model,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// history renders the memory prefix, or "" when memory is off or empty.
func (a *Agent) history() string {
	if a.memory == nil {
		return ""
	}
	return a.memory.Render()
}

// graphSchema loads schema metadata once per agent. Introspection failures
// are tolerated: prompts fall back to a schema-free form and the graph error
// surfaces later at the execute stage if the store is truly down.
func (a *Agent) graphSchema(ctx context.Context) graph.Schema {
	a.schemaOnce.Do(func() {
		schema, err := a.graph.Schema(ctx)
		if err != nil {
			a.log.Warn("schema introspection failed", "error", err)
			return
		}
		a.schema = schema
	})
	return a.schema
}
