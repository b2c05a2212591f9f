package agent

import "strings"

// QuestionType is the closed classification of biomedical questions.
// The pipeline never emits a value outside this enumeration.
type QuestionType string

const (
	QuestionGeneDisease   QuestionType = "gene_disease"
	QuestionDrugTreatment QuestionType = "drug_treatment"
	QuestionGeneProtein   QuestionType = "gene_protein"
	QuestionPathway       QuestionType = "pathway"
	QuestionUnknown       QuestionType = "unknown"
)

// questionTypes lists the classifiable categories, excluding the unknown
// sentinel. Order matters for substring fallback parsing.
var questionTypes = []QuestionType{
	QuestionGeneDisease,
	QuestionDrugTreatment,
	QuestionGeneProtein,
	QuestionPathway,
}

// String returns the string representation of the QuestionType.
func (q QuestionType) String() string {
	return string(q)
}

// IsValid checks membership in the enumeration, including unknown.
func (q QuestionType) IsValid() bool {
	if q == QuestionUnknown {
		return true
	}
	for _, t := range questionTypes {
		if q == t {
			return true
		}
	}
	return false
}

// ParseQuestionType maps a model response onto the enumeration. Responses
// that cannot be mapped yield the unknown sentinel, never an error: an
// unparsable classification degrades the pipeline instead of failing it.
func ParseQuestionType(response string) QuestionType {
	cleaned := strings.ToLower(strings.TrimSpace(response))
	cleaned = strings.Trim(cleaned, ".,;:!?\"'`")

	if t := QuestionType(cleaned); t.IsValid() {
		return t
	}

	// The model may wrap the category in prose; scan for the first
	// category mentioned.
	for _, t := range questionTypes {
		if strings.Contains(cleaned, string(t)) {
			return t
		}
	}

	return QuestionUnknown
}

// Stage identifies a position in the workflow state machine.
type Stage string

const (
	StageStart             Stage = "start"
	StageClassified        Stage = "classified"
	StageEntitiesExtracted Stage = "entities_extracted"
	StageQueryBuilt        Stage = "query_built"
	StageQueryExecuted     Stage = "query_executed"
	StageDone              Stage = "done"
	StageFailed            Stage = "failed"
)

// WorkflowState is the value threaded through the pipeline stages. Each
// stage takes a state and returns an updated copy; stages never share
// mutable structures.
type WorkflowState struct {
	Question     string
	QuestionType QuestionType
	Entities     []string
	CypherQuery  string
	Results      []map[string]any
	Truncated    bool
	Answer       string
	Stage        Stage
	Err          string
}

// NewWorkflowState creates a fresh state for one question.
func NewWorkflowState(question string) WorkflowState {
	return WorkflowState{
		Question:     question,
		QuestionType: QuestionUnknown,
		Stage:        StageStart,
	}
}

// Failed reports whether the state reached the terminal failed stage.
func (s WorkflowState) Failed() bool {
	return s.Stage == StageFailed
}

// fail marks the state terminally failed with a human-readable message.
func (s WorkflowState) fail(message string) WorkflowState {
	s.Stage = StageFailed
	s.Err = message
	s.Answer = ""
	return s
}

// Result is the caller-facing outcome of one pipeline run.
type Result struct {
	Answer       string           `json:"answer"`
	QuestionType QuestionType     `json:"question_type"`
	Entities     []string         `json:"entities"`
	CypherQuery  string           `json:"cypher_query,omitempty"`
	ResultCount  int              `json:"result_count"`
	Records      []map[string]any `json:"records,omitempty"`
	Err          string           `json:"error,omitempty"`
}

// resultFromState projects the terminal workflow state into a Result.
func resultFromState(s WorkflowState) Result {
	r := Result{
		Answer:       s.Answer,
		QuestionType: s.QuestionType,
		Entities:     s.Entities,
		CypherQuery:  s.CypherQuery,
		ResultCount:  len(s.Results),
		Err:          s.Err,
	}
	if len(s.Results) > 3 {
		r.Records = s.Results[:3]
	} else {
		r.Records = s.Results
	}
	return r
}
