package eval

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/biograph-ai/biograph/internal/agent"
	"github.com/biograph-ai/biograph/internal/types"
)

// Dataset error codes
const (
	ErrCodeDatasetLoadFailed types.ErrorCode = "EVAL_DATASET_LOAD_FAILED"
	ErrCodeDatasetInvalid    types.ErrorCode = "EVAL_DATASET_INVALID"
)

// GoldenExample is one benchmark record. Examples are immutable once loaded.
// Follows links an example to the one preceding it in a conversation chain;
// during replay the prior turn's produced answer (not the gold answer) feeds
// the memory, so upstream mistakes propagate realistically.
type GoldenExample struct {
	ID               string             `json:"id"`
	Question         string             `json:"question"`
	ExpectedType     agent.QuestionType `json:"expected_type"`
	ExpectedEntities []string           `json:"expected_entities"`
	ExpectedAnswer   string             `json:"expected_answer"`
	Follows          string             `json:"follows,omitempty"`
}

// LoadDataset reads the golden benchmark from a JSON file and validates it.
func LoadDataset(path string) ([]GoldenExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(ErrCodeDatasetLoadFailed,
			fmt.Sprintf("cannot read dataset %s", path), err)
	}

	var examples []GoldenExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, types.WrapError(ErrCodeDatasetLoadFailed,
			fmt.Sprintf("cannot parse dataset %s", path), err)
	}

	if err := ValidateDataset(examples); err != nil {
		return nil, err
	}
	return examples, nil
}

// ValidateDataset checks dataset integrity: unique IDs, known question
// types, and Follows references that point at earlier examples only.
func ValidateDataset(examples []GoldenExample) error {
	if len(examples) == 0 {
		return types.NewError(ErrCodeDatasetInvalid, "dataset is empty")
	}

	seen := make(map[string]bool, len(examples))
	for i, ex := range examples {
		if ex.ID == "" {
			return types.NewError(ErrCodeDatasetInvalid,
				fmt.Sprintf("example %d has no id", i))
		}
		if seen[ex.ID] {
			return types.NewError(ErrCodeDatasetInvalid,
				fmt.Sprintf("duplicate example id %q", ex.ID))
		}
		if ex.Question == "" {
			return types.NewError(ErrCodeDatasetInvalid,
				fmt.Sprintf("example %q has no question", ex.ID))
		}
		if !ex.ExpectedType.IsValid() {
			return types.NewError(ErrCodeDatasetInvalid,
				fmt.Sprintf("example %q has unknown expected_type %q", ex.ID, ex.ExpectedType))
		}
		if ex.Follows != "" && !seen[ex.Follows] {
			return types.NewError(ErrCodeDatasetInvalid,
				fmt.Sprintf("example %q follows %q which does not precede it", ex.ID, ex.Follows))
		}
		seen[ex.ID] = true
	}
	return nil
}
