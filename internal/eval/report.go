package eval

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/biograph-ai/biograph/internal/types"
)

// Report writing error code
const ErrCodeReportWriteFailed types.ErrorCode = "EVAL_REPORT_WRITE_FAILED"

// Format renders the report as plain text. The baseline scenario shows raw
// metrics; the others additionally show signed deltas against it.
func (r *Report) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evaluation run %s\n", r.RunID)
	fmt.Fprintf(&b, "Started %s, finished %s\n\n",
		r.StartedAt.Format("2006-01-02 15:04:05"),
		r.FinishedAt.Format("2006-01-02 15:04:05"))

	for _, res := range r.Results {
		if res.Scenario.Number == 1 {
			fmt.Fprintf(&b, "Scenario %d (%s): classification %.2f, entity %.2f, answer %.2f\n",
				res.Scenario.Number, res.Scenario.Name,
				res.Metrics.Classification, res.Metrics.Entity, res.Metrics.Answer)
		} else {
			fmt.Fprintf(&b, "Scenario %d (%s): classification %.2f (%+.2f), entity %.2f (%+.2f), answer %.2f (%+.2f)\n",
				res.Scenario.Number, res.Scenario.Name,
				res.Metrics.Classification, res.Deltas.Classification,
				res.Metrics.Entity, res.Deltas.Entity,
				res.Metrics.Answer, res.Deltas.Answer)
		}
		fmt.Fprintf(&b, "  avg query time %s, examples %d, failures %d\n",
			res.Metrics.AvgDuration.Round(time.Millisecond), res.Examples, res.Failures)
	}

	return b.String()
}

// WriteFile persists the formatted report.
func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Format()), 0o644); err != nil {
		return types.WrapError(ErrCodeReportWriteFailed,
			fmt.Sprintf("cannot write report to %s", path), err)
	}
	return nil
}
