package graph

import (
	"fmt"
	"regexp"

	"github.com/biograph-ai/biograph/internal/types"
)

// writeKeywordPattern matches Cypher keywords that can mutate the store.
// The guard runs application-side because queries may be assembled from LLM
// output; parameters never reach the query text, but the template itself is
// still checked before execution.
var writeKeywordPattern = regexp.MustCompile(
	`(?i)\b(CREATE|MERGE|DELETE|DETACH|SET|REMOVE|DROP|FOREACH|LOAD\s+CSV)\b`)

// CheckReadOnly rejects Cypher text containing write-capable keywords.
func CheckReadOnly(cypher string) error {
	if match := writeKeywordPattern.FindString(cypher); match != "" {
		return types.NewError(ErrCodeReadOnlyViolation,
			fmt.Sprintf("write keyword %q is not allowed", match))
	}
	return nil
}
