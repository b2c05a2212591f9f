package agent

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/biograph-ai/biograph/internal/graph"
)

const classifySystemPrompt = `You classify biomedical questions against a knowledge graph. Answer with exactly one category name and nothing else.`

const classifyPromptTemplate = `%sClassify this biomedical question. Choose one:
- gene_disease: genes associated with diseases
- drug_treatment: drugs treating diseases
- gene_protein: genes and the proteins they encode
- pathway: biological pathways and their participants

Question: %s

Respond with just the category name.`

const classifyReasoningPromptTemplate = `%sClassify this biomedical question into one category.

Categories:
- gene_disease: genes associated with diseases
- drug_treatment: drugs treating diseases
- gene_protein: genes and the proteins they encode
- pathway: biological pathways and their participants

Question: %s

Think step by step about the main focus of the question. Then give your final choice on its own line in the form:
Answer: <category>`

const extractPromptTemplate = `%sExtract specific biomedical entities from this question.

Available entity types: %s
Available property values:
%s

Question: %s

Extract specific names and property values. Return a JSON list: ["term1", "term2"] or []`

const extractReasoningPromptTemplate = `%sExtract specific biomedical entities from this question.

Available entity types: %s
Available property values:
%s

Question: %s

Think step by step: identify candidate terms, check them against the available types and values, and discard generic words. Then output only the final JSON list: ["term1", "term2"] or []`

const formatPromptTemplate = `%sConvert these database results into a clear answer.

Question: %s
Results: %s
Total found: %d

Make it concise and informative. Only state facts present in the results.`

const formatReasoningPromptTemplate = `%sConvert these database results into a clear answer.

Question: %s
Results: %s
Total found: %d

Think step by step about which results answer the question, then give the final answer on its own line in the form:
Answer: <answer>`

// noResultsAnswer is returned without an LLM call when a query matches
// nothing. The formatter must never invent facts for an empty result set.
const noResultsAnswer = "I didn't find any information for that question. Try asking about genes, diseases, drugs, proteins, or pathways in the knowledge graph."

// memoryPrefix renders prior turns as a prompt prefix, or "" with no history.
func memoryPrefix(history string) string {
	if history == "" {
		return ""
	}
	return "Previous conversation:\n" + history + "\n\n"
}

// buildClassifyPrompt assembles the classification prompt.
func buildClassifyPrompt(question, history string, reasoning bool) string {
	if reasoning {
		return fmt.Sprintf(classifyReasoningPromptTemplate, memoryPrefix(history), question)
	}
	return fmt.Sprintf(classifyPromptTemplate, memoryPrefix(history), question)
}

// buildExtractPrompt assembles the entity extraction prompt, grounded on the
// graph schema so the model extracts terms that can actually match.
func buildExtractPrompt(question, history string, schema graph.Schema, reasoning bool) string {
	labels := strings.Join(schema.NodeLabels, ", ")
	if labels == "" {
		labels = "(schema unavailable)"
	}

	tpl := extractPromptTemplate
	if reasoning {
		tpl = extractReasoningPromptTemplate
	}
	return fmt.Sprintf(tpl, memoryPrefix(history), labels, renderPropertyValues(schema), question)
}

// buildFormatPrompt assembles the answer formatting prompt from query results.
func buildFormatPrompt(question, history string, results []map[string]any, reasoning bool) string {
	shown := results
	if len(shown) > 5 {
		shown = shown[:5]
	}

	encoded, err := json.MarshalIndent(shown, "", "  ")
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", shown))
	}

	tpl := formatPromptTemplate
	if reasoning {
		tpl = formatReasoningPromptTemplate
	}
	return fmt.Sprintf(tpl, memoryPrefix(history), question, encoded, len(results))
}

// renderPropertyValues lists sampled property values in deterministic order.
func renderPropertyValues(schema graph.Schema) string {
	if len(schema.PropertyValues) == 0 {
		return "- No property values available"
	}

	props := make([]string, 0, len(schema.PropertyValues))
	for prop := range schema.PropertyValues {
		props = append(props, prop)
	}
	sort.Strings(props)

	var b strings.Builder
	for _, prop := range props {
		values := schema.PropertyValues[prop]
		samples := make([]string, 0, len(values))
		for i, v := range values {
			if i >= 3 {
				break
			}
			samples = append(samples, fmt.Sprintf("%v", v))
		}
		fmt.Fprintf(&b, "- %s: %s\n", prop, strings.Join(samples, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseFinalAnswer strips a reasoning trace down to its final answer. With
// reasoning prompts the model is told to end with "Answer: ..."; without
// one, the whole response is the answer.
func parseFinalAnswer(response string, reasoning bool) string {
	response = strings.TrimSpace(response)
	if !reasoning {
		return response
	}

	lines := strings.Split(response, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if rest, ok := strings.CutPrefix(line, "Answer:"); ok {
			return strings.TrimSpace(rest)
		}
	}

	// No marker found; fall back to the last non-empty line.
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return response
}
