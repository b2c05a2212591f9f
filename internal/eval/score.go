package eval

import (
	"strings"
	"unicode"
)

// AnswerThreshold is the token-recall level at which an answer counts as
// correct. Exact matching is too brittle against free-form LLM output, so an
// answer scores 1 when at least half of the gold answer's content tokens
// appear in it, 0 otherwise.
const AnswerThreshold = 0.5

// EntityScore computes the Jaccard overlap between extracted and expected
// entity sets. Comparison is case-insensitive and order-independent; both
// empty scores 1.
func EntityScore(extracted, expected []string) float64 {
	a := toSet(extracted)
	b := toSet(expected)

	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	intersection := 0
	for term := range a {
		if b[term] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// AnswerScore computes token recall of the gold answer within the produced
// answer, both lowercased and stripped of punctuation. An empty produced
// answer scores 0.
func AnswerScore(produced, gold string) float64 {
	goldTokens := tokenize(gold)
	if len(goldTokens) == 0 {
		return 0
	}

	producedSet := make(map[string]bool)
	for _, tok := range tokenize(produced) {
		producedSet[tok] = true
	}

	found := 0
	for _, tok := range goldTokens {
		if producedSet[tok] {
			found++
		}
	}
	return float64(found) / float64(len(goldTokens))
}

// AnswerCorrect applies AnswerThreshold to AnswerScore.
func AnswerCorrect(produced, gold string) bool {
	return AnswerScore(produced, gold) >= AnswerThreshold
}

func toSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			set[term] = true
		}
	}
	return set
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
