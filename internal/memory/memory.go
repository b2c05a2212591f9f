// Package memory holds session-scoped conversational context for the
// workflow agent. One instance serves one session and one caller; there is
// no cross-session sharing.
package memory

import (
	"fmt"
	"strings"
	"time"
)

// DefaultMaxTurns bounds the history when no explicit limit is configured.
const DefaultMaxTurns = 10

// Turn is one completed (question, answer) exchange. Turns are never
// mutated after creation.
type Turn struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	At       time.Time `json:"at"`
}

// ConversationMemory is an ordered, bounded history of prior turns.
// Oldest turns are evicted first when the bound is exceeded.
type ConversationMemory struct {
	turns    []Turn
	maxTurns int
}

// NewConversationMemory creates a memory bounded at maxTurns entries.
// Non-positive values fall back to DefaultMaxTurns.
func NewConversationMemory(maxTurns int) *ConversationMemory {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &ConversationMemory{maxTurns: maxTurns}
}

// Append records one completed turn, evicting the oldest entry when the
// bound is exceeded.
func (m *ConversationMemory) Append(question, answer string) {
	m.turns = append(m.turns, Turn{
		Question: question,
		Answer:   answer,
		At:       time.Now(),
	})
	if len(m.turns) > m.maxTurns {
		m.turns = m.turns[len(m.turns)-m.maxTurns:]
	}
}

// Render produces a deterministic chronological text rendering of the
// history for use as a prompt prefix. Returns "" when no turns exist.
func (m *ConversationMemory) Render() string {
	if len(m.turns) == 0 {
		return ""
	}

	var b strings.Builder
	for i, turn := range m.turns {
		fmt.Fprintf(&b, "User %d: %s\n", i+1, turn.Question)
		fmt.Fprintf(&b, "Agent %d: %s\n", i+1, turn.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Turns returns a copy of the current history in chronological order.
func (m *ConversationMemory) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of stored turns.
func (m *ConversationMemory) Len() int {
	return len(m.turns)
}

// MaxTurns returns the configured bound.
func (m *ConversationMemory) MaxTurns() int {
	return m.maxTurns
}

// Clear empties the session history.
func (m *ConversationMemory) Clear() {
	m.turns = nil
}
