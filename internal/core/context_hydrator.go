// ABOUTME: ContextHydrator assembles question-answering prompts from retrieved transcript chunks
// ABOUTME: Keeps the highest ranked chunks that fit within a character budget
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/harper/tubewise/internal/models"
)

const (
	// DefaultContextBudget caps the retrieved context sent to the model, in runes
	DefaultContextBudget = 4000

	chunkSeparator = "\n\n"

	qaSystemPrompt = "You answer questions about a YouTube video using only the transcript excerpts provided as context. " +
		"If the context does not contain the answer, say that you don't know. Do not make up information."
)

// ContextHydrator assembles context-aware prompts for LLM interactions
type ContextHydrator struct {
	budget int
}

// NewContextHydrator creates a new ContextHydrator. budget <= 0 uses DefaultContextBudget.
func NewContextHydrator(budget int) *ContextHydrator {
	if budget <= 0 {
		budget = DefaultContextBudget
	}
	return &ContextHydrator{budget: budget}
}

// SystemPrompt is the instruction sent with every question
func (ch *ContextHydrator) SystemPrompt() string {
	return qaSystemPrompt
}

// Context joins chunk contents in rank order until the rune budget is reached.
// The top ranked chunk is always included, truncated if it alone exceeds the budget.
func (ch *ContextHydrator) Context(results []models.SearchResult) string {
	var sb strings.Builder
	used := 0
	for i, r := range results {
		content := strings.TrimSpace(r.Chunk.Content)
		if content == "" {
			continue
		}

		need := utf8.RuneCountInString(content)
		if sb.Len() > 0 {
			need += utf8.RuneCountInString(chunkSeparator)
		}
		if used+need > ch.budget {
			if i == 0 {
				sb.WriteString(prefixRunes(content, ch.budget))
			}
			break
		}

		if sb.Len() > 0 {
			sb.WriteString(chunkSeparator)
		}
		sb.WriteString(content)
		used += need
	}
	return sb.String()
}

// Hydrate returns the system and user prompts for a question over retrieved chunks
func (ch *ContextHydrator) Hydrate(question string, results []models.SearchResult) (system, user string) {
	var sb strings.Builder
	sb.WriteString("CONTEXT:\n")
	sb.WriteString(ch.Context(results))
	sb.WriteString("\n\nQUESTION:\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\nANSWER:")
	return qaSystemPrompt, sb.String()
}
