package kb

import (
	"strings"

	"github.com/preclinic/triage/internal/domain"
)

// minTokenLen drops fragments too short to carry clinical meaning.
const minTokenLen = 3

// Build turns ordered dataset rows into a knowledge base. Each symptom blob
// is split on sentence-ending punctuation (period, semicolon, newline); the
// pieces are trimmed, lowercased, deduplicated in first-seen order and kept
// when longer than two characters. A duplicate condition label overwrites
// the earlier token set rather than merging, a known source-dataset
// constraint. Malformed rows never fail the build; an empty blob yields an
// empty token set that simply never contributes evidence matches.
func Build(records []domain.ConditionRecord) *domain.KnowledgeBase {
	kb := domain.NewKnowledgeBase()
	for _, rec := range records {
		label := strings.TrimSpace(rec.Condition)
		if label == "" {
			continue
		}
		kb.Put(label, tokenize(rec.Symptoms))
	}
	return kb
}

func tokenize(blob string) []string {
	pieces := strings.FieldsFunc(blob, func(r rune) bool {
		return r == '.' || r == ';' || r == '\n'
	})

	var tokens []string
	seen := make(map[string]bool)
	for _, piece := range pieces {
		token := strings.ToLower(strings.TrimSpace(piece))
		if len(token) < minTokenLen {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}
