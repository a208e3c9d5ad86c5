package engine

import (
	"sort"
	"strings"
)

// DefaultCooccurrenceLimit caps the related-symptom list when the caller
// passes no limit.
const DefaultCooccurrenceLimit = 6

// minCooccurTokenLen filters out fragments too short to suggest.
const minCooccurTokenLen = 3

// Cooccurring returns symptom tokens frequently associated with conditions
// that exhibit the given phrase. A condition qualifies when any of its
// tokens contains the phrase as a substring; each qualifying condition
// contributes one count for each of its other tokens, excluding tokens
// shorter than three characters and tokens that themselves contain the
// phrase. Results come back in descending frequency, ties in first-seen
// order. Read-only: engine state is never touched.
func (e *Engine) Cooccurring(phrase string, limit int) []string {
	phrase = normalizeSymptom(phrase)
	if phrase == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultCooccurrenceLimit
	}

	var order []string
	freq := make(map[string]int)
	for _, condition := range e.kb.Conditions() {
		tokens := e.kb.Tokens(condition)
		qualifies := false
		for _, token := range tokens {
			if strings.Contains(token, phrase) {
				qualifies = true
				break
			}
		}
		if !qualifies {
			continue
		}
		for _, token := range tokens {
			if len(token) < minCooccurTokenLen || strings.Contains(token, phrase) {
				continue
			}
			if _, seen := freq[token]; !seen {
				order = append(order, token)
			}
			freq[token]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
