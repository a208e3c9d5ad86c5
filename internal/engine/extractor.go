package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
)

// IntakeUtterance segments a free-form utterance into candidate evidence.
// The utterance is split on commas, semicolons and newlines; each phrase is
// trimmed, lowercased and kept only when it matches the fixed symptom
// vocabulary. New phrases become present evidence; phrases already on file
// are left untouched, so a later free-text mention never overrides a
// recorded presence; only a structured answer does that. Returns the names
// added; a full hypothesis recompute runs regardless.
func (e *Engine) IntakeUtterance(utterance string, turn int) []string {
	var added []string
	for _, phrase := range splitPhrases(utterance) {
		name := normalizeSymptom(phrase)
		if name == "" || !matchesSymptomKeyword(name) {
			continue
		}
		if e.hasEvidence(name) {
			continue
		}
		e.evidence = append(e.evidence, domain.SymptomEvidence{
			Name:            name,
			Presence:        domain.PresencePresent,
			SourceTurnIndex: turn,
		})
		added = append(added, name)
	}

	if len(added) > 0 {
		e.logger.Debug("evidence extracted from utterance",
			zap.Int("turn", turn),
			zap.Strings("added", added))
	}
	e.recompute()
	return added
}

func splitPhrases(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
}
