package engine

import (
	"sort"
	"strings"

	"github.com/preclinic/triage/internal/domain"
	"go.uber.org/zap"
)

// Scoring constants. Matching is loose substring containment (a condition
// token matches when it contains the evidence name). Tightening it to
// exact-token equality changes which conditions and questions come out, so
// the loose match is part of the contract.
const (
	presentWeight = 2
	absentWeight  = -2

	// maxHypotheses caps the ranked list the scorer retains.
	maxHypotheses = 6

	// minShiftedScore is added after shifting so the weakest retained
	// hypothesis keeps a nonzero probability.
	minShiftedScore = 0.001
)

// recompute rebuilds the hypothesis list from scratch. The old list is
// discarded, never patched. Deterministic given the same evidence and
// knowledge base: conditions are scanned in first-seen dataset order and the
// sort is stable on score alone, so reruns yield bit-identical results.
func (e *Engine) recompute() {
	e.cycle++
	e.hypotheses = e.scoreConditions()

	e.logger.Debug("hypotheses recomputed",
		zap.Int("cycle", e.cycle),
		zap.Int("evidence", len(e.evidence)),
		zap.Int("hypotheses", len(e.hypotheses)))
}

type scoredCondition struct {
	condition     string
	score         int
	supporting    []string
	contradicting []string
}

func (e *Engine) scoreConditions() []domain.Hypothesis {
	if e.kb.Empty() || len(e.evidence) == 0 {
		return nil
	}

	var scored []scoredCondition
	for _, condition := range e.kb.Conditions() {
		sc := scoredCondition{condition: condition}
		tokens := e.kb.Tokens(condition)
		for _, ev := range e.evidence {
			if ev.Presence == domain.PresenceUncertain {
				continue
			}
			matched := false
			for _, token := range tokens {
				if !strings.Contains(token, ev.Name) {
					continue
				}
				matched = true
				switch ev.Presence {
				case domain.PresencePresent:
					sc.score += presentWeight
				case domain.PresenceAbsent:
					sc.score += absentWeight
				}
			}
			if !matched {
				continue
			}
			switch ev.Presence {
			case domain.PresencePresent:
				sc.supporting = appendUnique(sc.supporting, ev.Name)
			case domain.PresenceAbsent:
				sc.contradicting = appendUnique(sc.contradicting, ev.Name)
			}
		}
		// A condition with no supporting match is dropped regardless of score.
		if len(sc.supporting) == 0 {
			continue
		}
		scored = append(scored, sc)
	}

	if len(scored) == 0 {
		return nil
	}

	// Stable: equal scores keep dataset enumeration order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > maxHypotheses {
		scored = scored[:maxHypotheses]
	}

	// Shift so the minimum retained score becomes minShiftedScore, then
	// normalize to probabilities summing to 1 over the retained set.
	min := scored[len(scored)-1].score
	var sum float64
	shifted := make([]float64, len(scored))
	for i, sc := range scored {
		shifted[i] = float64(sc.score-min) + minShiftedScore
		sum += shifted[i]
	}

	hypotheses := make([]domain.Hypothesis, 0, len(scored))
	for i, sc := range scored {
		hypotheses = append(hypotheses, domain.Hypothesis{
			Condition:     sc.condition,
			Score:         sc.score,
			Probability:   shifted[i] / sum,
			Supporting:    sc.supporting,
			Contradicting: sc.contradicting,
		})
	}
	return hypotheses
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
