package engine

import (
	"fmt"
	"math"

	"github.com/preclinic/triage/internal/domain"
	"go.uber.org/zap"
)

// PlanQuestion selects the next discriminating question by binary-entropy
// information gain over the current hypotheses. It returns nil, not an
// error, when fewer than two hypotheses are held or no candidate token
// discriminates; the caller reads nil as "fall back to open-ended
// questioning" or as a cue to wind down the interview.
//
// Candidate iteration order is canonical first-seen order during a single
// scan over the hypotheses, so ties resolve the same way on every run.
func (e *Engine) PlanQuestion() *domain.QuestionPlan {
	if len(e.hypotheses) < 2 {
		return nil
	}

	// Candidate tokens across current hypotheses, in first-seen order.
	var order []string
	seen := make(map[string]bool)
	for _, h := range e.hypotheses {
		for _, token := range e.kb.Tokens(h.Condition) {
			if seen[token] {
				continue
			}
			seen[token] = true
			if e.hasEvidence(token) || e.alreadyAsked(token) {
				continue
			}
			// Only clinically flavored tokens are worth asking about.
			if !matchesSymptomKeyword(token) {
				continue
			}
			order = append(order, token)
		}
	}

	var (
		best     string
		bestGain float64
	)
	for _, token := range order {
		var pPresent float64
		for _, h := range e.hypotheses {
			if e.kb.Has(h.Condition, token) {
				pPresent += h.Probability
			}
		}
		pAbsent := 1 - pPresent
		// No discrimination possible when every hypothesis (or none)
		// carries the token.
		if pPresent == 0 || pAbsent == 0 {
			continue
		}
		gain := -(pPresent*math.Log2(pPresent) + pAbsent*math.Log2(pAbsent))
		if gain > bestGain {
			best = token
			bestGain = gain
		}
	}

	if best == "" {
		return nil
	}

	splits := make(map[string]float64, len(e.hypotheses))
	for _, h := range e.hypotheses {
		splits[h.Condition] = h.Probability
	}

	plan := domain.QuestionPlan{
		Question:       fmt.Sprintf("Have you experienced %s?", best),
		TargetSymptom:  best,
		Rationale:      fmt.Sprintf("splits %d current hypotheses with information gain %.3f bits", len(e.hypotheses), bestGain),
		ExpectedSplits: splits,
	}
	e.asked = append(e.asked, plan)

	e.logger.Debug("question planned",
		zap.String("target", best),
		zap.Float64("gain", bestGain),
		zap.Int("asked_total", len(e.asked)))

	// Hand back a copy so the history entry stays immutable.
	out := copyPlan(plan)
	return &out
}

func (e *Engine) alreadyAsked(token string) bool {
	for _, q := range e.asked {
		if q.TargetSymptom == token {
			return true
		}
	}
	return false
}
