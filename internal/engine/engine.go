package engine

import (
	"strings"

	"github.com/preclinic/triage/internal/domain"
	"go.uber.org/zap"
)

// Engine holds the triage state for one conversational session: the shared
// read-only knowledge base, the ordered evidence record, the current ranked
// hypotheses and the asked-question history. One session owns one engine;
// all access is sequential by construction, so the engine itself does no
// locking. Callers that serve a session concurrently serialize above it.
type Engine struct {
	kb     *domain.KnowledgeBase
	logger *zap.Logger

	cycle             int
	evidence          []domain.SymptomEvidence
	hypotheses        []domain.Hypothesis
	asked             []domain.QuestionPlan
	terminated        bool
	terminationReason string
}

func New(kb *domain.KnowledgeBase, logger *zap.Logger) *Engine {
	if kb == nil {
		kb = domain.NewKnowledgeBase()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{kb: kb, logger: logger}
}

// Degraded reports whether the knowledge base is empty, in which case the
// scorer and planner always return empty results. Callers surface this as a
// degraded-mode indicator rather than an error.
func (e *Engine) Degraded() bool {
	return e.kb.Empty()
}

// RecordAnswer intakes a structured answer for a symptom. An existing
// evidence record with the same name has its presence overwritten in place;
// otherwise a new record is appended. Invalid presence values and empty
// names are absorbed as no-ops. Always triggers a full hypothesis recompute.
func (e *Engine) RecordAnswer(name string, presence domain.Presence, turn int) {
	name = normalizeSymptom(name)
	if name == "" || !domain.ValidPresence(string(presence)) {
		return
	}
	if ev := e.findEvidence(name); ev != nil {
		ev.Presence = presence
		ev.SourceTurnIndex = turn
	} else {
		e.evidence = append(e.evidence, domain.SymptomEvidence{
			Name:            name,
			Presence:        presence,
			SourceTurnIndex: turn,
		})
	}
	e.recompute()
}

// QualifyEvidence attaches OLDCART qualifiers to an existing evidence
// record. Unknown names are absorbed as no-ops; qualifiers never affect
// scoring, so no recompute happens.
func (e *Engine) QualifyEvidence(name string, q domain.Qualifiers) {
	if ev := e.findEvidence(normalizeSymptom(name)); ev != nil {
		ev.Qualifiers = &q
	}
}

// Terminate marks the session finished. The flag is informational; state
// stays queryable and whether to accept further intake is the caller's call.
func (e *Engine) Terminate(reason string) {
	e.terminated = true
	e.terminationReason = reason
}

func (e *Engine) Terminated() bool {
	return e.terminated
}

// Snapshot returns a deep copy of the engine state. The copy is immune to
// later in-place mutation of the engine.
func (e *Engine) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Cycle:             e.cycle,
		Terminated:        e.terminated,
		TerminationReason: e.terminationReason,
		Hypotheses:        make([]domain.Hypothesis, 0, len(e.hypotheses)),
		AskedQuestions:    make([]domain.QuestionPlan, 0, len(e.asked)),
		Evidence:          make([]domain.SymptomEvidence, 0, len(e.evidence)),
	}
	for _, h := range e.hypotheses {
		snap.Hypotheses = append(snap.Hypotheses, copyHypothesis(h))
	}
	for _, q := range e.asked {
		snap.AskedQuestions = append(snap.AskedQuestions, copyPlan(q))
	}
	for _, ev := range e.evidence {
		snap.Evidence = append(snap.Evidence, copyEvidence(ev))
	}
	return snap
}

func (e *Engine) findEvidence(name string) *domain.SymptomEvidence {
	for i := range e.evidence {
		if e.evidence[i].Name == name {
			return &e.evidence[i]
		}
	}
	return nil
}

func (e *Engine) hasEvidence(name string) bool {
	return e.findEvidence(name) != nil
}

func normalizeSymptom(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func copyHypothesis(h domain.Hypothesis) domain.Hypothesis {
	out := h
	out.Supporting = append([]string(nil), h.Supporting...)
	out.Contradicting = append([]string(nil), h.Contradicting...)
	return out
}

func copyPlan(q domain.QuestionPlan) domain.QuestionPlan {
	out := q
	out.ExpectedSplits = make(map[string]float64, len(q.ExpectedSplits))
	for k, v := range q.ExpectedSplits {
		out.ExpectedSplits[k] = v
	}
	return out
}

func copyEvidence(ev domain.SymptomEvidence) domain.SymptomEvidence {
	out := ev
	if ev.Qualifiers != nil {
		q := *ev.Qualifiers
		out.Qualifiers = &q
	}
	return out
}
