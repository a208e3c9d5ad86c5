package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/kb"
)

// throatRecords is the two-condition dataset used across the engine tests.
func throatRecords() []domain.ConditionRecord {
	return []domain.ConditionRecord{
		{Condition: "Strep Throat", Symptoms: "sore throat; fever; swollen glands"},
		{Condition: "Common Cold", Symptoms: "runny nose; sore throat; cough"},
	}
}

func buildKB(records []domain.ConditionRecord) *domain.KnowledgeBase {
	return kb.Build(records)
}

func newTestEngine(t *testing.T, records []domain.ConditionRecord) *Engine {
	t.Helper()
	return New(buildKB(records), zap.NewNop())
}

func TestEngine_DegradedOnEmptyKnowledgeBase(t *testing.T) {
	e := New(domain.NewKnowledgeBase(), zap.NewNop())

	assert.True(t, e.Degraded())

	e.RecordAnswer("fever", domain.PresencePresent, 0)
	snap := e.Snapshot()
	assert.Empty(t, snap.Hypotheses)
	assert.Nil(t, e.PlanQuestion())
}

func TestEngine_SnapshotIsDeepCopy(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("sore throat", domain.PresencePresent, 0)
	require.NotNil(t, e.PlanQuestion())

	snap := e.Snapshot()
	require.NotEmpty(t, snap.Hypotheses)
	require.NotEmpty(t, snap.AskedQuestions)

	// Mutating the snapshot must not reach back into the engine.
	snap.Hypotheses[0].Condition = "mutated"
	snap.Hypotheses[0].Supporting[0] = "mutated"
	snap.Evidence[0].Presence = domain.PresenceAbsent
	for k := range snap.AskedQuestions[0].ExpectedSplits {
		snap.AskedQuestions[0].ExpectedSplits[k] = -1
	}

	fresh := e.Snapshot()
	assert.Equal(t, "Strep Throat", fresh.Hypotheses[0].Condition)
	assert.Equal(t, "sore throat", fresh.Hypotheses[0].Supporting[0])
	assert.Equal(t, domain.PresencePresent, fresh.Evidence[0].Presence)
	for _, v := range fresh.AskedQuestions[0].ExpectedSplits {
		assert.Greater(t, v, 0.0)
	}
}

func TestEngine_ReadOnlyQueriesDoNotMutate(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("sore throat", domain.PresencePresent, 0)

	before := e.Snapshot()
	_ = e.Cooccurring("sore throat", 5)
	_ = e.Snapshot()
	after := e.Snapshot()

	assert.Equal(t, before.Cycle, after.Cycle)
	assert.Equal(t, before.Hypotheses, after.Hypotheses)
	assert.Equal(t, before.Evidence, after.Evidence)
	assert.Equal(t, before.AskedQuestions, after.AskedQuestions)
}

func TestEngine_RecordAnswerOverwritesInPlace(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("fever", domain.PresencePresent, 0)
	e.RecordAnswer("fever", domain.PresenceAbsent, 3)

	snap := e.Snapshot()
	require.Len(t, snap.Evidence, 1)
	assert.Equal(t, domain.PresenceAbsent, snap.Evidence[0].Presence)
	assert.Equal(t, 3, snap.Evidence[0].SourceTurnIndex)
}

func TestEngine_InvalidIntakeIsAbsorbed(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("", domain.PresencePresent, 0)
	e.RecordAnswer("fever", domain.Presence("maybe"), 0)

	assert.Empty(t, e.Snapshot().Evidence)
}

func TestEngine_QualifiersAttachWithoutRescoring(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("sore throat", domain.PresencePresent, 0)

	before := e.Snapshot()
	e.QualifyEvidence("sore throat", domain.Qualifiers{Onset: "two days ago", Severity: "6/10"})
	after := e.Snapshot()

	assert.Equal(t, before.Cycle, after.Cycle)
	require.NotNil(t, after.Evidence[0].Qualifiers)
	assert.Equal(t, "two days ago", after.Evidence[0].Qualifiers.Onset)

	// Unknown names are a no-op, not an error.
	e.QualifyEvidence("no such symptom", domain.Qualifiers{Onset: "now"})
}

func TestEngine_Terminate(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.Terminate("question limit reached")

	snap := e.Snapshot()
	assert.True(t, snap.Terminated)
	assert.Equal(t, "question limit reached", snap.TerminationReason)
}
