package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preclinic/triage/internal/domain"
)

func TestExtractor_KeywordGate(t *testing.T) {
	e := newTestEngine(t, throatRecords())

	added := e.IntakeUtterance("I have a sore throat and a mild fever", 2)
	require.Len(t, added, 1)
	assert.Contains(t, added[0], "fever")

	snap := e.Snapshot()
	require.Len(t, snap.Evidence, 1)
	assert.Equal(t, domain.PresencePresent, snap.Evidence[0].Presence)
	assert.Equal(t, 2, snap.Evidence[0].SourceTurnIndex)
}

func TestExtractor_SplitsOnPunctuation(t *testing.T) {
	e := newTestEngine(t, throatRecords())

	added := e.IntakeUtterance("bad cough, runny nose; feeling fine otherwise\nsome fever too", 0)
	assert.Equal(t, []string{"bad cough", "runny nose", "some fever too"}, added)
}

func TestExtractor_DropsNonSymptomPhrases(t *testing.T) {
	e := newTestEngine(t, throatRecords())

	added := e.IntakeUtterance("hello doctor, I went hiking yesterday, it was great", 0)
	assert.Empty(t, added)
	assert.Empty(t, e.Snapshot().Evidence)
}

func TestExtractor_NeverOverridesExistingPresence(t *testing.T) {
	e := newTestEngine(t, throatRecords())
	e.RecordAnswer("fever", domain.PresenceAbsent, 0)

	// A later free-text mention of an already-answered symptom must not
	// flip the recorded presence; only a structured answer can.
	added := e.IntakeUtterance("fever", 1)
	assert.Empty(t, added)

	snap := e.Snapshot()
	require.Len(t, snap.Evidence, 1)
	assert.Equal(t, domain.PresenceAbsent, snap.Evidence[0].Presence)
	assert.Equal(t, 0, snap.Evidence[0].SourceTurnIndex)
}

func TestExtractor_NormalizesPhrases(t *testing.T) {
	e := newTestEngine(t, throatRecords())

	added := e.IntakeUtterance("  Sore Throat ,  COUGH  ", 0)
	assert.Equal(t, []string{"sore throat", "cough"}, added)
}

func TestExtractor_TriggersRecompute(t *testing.T) {
	e := newTestEngine(t, throatRecords())

	e.IntakeUtterance("sore throat", 0)
	snap := e.Snapshot()
	assert.NotEmpty(t, snap.Hypotheses)
	assert.Equal(t, 1, snap.Cycle)
}
