package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/kb"
	"github.com/preclinic/triage/internal/llm"
)

func newTestInterviews(t *testing.T, client domain.LLMClient, maxQuestions int) (*InterviewService, *SessionService) {
	t.Helper()
	sessions := newTestSessions(t)
	return NewInterviewService(sessions, client, maxQuestions, zap.NewNop()), sessions
}

func TestHandleAnswer_RecordsEvidenceAndPlansQuestion(t *testing.T) {
	mock := llm.NewMockClient()
	interviews, sessions := newTestInterviews(t, mock, 0)
	sess := sessions.Create()

	result, err := interviews.HandleAnswer(context.Background(), sess.ID, "sore throat", domain.PresencePresent, nil)
	require.NoError(t, err)

	require.Len(t, result.Snapshot.Evidence, 1)
	assert.Equal(t, "sore throat", result.Snapshot.Evidence[0].Name)
	assert.Len(t, result.Snapshot.Hypotheses, 2)

	require.NotNil(t, result.Question)
	assert.Equal(t, "fever", result.Question.Plan.TargetSymptom)
	assert.Equal(t, "Have you noticed any fever lately?", result.Question.Text)
	assert.Equal(t, []string{"fever"}, mock.PhraseCalls)
}

func TestHandleAnswer_AttachesQualifiers(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 0)
	sess := sessions.Create()

	quals := &domain.Qualifiers{Onset: "this morning", Severity: "mild"}
	result, err := interviews.HandleAnswer(context.Background(), sess.ID, "fever", domain.PresencePresent, quals)
	require.NoError(t, err)

	require.Len(t, result.Snapshot.Evidence, 1)
	require.NotNil(t, result.Snapshot.Evidence[0].Qualifiers)
	assert.Equal(t, "this morning", result.Snapshot.Evidence[0].Qualifiers.Onset)
}

func TestHandleUtterance_ExtractsSymptoms(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 0)
	sess := sessions.Create()

	result, err := interviews.HandleUtterance(context.Background(), sess.ID, "I have a sore throat, and my nose is runny")
	require.NoError(t, err)

	assert.Len(t, result.Added, 2)
	assert.Len(t, result.Snapshot.Evidence, 2)
	for _, ev := range result.Snapshot.Evidence {
		assert.Equal(t, domain.PresencePresent, ev.Presence)
	}
}

func TestPhrasing_FallsBackToTemplateOnError(t *testing.T) {
	mock := llm.NewMockClient()
	mock.PhraseError = errors.New("provider unavailable")
	interviews, sessions := newTestInterviews(t, mock, 0)
	sess := sessions.Create()

	result, err := interviews.HandleAnswer(context.Background(), sess.ID, "sore throat", domain.PresencePresent, nil)
	require.NoError(t, err)

	require.NotNil(t, result.Question)
	assert.Equal(t, result.Question.Plan.Question, result.Question.Text)
	assert.Equal(t, "Have you experienced fever?", result.Question.Text)
}

func TestPhrasing_NilClientUsesTemplate(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 0)
	sess := sessions.Create()

	result, err := interviews.HandleAnswer(context.Background(), sess.ID, "sore throat", domain.PresencePresent, nil)
	require.NoError(t, err)

	require.NotNil(t, result.Question)
	assert.Equal(t, "Have you experienced fever?", result.Question.Text)
}

func TestNextQuestion_NilWithoutEnoughHypotheses(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 0)
	sess := sessions.Create()

	q, err := interviews.NextQuestion(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, q)

	// No evidence on file, so an unplannable question does not terminate.
	snap, err := interviews.Snapshot(sess.ID)
	require.NoError(t, err)
	assert.False(t, snap.Terminated)
}

func TestTermination_QuestionCap(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 1)
	sess := sessions.Create()

	first, err := interviews.HandleAnswer(context.Background(), sess.ID, "sore throat", domain.PresencePresent, nil)
	require.NoError(t, err)
	require.NotNil(t, first.Question)

	second, err := interviews.HandleAnswer(context.Background(), sess.ID, "fever", domain.PresenceAbsent, nil)
	require.NoError(t, err)
	assert.Nil(t, second.Question)
	assert.True(t, second.Snapshot.Terminated)
	assert.Equal(t, ReasonQuestionCap, second.Snapshot.TerminationReason)
}

func TestTermination_NoDiscriminatingQuestionLeft(t *testing.T) {
	// Two conditions with identical symptoms never yield a useful split.
	sessions := NewSessionService(kb.Build([]domain.ConditionRecord{
		{Condition: "Flu A", Symptoms: "fever; cough"},
		{Condition: "Flu B", Symptoms: "fever; cough"},
	}), zap.NewNop())
	interviews := NewInterviewService(sessions, nil, 0, zap.NewNop())
	sess := sessions.Create()

	result, err := interviews.HandleAnswer(context.Background(), sess.ID, "fever", domain.PresencePresent, nil)
	require.NoError(t, err)

	assert.Nil(t, result.Question)
	assert.True(t, result.Snapshot.Terminated)
	assert.Equal(t, ReasonNoQuestionLeft, result.Snapshot.TerminationReason)
}

func TestTerminatedSessionPlansNoFurtherQuestions(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 1)
	sess := sessions.Create()

	_, err := interviews.HandleAnswer(context.Background(), sess.ID, "sore throat", domain.PresencePresent, nil)
	require.NoError(t, err)
	second, err := interviews.HandleAnswer(context.Background(), sess.ID, "fever", domain.PresenceAbsent, nil)
	require.NoError(t, err)
	require.True(t, second.Snapshot.Terminated)

	q, err := interviews.NextQuestion(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestCooccurring_ProxiesEngineLookup(t *testing.T) {
	interviews, sessions := newTestInterviews(t, nil, 0)
	sess := sessions.Create()

	tokens, err := interviews.Cooccurring(sess.ID, "sore throat", 5)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens)
	assert.NotContains(t, tokens, "sore throat")
}

func TestInterview_UnknownSession(t *testing.T) {
	interviews, _ := newTestInterviews(t, nil, 0)
	id := uuid.New()
	ctx := context.Background()

	_, err := interviews.HandleUtterance(ctx, id, "sore throat")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = interviews.HandleAnswer(ctx, id, "fever", domain.PresencePresent, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = interviews.NextQuestion(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = interviews.Snapshot(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = interviews.Cooccurring(id, "fever", 5)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
