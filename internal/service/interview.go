package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
	"github.com/preclinic/triage/internal/engine"
)

// Termination reasons recorded on the session when the interview winds down.
const (
	ReasonNoQuestionLeft = "no discriminating question remaining"
	ReasonQuestionCap    = "question limit reached"
)

// DefaultMaxQuestions caps how many planned questions a session may ask.
const DefaultMaxQuestions = 12

// PhrasedQuestion pairs the planner's output with the patient-facing text.
// Text falls back to the plan's template when the phrasing provider fails;
// the plan itself never depends on the provider.
type PhrasedQuestion struct {
	Plan domain.QuestionPlan `json:"plan"`
	Text string              `json:"text"`
}

// IntakeResult is what an intake operation hands back to the transport: the
// evidence names it produced, the fresh snapshot, and the next question when
// one could be planned.
type IntakeResult struct {
	Added    []string         `json:"added,omitempty"`
	Snapshot domain.Snapshot  `json:"snapshot"`
	Question *PhrasedQuestion `json:"question,omitempty"`
}

// InterviewService drives the triage loop: intake, recompute, plan, phrase.
// The engine decides everything; this layer only sequences calls and dresses
// the planner's question through the LLM client.
type InterviewService struct {
	sessions     *SessionService
	llmClient    domain.LLMClient
	maxQuestions int
	logger       *zap.Logger
}

func NewInterviewService(sessions *SessionService, llmClient domain.LLMClient, maxQuestions int, logger *zap.Logger) *InterviewService {
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}
	return &InterviewService{
		sessions:     sessions,
		llmClient:    llmClient,
		maxQuestions: maxQuestions,
		logger:       logger,
	}
}

// HandleUtterance feeds a free-text patient message through the extractor
// and plans the next question.
func (s *InterviewService) HandleUtterance(ctx context.Context, sessionID uuid.UUID, utterance string) (*IntakeResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	result := &IntakeResult{}
	sess.do(func(e *engine.Engine) {
		result.Added = e.IntakeUtterance(utterance, sess.nextTurn())
		result.Question = s.nextQuestion(ctx, e)
		result.Snapshot = e.Snapshot()
	})
	return result, nil
}

// HandleAnswer records a structured answer for a symptom and plans the next
// question. Invalid presence values are absorbed by the engine as no-ops.
func (s *InterviewService) HandleAnswer(ctx context.Context, sessionID uuid.UUID, symptom string, presence domain.Presence, qualifiers *domain.Qualifiers) (*IntakeResult, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	result := &IntakeResult{}
	sess.do(func(e *engine.Engine) {
		e.RecordAnswer(symptom, presence, sess.nextTurn())
		if qualifiers != nil {
			e.QualifyEvidence(symptom, *qualifiers)
		}
		result.Question = s.nextQuestion(ctx, e)
		result.Snapshot = e.Snapshot()
	})
	return result, nil
}

// NextQuestion plans and phrases a question without any intake.
func (s *InterviewService) NextQuestion(ctx context.Context, sessionID uuid.UUID) (*PhrasedQuestion, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var q *PhrasedQuestion
	sess.do(func(e *engine.Engine) {
		q = s.nextQuestion(ctx, e)
	})
	return q, nil
}

// Snapshot returns the immutable state copy for a session.
func (s *InterviewService) Snapshot(sessionID uuid.UUID) (domain.Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	var snap domain.Snapshot
	sess.do(func(e *engine.Engine) {
		snap = e.Snapshot()
	})
	return snap, nil
}

// Cooccurring proxies the read-only related-symptom lookup.
func (s *InterviewService) Cooccurring(sessionID uuid.UUID, phrase string, limit int) ([]string, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var tokens []string
	sess.do(func(e *engine.Engine) {
		tokens = e.Cooccurring(phrase, limit)
	})
	return tokens, nil
}

// nextQuestion runs the planner and phrases its pick. A nil plan with
// evidence on file, or a session at the question cap, marks the interview
// terminated; both are normal end states, not errors.
// Callers hold the session lock.
func (s *InterviewService) nextQuestion(ctx context.Context, e *engine.Engine) *PhrasedQuestion {
	if e.Terminated() {
		return nil
	}

	snap := e.Snapshot()
	if len(snap.AskedQuestions) >= s.maxQuestions {
		e.Terminate(ReasonQuestionCap)
		return nil
	}

	plan := e.PlanQuestion()
	if plan == nil {
		if len(snap.Evidence) > 0 {
			e.Terminate(ReasonNoQuestionLeft)
		}
		return nil
	}

	return &PhrasedQuestion{
		Plan: *plan,
		Text: s.phrase(ctx, plan, snap.Evidence),
	}
}

// phrase asks the LLM client to reword the planned question, falling back to
// the template text when the call fails or no client is configured.
func (s *InterviewService) phrase(ctx context.Context, plan *domain.QuestionPlan, evidence []domain.SymptomEvidence) string {
	if s.llmClient == nil {
		return plan.Question
	}

	discussed := make([]string, 0, len(evidence))
	for _, ev := range evidence {
		discussed = append(discussed, ev.Name)
	}

	text, err := s.llmClient.PhraseQuestion(ctx, plan.TargetSymptom, discussed)
	if err != nil || text == "" {
		s.logger.Debug("question phrasing failed, using template",
			zap.String("target", plan.TargetSymptom),
			zap.Error(err))
		return plan.Question
	}
	return text
}
