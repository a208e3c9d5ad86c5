package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/preclinic/triage/internal/domain"
)

// Report is the plain-text triage summary for a session.
type Report struct {
	Text     string          `json:"text"`
	Polished bool            `json:"polished"`
	Snapshot domain.Snapshot `json:"snapshot"`
}

// ReportService formats a triage summary from a session snapshot. The
// summary is assembled locally and optionally polished through the LLM
// client; the local text is the fallback, so reports work without one.
type ReportService struct {
	interviews *InterviewService
	llmClient  domain.LLMClient
	logger     *zap.Logger
}

func NewReportService(interviews *InterviewService, llmClient domain.LLMClient, logger *zap.Logger) *ReportService {
	return &ReportService{
		interviews: interviews,
		llmClient:  llmClient,
		logger:     logger,
	}
}

// Generate builds the report for a session.
func (s *ReportService) Generate(ctx context.Context, sessionID uuid.UUID) (*Report, error) {
	snap, err := s.interviews.Snapshot(sessionID)
	if err != nil {
		return nil, err
	}

	facts := collectFacts(snap)
	report := &Report{
		Text:     formatReport(snap, facts),
		Snapshot: snap,
	}

	if s.llmClient != nil && len(facts) > 0 {
		polished, err := s.llmClient.Summarize(ctx, facts)
		if err != nil || polished == "" {
			s.logger.Debug("report polishing failed, using local summary",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
			return report, nil
		}
		report.Text = polished
		report.Polished = true
	}
	return report, nil
}

// collectFacts flattens a snapshot into the fact lines handed to the LLM.
func collectFacts(snap domain.Snapshot) []string {
	var facts []string
	for _, ev := range snap.Evidence {
		facts = append(facts, fmt.Sprintf("%s: %s (turn %d)", ev.Presence, ev.Name, ev.SourceTurnIndex))
	}
	for _, h := range snap.Hypotheses {
		facts = append(facts, fmt.Sprintf("candidate condition %s: %.0f%%", h.Condition, h.Probability*100))
	}
	return facts
}

// formatReport renders the local fallback summary.
func formatReport(snap domain.Snapshot, facts []string) string {
	if len(facts) == 0 {
		return "No symptoms were recorded in this session."
	}

	var b strings.Builder
	b.WriteString("Triage summary\n\n")

	var present, absent []string
	for _, ev := range snap.Evidence {
		switch ev.Presence {
		case domain.PresencePresent:
			present = append(present, ev.Name)
		case domain.PresenceAbsent:
			absent = append(absent, ev.Name)
		}
	}
	if len(present) > 0 {
		b.WriteString("Reported: " + strings.Join(present, ", ") + "\n")
	}
	if len(absent) > 0 {
		b.WriteString("Denied: " + strings.Join(absent, ", ") + "\n")
	}

	if len(snap.Hypotheses) > 0 {
		b.WriteString("\nCandidate conditions:\n")
		for _, h := range snap.Hypotheses {
			b.WriteString(fmt.Sprintf("  %s (%.0f%%)\n", h.Condition, h.Probability*100))
		}
	}

	if snap.Terminated && snap.TerminationReason != "" {
		b.WriteString("\nInterview ended: " + snap.TerminationReason + "\n")
	}
	return b.String()
}
