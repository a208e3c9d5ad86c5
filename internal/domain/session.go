package domain

// Snapshot is an immutable copy of engine state handed to callers. The
// engine deep-copies everything so later mutations never alias into it.
type Snapshot struct {
	Cycle             int               `json:"cycle"`
	Hypotheses        []Hypothesis      `json:"hypotheses"`
	AskedQuestions    []QuestionPlan    `json:"asked_questions"`
	Evidence          []SymptomEvidence `json:"evidence"`
	Terminated        bool              `json:"terminated"`
	TerminationReason string            `json:"termination_reason,omitempty"`
}
