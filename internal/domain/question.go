package domain

// QuestionPlan is the planner's proposal for the next discriminating
// question. Immutable once created; appended to the asked-question history
// so the same symptom is never proposed twice.
type QuestionPlan struct {
	Question       string             `json:"question"`
	TargetSymptom  string             `json:"target_symptom"`
	Rationale      string             `json:"rationale"`
	ExpectedSplits map[string]float64 `json:"expected_splits"`
}
