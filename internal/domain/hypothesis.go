package domain

// Hypothesis is a scored, probability-weighted candidate condition derived
// from the current evidence set. Probabilities are normalized across the
// returned set, not across all conditions ever seen.
type Hypothesis struct {
	Condition     string   `json:"condition"`
	Score         int      `json:"score"`
	Probability   float64  `json:"probability"`
	Supporting    []string `json:"supporting"`
	Contradicting []string `json:"contradicting,omitempty"`
}
