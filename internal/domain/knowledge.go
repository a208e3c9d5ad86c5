package domain

// ConditionRecord is one row of the reference dataset: a condition label and
// a single delimited symptom-description blob.
type ConditionRecord struct {
	Condition string
	Symptoms  string
}

// KnowledgeBase maps condition labels to their symptom-token vocabulary.
// It is built once at startup and read-only thereafter. Condition order is
// first-seen input order and token order within a condition is first-seen
// order; both are load-bearing for deterministic scoring and planning.
type KnowledgeBase struct {
	order  []string
	tokens map[string][]string
}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{tokens: make(map[string][]string)}
}

// Put sets the token set for a condition. A duplicate label overwrites the
// earlier token set (it does not merge) and keeps its original position.
func (kb *KnowledgeBase) Put(condition string, tokens []string) {
	if _, ok := kb.tokens[condition]; !ok {
		kb.order = append(kb.order, condition)
	}
	kb.tokens[condition] = tokens
}

// Conditions returns condition labels in first-seen order.
func (kb *KnowledgeBase) Conditions() []string {
	out := make([]string, len(kb.order))
	copy(out, kb.order)
	return out
}

// Tokens returns the symptom tokens for a condition in first-seen order.
// Unknown conditions yield nil.
func (kb *KnowledgeBase) Tokens(condition string) []string {
	toks, ok := kb.tokens[condition]
	if !ok {
		return nil
	}
	out := make([]string, len(toks))
	copy(out, toks)
	return out
}

// Has reports whether a condition's token set contains the exact token.
func (kb *KnowledgeBase) Has(condition, token string) bool {
	for _, t := range kb.tokens[condition] {
		if t == token {
			return true
		}
	}
	return false
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.order)
}

// Empty reports the degraded mode where the dataset failed to load; the
// scorer and planner always return empty results against an empty base.
func (kb *KnowledgeBase) Empty() bool {
	return len(kb.order) == 0
}
