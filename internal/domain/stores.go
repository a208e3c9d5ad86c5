package domain

import "context"

// DatasetSource yields the ordered condition/symptom records the knowledge
// base is built from. Implementations read a CSV file or a Postgres table;
// the engine only ever sees the finished KnowledgeBase.
type DatasetSource interface {
	Records(ctx context.Context) ([]ConditionRecord, error)
}

// LLMClient phrases planner output and summarizes finished interviews. It is
// a presentation collaborator: the engine never calls it and no engine
// result depends on it.
type LLMClient interface {
	// PhraseQuestion rewords the planner's templated question for the
	// patient, given the symptoms already discussed.
	PhraseQuestion(ctx context.Context, targetSymptom string, discussed []string) (string, error)

	// Summarize turns the final interview facts into a short triage report.
	Summarize(ctx context.Context, facts []string) (string, error)
}
