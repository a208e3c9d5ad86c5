package llm

import (
	"context"
	"fmt"
)

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what each method returns.
type MockClient struct {
	PhraseResponse    string
	PhraseError       error
	SummarizeResponse string
	SummarizeError    error

	// Call tracking for assertions
	PhraseCalls    []string
	SummarizeCalls [][]string
}

func NewMockClient() *MockClient {
	return &MockClient{
		SummarizeResponse: "Mock triage summary",
	}
}

func (c *MockClient) PhraseQuestion(ctx context.Context, targetSymptom string, discussed []string) (string, error) {
	c.PhraseCalls = append(c.PhraseCalls, targetSymptom)
	if c.PhraseError != nil {
		return "", c.PhraseError
	}
	if c.PhraseResponse != "" {
		return c.PhraseResponse, nil
	}
	return fmt.Sprintf("Have you noticed any %s lately?", targetSymptom), nil
}

func (c *MockClient) Summarize(ctx context.Context, facts []string) (string, error) {
	c.SummarizeCalls = append(c.SummarizeCalls, facts)
	if c.SummarizeError != nil {
		return "", c.SummarizeError
	}
	return c.SummarizeResponse, nil
}

// Reset clears all recorded calls and resets responses to defaults.
func (c *MockClient) Reset() {
	c.PhraseResponse = ""
	c.PhraseError = nil
	c.SummarizeResponse = "Mock triage summary"
	c.SummarizeError = nil
	c.PhraseCalls = nil
	c.SummarizeCalls = nil
}
