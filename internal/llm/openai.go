package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient phrases follow-up questions and summaries via the OpenAI
// chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  defaultOpenAIModel,
	}
}

func (c *OpenAIClient) PhraseQuestion(ctx context.Context, targetSymptom string, discussed []string) (string, error) {
	user := fmt.Sprintf("Follow-up question to reword: Have you experienced %s?", targetSymptom)
	if len(discussed) > 0 {
		user += fmt.Sprintf("\nSymptoms already discussed: %s.", strings.Join(discussed, ", "))
	}
	return c.complete(ctx, phrasingSystemPrompt, user)
}

func (c *OpenAIClient) Summarize(ctx context.Context, facts []string) (string, error) {
	if len(facts) == 0 {
		return "", errors.New("no facts to summarize")
	}
	return c.complete(ctx, summarySystemPrompt, "Interview facts:\n- "+strings.Join(facts, "\n- "))
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
