package advice

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultOpenAIModel   = "gemini-2.5-flash"
)

// OpenAI generates insights through any OpenAI-compatible chat endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI builds a chat-completion provider. Empty baseURL and model use
// the Gemini defaults; a zero timeout leaves the transport default.
func NewOpenAI(apiKey, baseURL, model string, timeout time.Duration) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAI) Name() string { return "openai" }

// Generate sends prompt as a single user message with a strict JSON schema.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "financial_insight",
				Schema: Schema(),
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("advice: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
