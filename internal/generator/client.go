package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient is the interface all backend implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

var (
	sharedOnce   sync.Once
	sharedClient LLMClient
	sharedModel  string
)

// SharedClient returns the process-wide LLM client, building it on first
// use. The model backing prompt generation and mask prediction is expensive
// to reach, so every component shares one handle; concurrent first calls all
// observe the same instance.
func SharedClient() (LLMClient, string) {
	sharedOnce.Do(func() {
		sharedClient, sharedModel = newClientFromEnv()
	})
	return sharedClient, sharedModel
}

func newClientFromEnv() (LLMClient, string) {
	if os.Getenv("USE_CLI_GENERATOR") == "true" {
		log.Println("Generator using Claude CLI")
		return NewCLIClient(os.Getenv("CLAUDE_CLI_PATH")), "claude-cli"
	}
	if os.Getenv("MOCK_GENERATOR") == "true" {
		log.Println("Generator using mock data")
		return NewMockClient(), "mock"
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	log.Println("Generator using Anthropic API:", model)
	return NewAPIClient(model), model
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   2048,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Retrying Anthropic API call in %v (attempt %d)", sleepDuration, attempt+1)
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		log.Printf("Anthropic API attempt %d failed: %v", attempt+1, err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

// MockClient answers both capability prompts with canned JSON so the full
// pipeline runs without network access.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	content := mockPromptsJSON
	if strings.Contains(systemPrompt, "hidden word") {
		content = mockCandidatesJSON
	}
	return &LLMResponse{
		Content:      content,
		PromptTokens: 200,
		OutputTokens: 150,
	}, nil
}

const mockCandidatesJSON = `["animal","creature","predator","species","mammal","hunter","rodent","feline","pet","carnivore","being","organism","beast","vertebrate","quadruped","companion","specimen","critter","lifeform","dweller"]`

const mockPromptsJSON = `["What characteristic distinguishes the subject described in the passage","Why does the passage emphasize the role of its main subject","How does the described process unfold according to the text","When did the events described in the passage take place","Which factor contributes most to the outcome described"]`
