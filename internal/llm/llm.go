// Package llm sends the repository digest to a chat-completion endpoint
// with a fixed due-diligence rubric and parses the reply into a structured
// assessment.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kevinmichaelchen/larp-watch/internal/errs"
	"github.com/kevinmichaelchen/larp-watch/internal/models"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const systemPrompt = `You are a senior blockchain security expert conducting due diligence on cryptocurrency projects. Your task is to analyze GitHub repositories to determine if they contain legitimate code or are 'larping' (pretending to be more substantial than they are). Be brutally honest and concise in your assessment.`

const rubric = `Analyze this GitHub repository to determine if the project is "larping" (pretending to be more substantial than it actually is).

ANALYSIS INSTRUCTIONS:
1. Provide a concise assessment (max 500 words total) focused on these key questions:
   a) Is this a real, functional project or just empty promises?
   b) Does the code actually implement what the project claims?
   c) Are there specific red flags indicating a scam or incompetence?
   d) Is this a copy/paste of another project with minimal modifications?

2. Rate each of the following on a scale of 1-5 (1=Very Poor, 5=Excellent):
   - CODE QUALITY: Is the code well-written or amateurish?
   - COMPLETENESS: Is it a complete implementation or just a skeleton?
   - SECURITY: Are there obvious security flaws?
   - ORIGINALITY: Is this unique code or copied/forked?
   - ACTIVITY: Is this an actively maintained project?

3. VERDICT: Explicitly state whether this project is LEGITIMATE, LARPING, or BORDERLINE, with a 1-2 sentence explanation.

`

// Assess sends one completion request with the digest embedded in the
// prompt and parses the reply. It never fabricates a default verdict: a
// reply missing any rating or the verdict keyword fails with
// errs.ErrAssessmentParse.
func (c *Client) Assess(ctx context.Context, digest string) (*models.Assessment, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: rubric + digest},
		},
		Temperature: 0.2,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, mapError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: provider returned no completion choices", errs.ErrUpstream)
	}

	return parseAssessment(resp.Choices[0].Message.Content)
}

func mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: LLM provider quota exhausted", errs.ErrRateLimited)
		}
		return fmt.Errorf("%w: LLM provider returned %d: %s",
			errs.ErrUpstream, apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
}
