// Package llm generates optional one-line descriptions of staged diffs.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultTimeout = 30 * time.Second

	// maxDiffBytes caps the diff sent to the model; one hunk rarely comes
	// close, but a single `add --patch` pass can stage a large rewrite.
	maxDiffBytes = 8000

	systemPrompt = "You summarize staged git diffs. Reply with one short plain " +
		"sentence describing what the change does. No markdown, no trailing period."
)

// Options configures a Client.
type Options struct {
	APIKey  string
	APIBase string
	Model   string
	Timeout time.Duration
}

// Client talks to an OpenAI-compatible endpoint.
type Client struct {
	opts Options
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{opts: opts}
}

// DescribeDiff returns a one-line description of the given staged diff.
func (c *Client) DescribeDiff(diff string) (string, error) {
	if c.opts.APIKey == "" {
		return "", errors.New("API key not set, please set it first: stagehand config set apikey YOUR_API_KEY")
	}

	clientConfig := openai.DefaultConfig(c.opts.APIKey)
	if c.opts.APIBase != "" {
		clientConfig.BaseURL = c.opts.APIBase
	}
	client := openai.NewClientWithConfig(clientConfig)

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.Timeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: truncateDiff(diff)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call LLM: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func truncateDiff(diff string) string {
	if len(diff) <= maxDiffBytes {
		return diff
	}
	return diff[:maxDiffBytes] + "\n... (diff truncated)"
}
