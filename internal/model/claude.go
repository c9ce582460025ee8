package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultClaudeModel is used when the config names the provider but not
// the model.
const DefaultClaudeModel = "claude-sonnet-4-5-20250929"

const claudeMaxTokens = 1024

// Claude talks to the Anthropic API.
type Claude struct {
	client anthropic.Client
	name   string
}

// NewClaude creates a Claude-backed model. apiKey must be non-empty; an
// empty name selects DefaultClaudeModel.
func NewClaude(apiKey, name string) (*Claude, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NewClaude: ANTHROPIC_API_KEY not set")
	}
	if name == "" {
		name = DefaultClaudeModel
	}
	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		name:   name,
	}, nil
}

// Generate sends the prompt and returns the concatenated text blocks of
// the response.
func (c *Claude) Generate(ctx context.Context, prompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.name),
		MaxTokens: claudeMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude: message call failed: %w", err)
	}
	if len(message.Content) == 0 {
		return "", fmt.Errorf("claude: empty response from model")
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("claude: response contained no text blocks")
	}
	return b.String(), nil
}
