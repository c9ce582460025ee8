package model

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel matches the model the tracker has been tuned against.
const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini talks to the Google GenAI API. The API key is resolved by the
// client itself from GOOGLE_API_KEY / GEMINI_API_KEY.
type Gemini struct {
	client *genai.Client
	name   string
}

// NewGemini creates a Gemini-backed model. An empty name selects
// DefaultGeminiModel.
func NewGemini(ctx context.Context, name string) (*Gemini, error) {
	if name == "" {
		name = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGemini: create genai client: %w", err)
	}
	return &Gemini{client: client, name: name}, nil
}

// Generate sends the prompt and returns the raw response text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.name, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model")
	}
	return text, nil
}
