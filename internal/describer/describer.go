package describer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const descriptionPrompt = `You are writing the publishing description for a narrated
presentation video. Based on the narration script below, write a concise description in
the script's own language.

Requirements:
- Start with a single-sentence summary of what the presentation covers
- Follow with 3-6 bullet points of the main topics, in order of appearance
- Keep technical terms exactly as spoken
- Use markdown, no heading

Narration script:
---
%s
---`

// Describe sends the narration script to Gemini and returns the
// generated description markdown.
func (d *implDescriber) Describe(ctx context.Context, narration string) (string, error) {
	if d.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  d.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	prompt := fmt.Sprintf(descriptionPrompt, narration)
	result, err := client.Models.GenerateContent(ctx, d.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return text, nil
}
