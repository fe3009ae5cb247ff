// Package advisor turns a filtered set of cover crop records into a
// natural-language recommendation via the Gemini API.
package advisor

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/osu-soilwater/cover-crop-advisor/internal/config"
	"github.com/osu-soilwater/cover-crop-advisor/internal/dataset"
)

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient builds the Gemini client with the configured model parameters.
func NewClient(ctx context.Context, cfg config.GenAIConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// Recommend sends the filtered records and the farmer's selections to the
// completion service and returns the generated text verbatim. Any service
// fault is returned to the caller; there is no retry.
func (c *Client) Recommend(ctx context.Context, records []dataset.CoverCropRecord, goals []dataset.Goal, crops []string) (string, error) {
	prompt, err := buildPrompt(records, goals, crops)
	if err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate recommendation: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no recommendation generated")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return text, nil
}
