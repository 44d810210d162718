package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient 通过官方 genai SDK 访问 Gemini
type GeminiClient struct {
	modelName string
	apiKey    string
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	if modelName == "" {
		modelName = "gemini-3-flash-preview"
	}
	return &GeminiClient{modelName: modelName, apiKey: apiKey}
}

func (c *GeminiClient) Advise(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("init gemini client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, c.modelName,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from %s", c.modelName)
	}
	return text, nil
}
