package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient 走 OpenAI 兼容协议的服务商（DeepSeek / Kimi / 豆包 等）
type OpenAIClient struct {
	modelName string
	client    *openai.Client
}

func NewOpenAIClient(apiKey, baseURL, modelName string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &OpenAIClient{
		modelName: modelName,
		client:    openai.NewClientWithConfig(config),
	}
}

func (c *OpenAIClient) Advise(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens: 150,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion from %s", c.modelName)
	}
	return resp.Choices[0].Message.Content, nil
}
