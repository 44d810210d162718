package llm

import "context"

// Provider 定义了 LLM 的通用行为
type Provider interface {
	// Advise 输入 system 人设和用户数据 prompt，返回一段自由文本分析
	Advise(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
