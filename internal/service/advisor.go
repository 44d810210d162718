package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kael37/PixelLedger/internal/aggregate"
	"github.com/kael37/PixelLedger/internal/infrastructure/llm"
	"github.com/kael37/PixelLedger/internal/model"
)

// SystemInstruction AI 顾问的人设，和产品文案强绑定，改动需谨慎
const SystemInstruction = `你是一名赛博朋克风格的财务黑客顾问。
你的语言风格必须包含：财富哈希率、能量护盾状态、矿井开采效率、流动性枯竭、黑天鹅波动、资产格式化、节点负载、加密协议等术语。
例如："检测到零系统负载。财富哈希率爆表，投资池极速运转；但能量护盾仅10%负载，防御极度脆弱。"
请根据用户提供的资产数据，输出一段100字以内的中文分析报告。`

// 顾问的三种本地兜底文案：配置缺失 / 配额受限 / 其它故障。
// 顾问调用永远不向上抛错，失败一律折叠成用户可见的占位文本
const (
	msgConfigMissing = "警告: AI节点配置缺失。请在个人中心配置 API_KEY 及 ENDPOINT。"
	msgQuotaLimited  = "警告: 顾问模块哈希频率受限 [QUOTA_EXHAUSTED]。请检查节点余额或稍后重试。"
)

// OpenAI 兼容服务商的默认接入点，用户没填 baseUrl 时兜底
var defaultBaseURLs = map[model.AIProvider]string{
	model.ProviderDeepSeek: "https://api.deepseek.com/v1",
	model.ProviderKimi:     "https://api.moonshot.cn/v1",
	model.ProviderDoubao:   "https://ark.cn-beijing.volces.com/api/v3",
}

// ProviderFactory 按 AI 配置构建具体的 Provider。
// 返回 nil Provider 表示配置不完整，直接走配置缺失文案
type ProviderFactory func(ai model.AISettings) llm.Provider

// DefaultProviderFactory 按 provider 标签路由：
// GEMINI 走官方 genai SDK，其余走 OpenAI 兼容协议
func DefaultProviderFactory(ai model.AISettings) llm.Provider {
	if ai.Provider == model.ProviderGemini {
		if ai.APIKey == "" {
			return nil
		}
		return llm.NewGeminiClient(ai.APIKey, ai.Model)
	}

	baseURL := ai.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURLs[ai.Provider]
	}
	if baseURL == "" || ai.APIKey == "" {
		return nil
	}
	return llm.NewOpenAIClient(ai.APIKey, baseURL, ai.Model)
}

// AdvisorService 把只读状态快照变成一段 AI 分析文本。
// 它绝不修改状态，也绝不阻塞超过 timeout
type AdvisorService struct {
	factory ProviderFactory
	timeout time.Duration
}

func NewAdvisorService(factory ProviderFactory) *AdvisorService {
	if factory == nil {
		factory = DefaultProviderFactory
	}
	return &AdvisorService{factory: factory, timeout: 30 * time.Second}
}

// Analyze 基于状态快照生成分析报告。任何失败都落到占位文案，不返回 error
func (s *AdvisorService) Analyze(ctx context.Context, state *model.GlobalState) string {
	prompt := BuildPrompt(state)

	provider := s.factory(state.User.AI)
	if provider == nil {
		return msgConfigMissing
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := provider.Advise(ctx, SystemInstruction, prompt)
	if err != nil {
		slog.Error("AI 顾问调用失败", "provider", state.User.AI.Provider, "err", err)
		return recoverMessage(err)
	}
	return text
}

// BuildPrompt 把派生指标拼成顾问的结构化输入
func BuildPrompt(state *model.GlobalState) string {
	return fmt.Sprintf(`分析以下数据：
- 流动资产: %g
- 投资总市值: %g
- 长期矿产积累: %g
- 护盾能量(应急金): %.1f%%
- 系统漏洞(债务): %g
`,
		aggregate.LiquidTotal(state),
		aggregate.InvestmentTotal(state),
		aggregate.MineTotal(state),
		aggregate.ShieldIntegrityPct(state),
		aggregate.DebtTotal(state),
	)
}

func recoverMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota") {
		return msgQuotaLimited
	}
	return fmt.Sprintf("连接中断 [%s]。正在重新尝试握手...", msg)
}
