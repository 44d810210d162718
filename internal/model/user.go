package model

// UITheme 界面主题标签
type UITheme string

const (
	ThemeClassic UITheme = "CLASSIC"
	ThemeNeon    UITheme = "NEON"
)

// AIProvider AI 顾问的服务商标签
type AIProvider string

const (
	ProviderGemini   AIProvider = "GEMINI"
	ProviderDeepSeek AIProvider = "DEEPSEEK"
	ProviderKimi     AIProvider = "KIMI"
	ProviderDoubao   AIProvider = "DOUBAO"
)

// AISettings AI 顾问的接入配置
type AISettings struct {
	Provider AIProvider `json:"provider"`
	APIKey   string     `json:"apiKey"`
	BaseURL  string     `json:"baseUrl"`
	Model    string     `json:"model"`
}

// UserSettings 用户设置（单例）
//
// PasswordHash 存的是 bcrypt 摘要，永远不落明文。
// IsDefaultPassword 为 true 期间，登录校验额外接受出厂默认口令，
// 用户改过一次密码后该标记被无条件清除。
type UserSettings struct {
	PasswordHash      string     `json:"passwordHash"`
	IsDefaultPassword bool       `json:"isDefaultPassword"`
	Username          string     `json:"username"`
	Avatar            *string    `json:"avatar"` // Base64 像素头像，可为 null
	Theme             UITheme    `json:"theme"`
	CRTEnabled        bool       `json:"crtEnabled"`
	SoundEnabled      bool       `json:"soundEnabled"`
	AI                AISettings `json:"ai"`
}
