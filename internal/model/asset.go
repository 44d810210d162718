package model

// AssetType 资产方块的分类标签
// 注意：这些字符串字面量就是持久化文档的线上格式，不能随意改名
type AssetType string

const (
	AssetCash       AssetType = "CASH"
	AssetBank       AssetType = "BANK"
	AssetWeChat     AssetType = "WECHAT"
	AssetAlipay     AssetType = "ALIPAY"
	AssetCrypto     AssetType = "CRYPTO"
	AssetStock      AssetType = "STOCK"
	AssetRealEstate AssetType = "REAL_ESTATE"
	AssetInsurance  AssetType = "INSURANCE"
	AssetDebt       AssetType = "DEBT"
)

// AssetBlock 一个流动/非流动资产方块
// Balance 允许为负（债务类方块按约定记负数，但不强制校验）
type AssetBlock struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    AssetType `json:"type"`
	Balance float64   `json:"balance"`
	Icon    string    `json:"icon"`
}

// InvestmentType 交易池持仓的分类
type InvestmentType string

const (
	InvestStock  InvestmentType = "STOCK"
	InvestFund   InvestmentType = "FUND"
	InvestCrypto InvestmentType = "CRYPTO"
	InvestMetal  InvestmentType = "METAL"
)

// ManualCode 手动录入持仓时 Code 字段的占位值
const ManualCode = "manual"

// Investment 交易池里的一笔持仓
// 总成本 = Cost × Quantity，总市值 = CurrentValue × Quantity
type Investment struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Code         string         `json:"code"`
	BuyDate      string         `json:"buyDate"`
	Cost         float64        `json:"cost"`
	Quantity     float64        `json:"quantity"`
	CurrentValue float64        `json:"currentValue"`
	Type         InvestmentType `json:"type"`
}

// MineType 未来矿井（长线积累目标）的分类
type MineType string

const (
	MinePension        MineType = "PENSION"
	MineSocialSecurity MineType = "SOCIAL_SECURITY"
	MineSavings        MineType = "SAVINGS"
)

// FutureMine 一个长线积累目标
// 进度相对 TargetAmount 计算，允许超过 100%；TargetAmount 为 0 时进度按 0 处理
type FutureMine struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	CurrentAmount       float64  `json:"currentAmount"`
	TargetAmount        float64  `json:"targetAmount"`
	MonthlyContribution float64  `json:"monthlyContribution"`
	Type                MineType `json:"type"`
}

// HashLog 一条不可变的时点快照记录
// 创建之后永远不会被修改；Snapshot 保存的是创建时资产方块的深拷贝
type HashLog struct {
	ID          string       `json:"id"`
	Timestamp   int64        `json:"timestamp"` // Unix 毫秒，与旧文档保持一致
	TotalAssets float64      `json:"totalAssets"`
	Delta       float64      `json:"delta"`
	Memo        string       `json:"memo"`
	Snapshot    []AssetBlock `json:"snapshot"`
}

// MaxHashLogs 快照账本的最大保留条数，超出后淘汰最旧的记录
const MaxHashLogs = 100
