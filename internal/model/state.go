package model

// GlobalState 聚合根：整个应用的全部用户财务数据
// 运行期只存在一个实例，由 store 独占持有；
// 只有导入和恢复出厂会整体替换它
type GlobalState struct {
	Blocks     []AssetBlock `json:"blocks"`
	Logs       []HashLog    `json:"logs"`
	Mines      []FutureMine `json:"mines"`
	TradingPit []Investment `json:"tradingPit"`
	Shield     ShieldVault  `json:"shield"`
	User       UserSettings `json:"user"`
}

// DefaultState 出厂初始状态
// 与旧版持久化文档的 INITIAL_STATE 逐字段对齐；
// 密码摘要为空，登录靠 IsDefaultPassword 走出厂口令通道
func DefaultState() *GlobalState {
	return &GlobalState{
		Blocks:     []AssetBlock{},
		Logs:       []HashLog{},
		Mines:      []FutureMine{},
		TradingPit: []Investment{},
		Shield: ShieldVault{
			EmergencyFund:     0,
			EmergencyGoal:     0,
			InsurancePolicies: []InsurancePolicy{},
			Debts:             []Debt{},
		},
		User: UserSettings{
			PasswordHash:      "",
			IsDefaultPassword: true,
			Username:          "OPERATOR_01",
			Avatar:            nil,
			Theme:             ThemeClassic,
			CRTEnabled:        true,
			SoundEnabled:      true,
			AI: AISettings{
				Provider: ProviderGemini,
				APIKey:   "",
				BaseURL:  "",
				Model:    "gemini-3-flash-preview",
			},
		},
	}
}

// CloneBlocks 资产方块集合的深拷贝
// 历史快照引用它，保证之后的修改不会回写到已生成的 HashLog
func CloneBlocks(blocks []AssetBlock) []AssetBlock {
	out := make([]AssetBlock, len(blocks))
	copy(out, blocks)
	return out
}

// Clone 整个状态的深拷贝，读侧一律拿拷贝，禁止共享内部切片
func (s *GlobalState) Clone() *GlobalState {
	out := &GlobalState{
		Blocks:     CloneBlocks(s.Blocks),
		Mines:      make([]FutureMine, len(s.Mines)),
		TradingPit: make([]Investment, len(s.TradingPit)),
		Logs:       make([]HashLog, len(s.Logs)),
		Shield:     s.Shield,
		User:       s.User,
	}
	copy(out.Mines, s.Mines)
	copy(out.TradingPit, s.TradingPit)
	for i, log := range s.Logs {
		log.Snapshot = CloneBlocks(log.Snapshot)
		out.Logs[i] = log
	}
	out.Shield.InsurancePolicies = make([]InsurancePolicy, len(s.Shield.InsurancePolicies))
	copy(out.Shield.InsurancePolicies, s.Shield.InsurancePolicies)
	out.Shield.Debts = make([]Debt, len(s.Shield.Debts))
	copy(out.Shield.Debts, s.Shield.Debts)
	if s.User.Avatar != nil {
		avatar := *s.User.Avatar
		out.User.Avatar = &avatar
	}
	return out
}
