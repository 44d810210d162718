package model

// InsurancePolicy 护盾仓里的一份保单
type InsurancePolicy struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
	Premium  float64 `json:"premium"`
}

// Debt 护盾仓里的一笔负债
type Debt struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Interest float64 `json:"interest"`
}

// ShieldVault 应急储备子系统（单例，不是集合）
// 护盾完整度 = EmergencyFund / EmergencyGoal（目标为 0 时按 0 处理）
type ShieldVault struct {
	EmergencyFund     float64           `json:"emergencyFund"`
	EmergencyGoal     float64           `json:"emergencyGoal"`
	InsurancePolicies []InsurancePolicy `json:"insurancePolicies"`
	Debts             []Debt            `json:"debts"`
}
