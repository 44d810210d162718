// Package aggregate 提供对 GlobalState 的派生指标计算。
// 所有函数都是纯函数：不持有状态、每次读取重新计算、对空集合返回零值，
// 所有除法都有零分母保护，永远不会失败。
package aggregate

import "github.com/kael37/PixelLedger/internal/model"

// LiquidTotal 所有资产方块余额之和（流动资产）
func LiquidTotal(s *model.GlobalState) float64 {
	var sum float64
	for _, b := range s.Blocks {
		sum += b.Balance
	}
	return sum
}

// InvestmentTotal 交易池总市值：Σ 市值单价 × 数量
func InvestmentTotal(s *model.GlobalState) float64 {
	var sum float64
	for _, i := range s.TradingPit {
		sum += i.CurrentValue * i.Quantity
	}
	return sum
}

// InvestmentUnitTotal 交易池市值单价之和（不乘数量）。
// 这是风险比率沿用的历史口径，和 InvestmentTotal 刻意保持为两个命名计算，
// 不做统一，避免悄悄改变存量数据的含义。
func InvestmentUnitTotal(s *model.GlobalState) float64 {
	var sum float64
	for _, i := range s.TradingPit {
		sum += i.CurrentValue
	}
	return sum
}

// MineTotal 所有矿井当前积累之和
func MineTotal(s *model.GlobalState) float64 {
	var sum float64
	for _, m := range s.Mines {
		sum += m.CurrentAmount
	}
	return sum
}

// DebtTotal 护盾仓全部负债之和
func DebtTotal(s *model.GlobalState) float64 {
	var sum float64
	for _, d := range s.Shield.Debts {
		sum += d.Amount
	}
	return sum
}

// NetWorth 净值 = 流动资产 + 投资市值 + 矿井积累 − 负债
func NetWorth(s *model.GlobalState) float64 {
	return LiquidTotal(s) + InvestmentTotal(s) + MineTotal(s) - DebtTotal(s)
}

// ShieldIntegrityPct 护盾完整度百分比，目标为 0 时返回 0。
// 原始值不截断（可以超过 100），进度条展示时由调用方自行钳位
func ShieldIntegrityPct(s *model.GlobalState) float64 {
	if s.Shield.EmergencyGoal == 0 {
		return 0
	}
	return s.Shield.EmergencyFund / s.Shield.EmergencyGoal * 100
}

// RiskRatioPct 负债占总资产的百分比。
// 总资产 = 流动资产 + 市值单价之和 + 矿井积累（历史口径）。
// 无资产无负债 → 0；无资产有负债 → 100
func RiskRatioPct(s *model.GlobalState) float64 {
	total := LiquidTotal(s) + InvestmentUnitTotal(s) + MineTotal(s)
	debt := DebtTotal(s)
	if total > 0 {
		return debt / total * 100
	}
	if debt > 0 {
		return 100
	}
	return 0
}

// MineProgressPct 单个矿井的进度百分比，不封顶；目标为 0 时返回 0
func MineProgressPct(m model.FutureMine) float64 {
	if m.TargetAmount == 0 {
		return 0
	}
	return m.CurrentAmount / m.TargetAmount * 100
}

// TypeProfit 某一持仓分类的成本加权盈亏
type TypeProfit struct {
	Type      model.InvestmentType `json:"type"`
	Cost      float64              `json:"cost"`
	Value     float64              `json:"value"`
	Profit    float64              `json:"profit"`
	ProfitPct float64              `json:"profitPct"`
}

// ProfitByType 按持仓分类聚合盈亏，分类之间保持首次出现的顺序。
// 某分类总成本为 0 时盈亏百分比按 0 处理，不产生 NaN
func ProfitByType(s *model.GlobalState) []TypeProfit {
	order := []model.InvestmentType{}
	byType := map[model.InvestmentType]*TypeProfit{}
	for _, inv := range s.TradingPit {
		tp, ok := byType[inv.Type]
		if !ok {
			tp = &TypeProfit{Type: inv.Type}
			byType[inv.Type] = tp
			order = append(order, inv.Type)
		}
		tp.Cost += inv.Cost * inv.Quantity
		tp.Value += inv.CurrentValue * inv.Quantity
	}
	out := make([]TypeProfit, 0, len(order))
	for _, t := range order {
		tp := byType[t]
		tp.Profit = tp.Value - tp.Cost
		if tp.Cost != 0 {
			tp.ProfitPct = tp.Profit / tp.Cost * 100
		}
		out = append(out, *tp)
	}
	return out
}
