// Package store 持有唯一的 GlobalState 实例，是全部状态变更的唯一入口。
//
// 变更约定（对所有集合一致）：
//   - Add：由 store 生成不重复的新 ID，追加到集合末尾，插入顺序即展示顺序；
//   - Update：只替换指明的字段，不改顺序；ID 不存在时静默忽略，不算错误；
//   - Delete：按 ID 删除，ID 不存在时同样是 no-op。
//
// 每次成功变更后向 Changes 通道发一个信号，持久化任务在外部消费该信号，
// 变更路径本身不做任何 I/O。
package store

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kael37/PixelLedger/internal/model"
)

type Store struct {
	mu      sync.RWMutex
	state   *model.GlobalState
	changes chan struct{}
}

// New 创建 store。initial 为 nil 时落到出厂状态
func New(initial *model.GlobalState) *Store {
	if initial == nil {
		initial = model.DefaultState()
	}
	return &Store{
		state: initial,
		// 容量为 1 的信号通道：多次变更合并成一次落盘，不会阻塞变更路径
		changes: make(chan struct{}, 1),
	}
}

// Changes 返回变更信号通道，唯一的消费者应当是持久化任务
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Snapshot 当前状态的深拷贝，调用方可以随意读，改了也不影响权威状态
func (s *Store) Snapshot() *model.GlobalState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default: // 已有待处理信号，合并
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 只有读随机源失败才会报错，此时退回 v4
		return uuid.NewString()
	}
	return id.String()
}

// ========== 资产方块 ==========

// AddBlock 新增资产方块，返回带新 ID 的记录
func (s *Store) AddBlock(name string, typ model.AssetType, balance float64, icon string) model.AssetBlock {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.AssetBlock{ID: newID(), Name: name, Type: typ, Balance: balance, Icon: icon}
	s.state.Blocks = append(s.state.Blocks, b)
	s.notify()
	return b
}

// UpdateBlockBalance 只改余额，其余字段和顺序不动
func (s *Store) UpdateBlockBalance(id string, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Blocks {
		if s.state.Blocks[i].ID == id {
			s.state.Blocks[i].Balance = balance
			s.notify()
			return
		}
	}
}

func (s *Store) DeleteBlock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Blocks {
		if s.state.Blocks[i].ID == id {
			s.state.Blocks = append(s.state.Blocks[:i], s.state.Blocks[i+1:]...)
			s.notify()
			return
		}
	}
}

// ========== 未来矿井 ==========

func (s *Store) AddMine(name string, typ model.MineType, current, target, monthly float64) model.FutureMine {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := model.FutureMine{
		ID:                  newID(),
		Name:                name,
		Type:                typ,
		CurrentAmount:       current,
		TargetAmount:        target,
		MonthlyContribution: monthly,
	}
	s.state.Mines = append(s.state.Mines, m)
	s.notify()
	return m
}

// UpdateMineAmount 更新矿井当前积累额
func (s *Store) UpdateMineAmount(id string, current float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Mines {
		if s.state.Mines[i].ID == id {
			s.state.Mines[i].CurrentAmount = current
			s.notify()
			return
		}
	}
}

func (s *Store) DeleteMine(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Mines {
		if s.state.Mines[i].ID == id {
			s.state.Mines = append(s.state.Mines[:i], s.state.Mines[i+1:]...)
			s.notify()
			return
		}
	}
}

// ========== 交易池 ==========

func (s *Store) AddInvestment(inv model.Investment) model.Investment {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = newID()
	if inv.Code == "" {
		inv.Code = model.ManualCode
	}
	s.state.TradingPit = append(s.state.TradingPit, inv)
	s.notify()
	return inv
}

// UpdateInvestmentValue 刷新持仓的市值单价（行情更新走这里）
func (s *Store) UpdateInvestmentValue(id string, currentValue float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.TradingPit {
		if s.state.TradingPit[i].ID == id {
			s.state.TradingPit[i].CurrentValue = currentValue
			s.notify()
			return
		}
	}
}

func (s *Store) DeleteInvestment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.TradingPit {
		if s.state.TradingPit[i].ID == id {
			s.state.TradingPit = append(s.state.TradingPit[:i], s.state.TradingPit[i+1:]...)
			s.notify()
			return
		}
	}
}

// ========== 护盾仓 ==========

// ShieldPatch 护盾标量字段的部分更新，nil 表示不动
type ShieldPatch struct {
	EmergencyFund *float64 `json:"emergencyFund"`
	EmergencyGoal *float64 `json:"emergencyGoal"`
}

func (s *Store) UpdateShield(patch ShieldPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := false
	if patch.EmergencyFund != nil {
		s.state.Shield.EmergencyFund = *patch.EmergencyFund
		applied = true
	}
	if patch.EmergencyGoal != nil {
		s.state.Shield.EmergencyGoal = *patch.EmergencyGoal
		applied = true
	}
	// 全空 patch 是 no-op，和缺 id 的更新一样不发变更信号
	if applied {
		s.notify()
	}
}

func (s *Store) AddPolicy(name string, coverage, premium float64) model.InsurancePolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := model.InsurancePolicy{ID: newID(), Name: name, Coverage: coverage, Premium: premium}
	s.state.Shield.InsurancePolicies = append(s.state.Shield.InsurancePolicies, p)
	s.notify()
	return p
}

func (s *Store) DeletePolicy(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps := s.state.Shield.InsurancePolicies
	for i := range ps {
		if ps[i].ID == id {
			s.state.Shield.InsurancePolicies = append(ps[:i], ps[i+1:]...)
			s.notify()
			return
		}
	}
}

func (s *Store) AddDebt(name string, amount, interest float64) model.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := model.Debt{ID: newID(), Name: name, Amount: amount, Interest: interest}
	s.state.Shield.Debts = append(s.state.Shield.Debts, d)
	s.notify()
	return d
}

func (s *Store) DeleteDebt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.state.Shield.Debts
	for i := range ds {
		if ds[i].ID == id {
			s.state.Shield.Debts = append(ds[:i], ds[i+1:]...)
			s.notify()
			return
		}
	}
}

// ========== 用户设置 ==========

// UserPatch 用户设置的部分更新。
// Avatar 传空字符串表示清除头像（线上格式里对应 null）
type UserPatch struct {
	Username     *string        `json:"username"`
	Avatar       *string        `json:"avatar"`
	Theme        *model.UITheme `json:"theme"`
	CRTEnabled   *bool          `json:"crtEnabled"`
	SoundEnabled *bool          `json:"soundEnabled"`
}

func (s *Store) UpdateUserSettings(patch UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	applied := false
	if patch.Username != nil {
		s.state.User.Username = *patch.Username
		applied = true
	}
	if patch.Avatar != nil {
		if *patch.Avatar == "" {
			s.state.User.Avatar = nil
		} else {
			avatar := *patch.Avatar
			s.state.User.Avatar = &avatar
		}
		applied = true
	}
	if patch.Theme != nil {
		s.state.User.Theme = *patch.Theme
		applied = true
	}
	if patch.CRTEnabled != nil {
		s.state.User.CRTEnabled = *patch.CRTEnabled
		applied = true
	}
	if patch.SoundEnabled != nil {
		s.state.User.SoundEnabled = *patch.SoundEnabled
		applied = true
	}
	if applied {
		s.notify()
	}
}

// UpdatePassword 轮换密码：存 bcrypt 摘要，并无条件清除出厂口令标记
func (s *Store) UpdatePassword(newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.PasswordHash = string(hash)
	s.state.User.IsDefaultPassword = false
	s.notify()
	return nil
}

// UpdateAISettings 整体替换 AI 配置
func (s *Store) UpdateAISettings(ai model.AISettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User.AI = ai
	s.notify()
}

// ToggleTheme 在两个主题之间切换，没有其它副作用
func (s *Store) ToggleTheme() model.UITheme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User.Theme == model.ThemeClassic {
		s.state.User.Theme = model.ThemeNeon
	} else {
		s.state.User.Theme = model.ThemeClassic
	}
	s.notify()
	return s.state.User.Theme
}

// ========== 整体替换 ==========

// Replace 导入成功后一步到位替换权威状态（校验在持久化层完成）
func (s *Store) Replace(state *model.GlobalState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.notify()
}

// Reset 恢复出厂状态
func (s *Store) Reset() {
	s.Replace(model.DefaultState())
}
