package store

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/kael37/PixelLedger/internal/aggregate"
	"github.com/kael37/PixelLedger/internal/model"
)

// newLogID 生成快照记录专用的 0x 前缀 ID。
// 取 v7 UUID 的前 8 字节（毫秒时间戳 + 随机位），与实体 ID 的格式刻意不同
func newLogID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return "0x" + hex.EncodeToString(id[:8])
}

// TakeSnapshot 追加一条哈希日志（同步记录）。
//
// 账本口径固定为 流动资产 + 投资总市值，不含矿井和负债 —— 这是历史增量
// 一直沿用的算法，和 NetWorth 是两个独立命名的计算，不能合并。
// Delta 相对上一条记录计算，账本为空时等于本次总额。
// 记录内嵌资产方块的深拷贝，之后改方块不会影响已有历史。
// 账本按最新在前排序，满 100 条后无条件淘汰最旧的。
func (s *Store) TakeSnapshot(memo string) model.HashLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := aggregate.LiquidTotal(s.state) + aggregate.InvestmentTotal(s.state)
	delta := total
	if len(s.state.Logs) > 0 {
		delta = total - s.state.Logs[0].TotalAssets
	}

	log := model.HashLog{
		ID:          newLogID(),
		Timestamp:   time.Now().UnixMilli(),
		TotalAssets: total,
		Delta:       delta,
		Memo:        memo,
		Snapshot:    model.CloneBlocks(s.state.Blocks),
	}

	s.state.Logs = append([]model.HashLog{log}, s.state.Logs...)
	if len(s.state.Logs) > model.MaxHashLogs {
		s.state.Logs = s.state.Logs[:model.MaxHashLogs]
	}
	s.notify()
	return log
}
