package service

import (
	"context"
	"log/slog"

	"github.com/kael37/PixelLedger/internal/infrastructure/database"
	"github.com/kael37/PixelLedger/internal/store"
)

// Persister 消费 store 的变更信号，把整个状态写入持久层。
// 变更路径因此不碰 I/O；写盘失败只记日志不中断服务，
// 下一次变更会带着完整状态重试（永远整体覆盖，不存在半个状态落盘）
type Persister struct {
	store *store.Store
	db    *database.SQLiteStore
}

func NewPersister(st *store.Store, db *database.SQLiteStore) *Persister {
	return &Persister{store: st, db: db}
}

// Run 阻塞运行直到 ctx 取消，退出前做最后一次落盘
func (p *Persister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.flush()
			return
		case <-p.store.Changes():
			p.flush()
		}
	}
}

func (p *Persister) flush() {
	if err := p.db.Save(p.store.Snapshot()); err != nil {
		slog.Error("状态落盘失败", "err", err)
	}
}
