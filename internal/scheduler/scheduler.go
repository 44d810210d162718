// Package scheduler 可选的定时自动快照。
// 配置 snapshot.cron 为空时整个模块不启动，手动 sync 不受影响。
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/kael37/PixelLedger/internal/store"
)

type Scheduler struct {
	cron  *cron.Cron
	store *store.Store
	memo  string
}

func New(st *store.Store, memo string) *Scheduler {
	if memo == "" {
		memo = "AUTO_SYNC"
	}
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		store: st,
		memo:  memo,
	}
}

// Register 注册自动快照任务
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.autoSnapshot); err != nil {
		return fmt.Errorf("register auto snapshot: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("自动快照调度已启动")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("自动快照调度已停止")
}

func (s *Scheduler) autoSnapshot() {
	log := s.store.TakeSnapshot(s.memo)
	slog.Info("自动快照完成", "id", log.ID, "total", log.TotalAssets, "delta", log.Delta)
}
