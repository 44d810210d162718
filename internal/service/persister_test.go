package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kael37/PixelLedger/internal/infrastructure/database"
	"github.com/kael37/PixelLedger/internal/model"
	"github.com/kael37/PixelLedger/internal/store"
)

func TestPersisterFlushesOnShutdown(t *testing.T) {
	db, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "pixel_ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer db.Close()

	st := store.New(nil)
	st.AddBlock("现金", model.AssetCash, 1000, "💰")

	// ctx 已取消：Run 走退出路径，退出前必须做最后一次落盘
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewPersister(st, db).Run(ctx)

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || len(loaded.Blocks) != 1 || loaded.Blocks[0].Balance != 1000 {
		t.Errorf("final flush missing: %+v", loaded)
	}
}

// 关停顺序契约：HTTP 在途请求排空期间产生的变更，
// 必须等落盘任务最后一次 flush 捕获后它才能退出
func TestPersisterCapturesMutationsUntilStopped(t *testing.T) {
	db, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "pixel_ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer db.Close()

	st := store.New(nil)
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		NewPersister(st, db).Run(ctx)
	}()

	st.AddBlock("现金", model.AssetCash, 1000, "💰")
	// 模拟收到退出信号后仍在排空的在途请求
	st.AddDebt("信用卡", 2000, 18)

	cancel()
	<-done

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || len(loaded.Blocks) != 1 {
		t.Fatalf("pre-drain mutation lost: %+v", loaded)
	}
	if len(loaded.Shield.Debts) != 1 || loaded.Shield.Debts[0].Amount != 2000 {
		t.Errorf("in-flight mutation lost: %+v", loaded.Shield)
	}
}

func TestPersisterWritesOnChangeSignal(t *testing.T) {
	db, err := database.NewSQLiteStore(filepath.Join(t.TempDir(), "pixel_ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer db.Close()

	st := store.New(nil)
	p := NewPersister(st, db)

	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	st.AddMine("养老金", model.MinePension, 100, 10000, 500)
	cancel()
	<-done

	loaded, err := db.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil || len(loaded.Mines) != 1 || loaded.Mines[0].Name != "养老金" {
		t.Errorf("change not persisted: %+v", loaded)
	}
}
