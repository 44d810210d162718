package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api"
	"github.com/kael37/PixelLedger/internal/api/controller"
	"github.com/kael37/PixelLedger/internal/config"
	"github.com/kael37/PixelLedger/internal/infrastructure/database"
	"github.com/kael37/PixelLedger/internal/scheduler"
	"github.com/kael37/PixelLedger/internal/service"
	"github.com/kael37/PixelLedger/internal/store"
)

func main() {
	// 1. 初始化 Logger
	// JSONHandler 方便日志采集侧解析；AddSource 带上文件名和行号
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug, // 生产环境改为 Info
	}))
	slog.SetDefault(logger)

	slog.Info("PixelLedger 系统启动中...")

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 2. Infra Initialization
	db, err := database.NewSQLiteStore(conf.Storage.Path)
	if err != nil {
		log.Fatalf("无法打开持久层: %v", err)
	}
	defer db.Close()

	// 3. 状态加载：有历史数据用历史数据，没有落出厂状态；
	//    文档损坏必须直接崩盘退出，绝不带着半个状态起服务
	state, err := db.Load()
	if err != nil {
		log.Fatalf("持久化文档损坏，拒绝启动: %v", err)
	}
	if state == nil {
		slog.Info("未发现历史数据，使用出厂状态")
	}
	st := store.New(state)

	// 4. 持久化任务：消费变更信号，变更路径本身不做 I/O
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 持久化任务用独立的 context：必须等 HTTP 完全关停、
	// 在途请求都落完变更之后才允许它做最终落盘退出
	persisterCtx, persisterStop := context.WithCancel(context.Background())
	persister := service.NewPersister(st, db)
	persisterDone := make(chan struct{})
	go func() {
		defer close(persisterDone)
		persister.Run(persisterCtx)
	}()

	// 5. 可选的自动快照
	if conf.Snapshot.Cron != "" {
		sched := scheduler.New(st, conf.Snapshot.Memo)
		if err := sched.Register(conf.Snapshot.Cron); err != nil {
			log.Fatalf("自动快照配置非法: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	if conf.Server.Port != ":8080" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 6. Layer Wiring (依赖注入)
	authSvc := service.NewAuthService(st)
	advisorSvc := service.NewAdvisorService(nil)

	r := gin.Default()
	api.RegisterRoutes(r, api.Controllers{
		Auth:     controller.NewAuthController(authSvc),
		Asset:    controller.NewAssetController(st),
		Shield:   controller.NewShieldController(st),
		Snapshot: controller.NewSnapshotController(st),
		User:     controller.NewUserController(st),
		Data:     controller.NewDataController(st),
		Advisor:  controller.NewAdvisorController(st, advisorSvc),
	})

	// 7. Server Start
	// 收到信号后先优雅关停 HTTP，再等持久化任务做完最后一次落盘。
	// 顺序不能反：服务还在收请求时持久化任务必须活着
	srv := &http.Server{Addr: conf.Server.Port, Handler: r}
	go func() {
		slog.Info("PixelLedger Web Server 启动中", "port", conf.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("服务器启动失败", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("收到退出信号，正在关停...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP 关停失败", "error", err)
	}
	persisterStop()
	<-persisterDone
}
