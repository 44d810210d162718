package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/controller"
	"github.com/kael37/PixelLedger/internal/api/middleware"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Auth     *controller.AuthController
	Asset    *controller.AssetController
	Shield   *controller.ShieldController
	Snapshot *controller.SnapshotController
	User     *controller.UserController
	Data     *controller.DataController
	Advisor  *controller.AdvisorController
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, ctrls Controllers) {
	r.Use(middleware.Cors())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1/auth")
	{
		public.POST("/login", ctrls.Auth.Login)
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		protected.GET("/state", ctrls.Asset.State)
		protected.GET("/dashboard", ctrls.Asset.Dashboard)

		protected.GET("/blocks", ctrls.Asset.ListBlocks)
		protected.POST("/blocks", ctrls.Asset.AddBlock)
		protected.PUT("/blocks/:id/balance", ctrls.Asset.UpdateBlockBalance)
		protected.DELETE("/blocks/:id", ctrls.Asset.DeleteBlock)

		protected.GET("/mines", ctrls.Asset.ListMines)
		protected.POST("/mines", ctrls.Asset.AddMine)
		protected.PUT("/mines/:id/amount", ctrls.Asset.UpdateMineAmount)
		protected.DELETE("/mines/:id", ctrls.Asset.DeleteMine)

		protected.GET("/pit", ctrls.Asset.ListInvestments)
		protected.POST("/pit", ctrls.Asset.AddInvestment)
		protected.PUT("/pit/:id/value", ctrls.Asset.UpdateInvestmentValue)
		protected.DELETE("/pit/:id", ctrls.Asset.DeleteInvestment)

		protected.GET("/shield", ctrls.Shield.Get)
		protected.PATCH("/shield", ctrls.Shield.Patch)
		protected.POST("/shield/policies", ctrls.Shield.AddPolicy)
		protected.DELETE("/shield/policies/:id", ctrls.Shield.DeletePolicy)
		protected.POST("/shield/debts", ctrls.Shield.AddDebt)
		protected.DELETE("/shield/debts/:id", ctrls.Shield.DeleteDebt)

		protected.POST("/sync", ctrls.Snapshot.Sync)
		protected.GET("/logs", ctrls.Snapshot.List)

		protected.GET("/user", ctrls.User.Get)
		protected.PATCH("/user", ctrls.User.Patch)
		protected.POST("/user/theme/toggle", ctrls.User.ToggleTheme)
		protected.PUT("/user/ai", ctrls.User.UpdateAI)
		protected.POST("/user/password", ctrls.Auth.RotatePassword)

		protected.GET("/data/export", ctrls.Data.Export)
		protected.POST("/data/import", ctrls.Data.Import)
		protected.POST("/data/reset", ctrls.Data.Reset)

		protected.POST("/advisor/analyze", ctrls.Advisor.Analyze)
	}
}
