package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/store"
)

// SnapshotController 哈希日志账本：手动 sync 与历史查询
type SnapshotController struct {
	store *store.Store
}

func NewSnapshotController(st *store.Store) *SnapshotController {
	return &SnapshotController{store: st}
}

type SyncRequest struct {
	Memo string `json:"memo"`
}

// Sync 立刻生成一条快照记录
// @Summary 手动同步快照
// @Description 按 流动资产+投资市值 口径记账，满 100 条淘汰最旧
// @Tags Logs
// @Router /sync [post]
func (ctrl *SnapshotController) Sync(c *gin.Context) {
	var req SyncRequest
	// memo 可选：不带 body 的 POST /sync 等价于空备注
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "参数格式错误")
		return
	}
	log := ctrl.store.TakeSnapshot(req.Memo)
	slog.Info("Snapshot taken", "id", log.ID, "total", log.TotalAssets, "delta", log.Delta)
	response.Success(c, log)
}

// List 返回全部历史记录，最新在前
func (ctrl *SnapshotController) List(c *gin.Context) {
	response.Success(c, ctrl.store.Snapshot().Logs)
}
