package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/infrastructure/database"
	"github.com/kael37/PixelLedger/internal/store"
)

// 导入文档的体积上限，防御性截断
const maxImportSize = 16 << 20

// DataController 整体导出 / 导入 / 恢复出厂
type DataController struct {
	store *store.Store
}

func NewDataController(st *store.Store) *DataController {
	return &DataController{store: st}
}

// Export 导出完整状态文档，文件名带捕获时间戳
// @Summary 导出数据
// @Tags Data
// @Router /data/export [get]
func (ctrl *DataController) Export(c *gin.Context) {
	data, err := database.Export(ctrl.store.Snapshot())
	if err != nil {
		slog.Error("Export failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "导出失败")
		return
	}
	filename := fmt.Sprintf("pixel_ledger_export_%d.json", time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

// Import 校验通过后一步替换权威状态；任何非法文档都不会碰现有数据
// @Summary 导入数据
// @Tags Data
// @Router /data/import [post]
func (ctrl *DataController) Import(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "读取导入数据失败")
		return
	}

	state, err := database.ParseImport(data)
	if err != nil {
		slog.Warn("Import rejected", "err", err)
		if errors.Is(err, database.ErrBadImport) {
			response.Error(c, http.StatusBadRequest, "导入失败: "+err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, "导入失败")
		}
		return
	}

	ctrl.store.Replace(state)
	slog.Info("State imported", "blocks", len(state.Blocks), "logs", len(state.Logs))
	response.Success(c, nil)
}

// Reset 恢复出厂状态
func (ctrl *DataController) Reset(c *gin.Context) {
	ctrl.store.Reset()
	slog.Info("State reset to factory defaults")
	response.Success(c, nil)
}
