package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/service"
	"github.com/kael37/PixelLedger/internal/store"
)

// AdvisorController AI 财务顾问
type AdvisorController struct {
	store   *store.Store
	advisor *service.AdvisorService
}

func NewAdvisorController(st *store.Store, advisor *service.AdvisorService) *AdvisorController {
	return &AdvisorController{store: st, advisor: advisor}
}

// Analyze 基于当前状态快照生成一段分析报告。
// 顾问只读快照，和并发中的用户编辑互不干扰；失败折叠成占位文案，永远 200
// @Summary AI 分析
// @Tags Advisor
// @Router /advisor/analyze [post]
func (ctrl *AdvisorController) Analyze(c *gin.Context) {
	report := ctrl.advisor.Analyze(c.Request.Context(), ctrl.store.Snapshot())
	response.Success(c, gin.H{"report": report})
}
