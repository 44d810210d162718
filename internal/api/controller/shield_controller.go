package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/aggregate"
	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/model"
	"github.com/kael37/PixelLedger/internal/store"
)

// ShieldController 护盾仓（应急金、保单、负债）
type ShieldController struct {
	store *store.Store
}

func NewShieldController(st *store.Store) *ShieldController {
	return &ShieldController{store: st}
}

// ShieldView 护盾数据带上完整度与风险比率
type ShieldView struct {
	model.ShieldVault
	IntegrityPct float64 `json:"integrityPct"`
	RiskRatioPct float64 `json:"riskRatioPct"`
}

func (ctrl *ShieldController) Get(c *gin.Context) {
	s := ctrl.store.Snapshot()
	response.Success(c, ShieldView{
		ShieldVault:  s.Shield,
		IntegrityPct: aggregate.ShieldIntegrityPct(s),
		RiskRatioPct: aggregate.RiskRatioPct(s),
	})
}

// Patch 应急金/目标的字段级合并更新
func (ctrl *ShieldController) Patch(c *gin.Context) {
	var patch store.ShieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateShield(patch)
	response.Success(c, nil)
}

type AddPolicyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Coverage float64 `json:"coverage"`
	Premium  float64 `json:"premium"`
}

func (ctrl *ShieldController) AddPolicy(c *gin.Context) {
	var req AddPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	response.Success(c, ctrl.store.AddPolicy(req.Name, req.Coverage, req.Premium))
}

func (ctrl *ShieldController) DeletePolicy(c *gin.Context) {
	ctrl.store.DeletePolicy(c.Param("id"))
	response.Success(c, nil)
}

type AddDebtRequest struct {
	Name     string  `json:"name" binding:"required"`
	Amount   float64 `json:"amount"`
	Interest float64 `json:"interest"`
}

func (ctrl *ShieldController) AddDebt(c *gin.Context) {
	var req AddDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	response.Success(c, ctrl.store.AddDebt(req.Name, req.Amount, req.Interest))
}

func (ctrl *ShieldController) DeleteDebt(c *gin.Context) {
	ctrl.store.DeleteDebt(c.Param("id"))
	response.Success(c, nil)
}
