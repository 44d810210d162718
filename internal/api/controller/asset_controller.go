package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/aggregate"
	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/model"
	"github.com/kael37/PixelLedger/internal/store"
)

// AssetController 资产方块、未来矿井、交易池的读写入口
type AssetController struct {
	store *store.Store
}

func NewAssetController(st *store.Store) *AssetController {
	return &AssetController{store: st}
}

// DashboardResponse 仪表盘聚合指标
type DashboardResponse struct {
	LiquidTotal        float64                `json:"liquidTotal"`
	InvestmentTotal    float64                `json:"investmentTotal"`
	MineTotal          float64                `json:"mineTotal"`
	DebtTotal          float64                `json:"debtTotal"`
	NetWorth           float64                `json:"netWorth"`
	ShieldIntegrityPct float64                `json:"shieldIntegrityPct"`
	RiskRatioPct       float64                `json:"riskRatioPct"`
	ProfitByType       []aggregate.TypeProfit `json:"profitByType"`
}

// State 返回完整状态快照（密码摘要抹掉再出门）
func (ctrl *AssetController) State(c *gin.Context) {
	s := ctrl.store.Snapshot()
	s.User.PasswordHash = ""
	response.Success(c, s)
}

// Dashboard 返回全部派生指标，每次读取实时重算
func (ctrl *AssetController) Dashboard(c *gin.Context) {
	s := ctrl.store.Snapshot()
	response.Success(c, DashboardResponse{
		LiquidTotal:        aggregate.LiquidTotal(s),
		InvestmentTotal:    aggregate.InvestmentTotal(s),
		MineTotal:          aggregate.MineTotal(s),
		DebtTotal:          aggregate.DebtTotal(s),
		NetWorth:           aggregate.NetWorth(s),
		ShieldIntegrityPct: aggregate.ShieldIntegrityPct(s),
		RiskRatioPct:       aggregate.RiskRatioPct(s),
		ProfitByType:       aggregate.ProfitByType(s),
	})
}

// ========== 资产方块 ==========

type AddBlockRequest struct {
	Name    string          `json:"name" binding:"required"`
	Type    model.AssetType `json:"type" binding:"required"`
	Balance float64         `json:"balance"`
	Icon    string          `json:"icon"`
}

type UpdateBalanceRequest struct {
	Balance *float64 `json:"balance" binding:"required"`
}

func (ctrl *AssetController) ListBlocks(c *gin.Context) {
	response.Success(c, ctrl.store.Snapshot().Blocks)
}

// AddBlock 新增资产方块
// @Summary 新增资产方块
// @Tags Blocks
// @Router /blocks [post]
func (ctrl *AssetController) AddBlock(c *gin.Context) {
	var req AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	b := ctrl.store.AddBlock(req.Name, req.Type, req.Balance, req.Icon)
	slog.Info("Block added", "id", b.ID, "type", b.Type)
	response.Success(c, b)
}

// UpdateBlockBalance 只更新余额；ID 不存在时静默成功（no-op 语义）
func (ctrl *AssetController) UpdateBlockBalance(c *gin.Context) {
	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateBlockBalance(c.Param("id"), *req.Balance)
	response.Success(c, nil)
}

func (ctrl *AssetController) DeleteBlock(c *gin.Context) {
	ctrl.store.DeleteBlock(c.Param("id"))
	response.Success(c, nil)
}

// ========== 未来矿井 ==========

type AddMineRequest struct {
	Name                string         `json:"name" binding:"required"`
	Type                model.MineType `json:"type" binding:"required"`
	CurrentAmount       float64        `json:"currentAmount"`
	TargetAmount        float64        `json:"targetAmount"`
	MonthlyContribution float64        `json:"monthlyContribution"`
}

type UpdateAmountRequest struct {
	CurrentAmount *float64 `json:"currentAmount" binding:"required"`
}

// MineView 矿井附带进度百分比返回
type MineView struct {
	model.FutureMine
	ProgressPct float64 `json:"progressPct"`
}

func (ctrl *AssetController) ListMines(c *gin.Context) {
	s := ctrl.store.Snapshot()
	views := make([]MineView, len(s.Mines))
	for i, m := range s.Mines {
		views[i] = MineView{FutureMine: m, ProgressPct: aggregate.MineProgressPct(m)}
	}
	response.Success(c, views)
}

func (ctrl *AssetController) AddMine(c *gin.Context) {
	var req AddMineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	m := ctrl.store.AddMine(req.Name, req.Type, req.CurrentAmount, req.TargetAmount, req.MonthlyContribution)
	slog.Info("Mine added", "id", m.ID, "type", m.Type)
	response.Success(c, m)
}

func (ctrl *AssetController) UpdateMineAmount(c *gin.Context) {
	var req UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateMineAmount(c.Param("id"), *req.CurrentAmount)
	response.Success(c, nil)
}

func (ctrl *AssetController) DeleteMine(c *gin.Context) {
	ctrl.store.DeleteMine(c.Param("id"))
	response.Success(c, nil)
}

// ========== 交易池 ==========

type AddInvestmentRequest struct {
	Name         string               `json:"name" binding:"required"`
	Code         string               `json:"code"`
	BuyDate      string               `json:"buyDate"`
	Cost         float64              `json:"cost"`
	Quantity     float64              `json:"quantity"`
	CurrentValue float64              `json:"currentValue"`
	Type         model.InvestmentType `json:"type" binding:"required"`
}

type UpdateValueRequest struct {
	CurrentValue *float64 `json:"currentValue" binding:"required"`
}

func (ctrl *AssetController) ListInvestments(c *gin.Context) {
	response.Success(c, ctrl.store.Snapshot().TradingPit)
}

func (ctrl *AssetController) AddInvestment(c *gin.Context) {
	var req AddInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	inv := ctrl.store.AddInvestment(model.Investment{
		Name:         req.Name,
		Code:         req.Code,
		BuyDate:      req.BuyDate,
		Cost:         req.Cost,
		Quantity:     req.Quantity,
		CurrentValue: req.CurrentValue,
		Type:         req.Type,
	})
	slog.Info("Investment added", "id", inv.ID, "code", inv.Code)
	response.Success(c, inv)
}

// UpdateInvestmentValue 行情刷新：只改市值单价
func (ctrl *AssetController) UpdateInvestmentValue(c *gin.Context) {
	var req UpdateValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateInvestmentValue(c.Param("id"), *req.CurrentValue)
	response.Success(c, nil)
}

func (ctrl *AssetController) DeleteInvestment(c *gin.Context) {
	ctrl.store.DeleteInvestment(c.Param("id"))
	response.Success(c, nil)
}
