package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/model"
	"github.com/kael37/PixelLedger/internal/store"
)

// UserController 用户设置与 AI 接入配置
type UserController struct {
	store *store.Store
}

func NewUserController(st *store.Store) *UserController {
	return &UserController{store: st}
}

func (ctrl *UserController) Get(c *gin.Context) {
	user := ctrl.store.Snapshot().User
	user.PasswordHash = "" // 摘要不出门
	response.Success(c, user)
}

// Patch 设置项的字段级合并更新；avatar 传空串表示清除
func (ctrl *UserController) Patch(c *gin.Context) {
	var patch store.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateUserSettings(patch)
	response.Success(c, nil)
}

// ToggleTheme 在 CLASSIC / NEON 之间切换
func (ctrl *UserController) ToggleTheme(c *gin.Context) {
	theme := ctrl.store.ToggleTheme()
	response.Success(c, gin.H{"theme": theme})
}

type UpdateAIRequest struct {
	Provider model.AIProvider `json:"provider" binding:"required"`
	APIKey   string           `json:"apiKey"`
	BaseURL  string           `json:"baseUrl"`
	Model    string           `json:"model"`
}

// UpdateAI 整体替换 AI 顾问配置
func (ctrl *UserController) UpdateAI(c *gin.Context) {
	var req UpdateAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}
	ctrl.store.UpdateAISettings(model.AISettings{
		Provider: req.Provider,
		APIKey:   req.APIKey,
		BaseURL:  req.BaseURL,
		Model:    req.Model,
	})
	response.Success(c, nil)
}
