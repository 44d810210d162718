package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kael37/PixelLedger/internal/api/response"
	"github.com/kael37/PixelLedger/internal/service"
)

// AuthController 处理登录与密码轮换
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	// IsDefault 为 true 时前端必须强制跳到改密页
	IsDefault bool `json:"isDefaultPassword"`
}

type RotatePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=4"`
}

// Login 口令登录
// @Summary 口令登录
// @Description 校验口令，颁发 JWT Token；出厂口令期间额外接受 8888/admin
// @Tags Auth
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数格式错误")
		return
	}

	token, isDefault, err := ctrl.authService.Login(req.Password)
	if err != nil {
		slog.Warn("Login failed")
		// 为了防止暴力破解，提示信息模糊化
		response.Error(c, http.StatusUnauthorized, "登录失败: 口令错误")
		return
	}

	slog.Info("User logged in", "default_password", isDefault)
	response.Success(c, LoginResponse{Token: token, IsDefault: isDefault})
}

// RotatePassword 修改口令
// @Summary 修改口令
// @Description 设置新口令并关闭出厂口令通道
// @Tags Auth
// @Router /user/password [post]
func (ctrl *AuthController) RotatePassword(c *gin.Context) {
	var req RotatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "参数校验失败: "+err.Error())
		return
	}

	if err := ctrl.authService.RotatePassword(req.NewPassword); err != nil {
		slog.Error("Rotate password failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "口令更新失败")
		return
	}

	slog.Info("Password rotated")
	response.Success(c, nil)
}
