package controller

import (
	"errors"
	"net/http"

	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool // 是否为生产环境
}

func NewAuthController(authService *service.AuthService, isRelease bool) *AuthController {
	return &AuthController{AuthService: authService, IsRelease: isRelease}
}

// LoginRequest 本地账号密码登录
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary 账号密码登录
// @Description 校验凭据并种下会话 Cookie
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "登录凭据"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "凭据无效"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, session, err := c.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) || errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	c.setSessionCookie(ctx, session.ID)
	util.Success(ctx, gin.H{
		"id":   user.ExternalID,
		"name": user.Name,
		"role": user.Role,
	})
}

// SSOCallback godoc
// @Summary SSO 回调登录
// @Description 验证身份提供方签发的令牌，首次登录自动建档
// @Tags 认证
// @Produce  json
// @Param   token query string true "HS256 签名的身份令牌"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 401 {object} util.Response "令牌无效或已过期"
// @Router /api/auth/sso-callback [get]
func (c *AuthController) SSOCallback(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		util.BadRequest(ctx, "token is required")
		return
	}

	user, session, err := c.AuthService.SSOLogin(token)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	c.setSessionCookie(ctx, session.ID)
	util.Success(ctx, gin.H{
		"id":   user.ExternalID,
		"name": user.Name,
		"role": user.Role,
	})
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response "已退出"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if user := util.GetUserFromContext(ctx); user != nil {
		if err := c.AuthService.Logout(user.SessionID); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}
	ctx.SetCookie(util.SessionCookie, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, nil)
}

// Me godoc
// @Summary 当前登录用户
// @Tags 认证
// @Produce  json
// @Success 200 {object} util.Response{data=util.AuthUser}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	util.Success(ctx, util.GetUserFromContext(ctx))
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, sessionID string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(util.SessionCookie, sessionID, int(util.SessionMaxAge.Seconds()), "/", "", c.IsRelease, true)
}
