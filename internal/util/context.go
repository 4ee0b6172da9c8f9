package util

import (
	"training_portal_backend/internal/model"

	"github.com/gin-gonic/gin"
)

// AuthUser 会话解析后写入请求上下文的当前用户
type AuthUser struct {
	UserID     uint           `json:"userId"`
	ExternalID string         `json:"externalId"`
	Name       string         `json:"name"`
	Role       model.UserRole `json:"role"`
	TeamID     uint           `json:"teamId"`
	SessionID  string         `json:"-"`
}

func GetUserFromContext(c *gin.Context) *AuthUser {
	user, exists := c.Get("user")
	if !exists {
		return nil
	}
	authUser, ok := user.(*AuthUser)
	if !ok {
		return nil
	}
	return authUser
}
