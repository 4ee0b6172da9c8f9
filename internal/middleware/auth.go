package middleware

import (
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionResolver 把 Cookie 里的会话 ID 换成当前用户；过期会话视同不存在
type SessionResolver interface {
	ResolveSession(sessionID string) (*util.AuthUser, error)
}

func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(util.SessionCookie)
		if err != nil || sid == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := sessions.ResolveSession(sid)
		if err != nil {
			// 过期的 Cookie 顺手清掉，省得客户端反复带过来
			c.SetCookie(util.SessionCookie, "", -1, "/", "", false, true)
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			// 管理员拥有全部权限，直接放行
			if user.Role == model.Admin {
				hasRole = true
				break
			}
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastSeen(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user != nil {
			// 异步更新，不阻塞主流程
			go repo.UpdateLastSeen(user.UserID)
		}
		c.Next()
	}
}
