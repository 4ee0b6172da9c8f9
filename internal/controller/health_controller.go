package controller

import (
	"net/http"

	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Content *service.ContentService
}

func NewHealthController(db *gorm.DB, content *service.ContentService) *HealthController {
	return &HealthController{DB: db, Content: content}
}

// @Summary 健康检查
// @Description 检查数据库连接和培训目录加载状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"catalog":  gin.H{"videos": c.Content.VideoCount()},
		},
	})
}
