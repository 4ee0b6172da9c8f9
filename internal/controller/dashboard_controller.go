package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	ScoringService *service.ScoringService
}

func NewDashboardController(scoringService *service.ScoringService) *DashboardController {
	return &DashboardController{ScoringService: scoringService}
}

// GetKpis godoc
// @Summary 个人仪表盘指标
// @Description 总分、完成数、正确率、连续登录、全员排名、百分位、等级与前十榜
// @Tags 仪表盘
// @Produce  json
// @Success 200 {object} util.Response{data=service.PersonalKpis}
// @Failure 401 {object} util.Response "未登录"
// @Router /api/dashboard/kpis [get]
func (c *DashboardController) GetKpis(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	kpis, err := c.ScoringService.PersonalKpis(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, kpis)
}
