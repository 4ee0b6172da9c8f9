package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ManagerController struct {
	ScoringService *service.ScoringService
}

func NewManagerController(scoringService *service.ScoringService) *ManagerController {
	return &ManagerController{ScoringService: scoringService}
}

// GetTeamMetrics godoc
// @Summary 团队成员指标
// @Description 经理查看本团队成员的分数、七日增量、登录活跃与完成率，按当前分数降序
// @Tags 经理
// @Produce  json
// @Success 200 {object} util.Response{data=service.TeamMetrics}
// @Failure 403 {object} util.Response "非经理角色"
// @Router /api/manager/metrics [get]
func (c *ManagerController) GetTeamMetrics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	metrics, err := c.ScoringService.TeamMetrics(user.TeamID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, metrics)
}
