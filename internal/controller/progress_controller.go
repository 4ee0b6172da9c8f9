package controller

import (
	"errors"

	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	ContentService  *service.ContentService
}

func NewProgressController(progressService *service.ProgressService, contentService *service.ContentService) *ProgressController {
	return &ProgressController{ProgressService: progressService, ContentService: contentService}
}

// GetCatalog godoc
// @Summary 培训目录
// @Description 完整的步骤/主题/视频结构，含测验题干但不含答案下标
// @Tags 进度
// @Produce  json
// @Success 200 {object} util.Response{data=model.PublicTrainingData}
// @Router /api/training [get]
func (c *ProgressController) GetCatalog(ctx *gin.Context) {
	util.Success(ctx, c.ContentService.Training().Sanitized())
}

// GetProgress godoc
// @Summary 我的观看进度
// @Tags 进度
// @Produce  json
// @Success 200 {object} util.Response{data=map[string]service.VideoProgressView}
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.GetProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// ProgressRequest 标记观看完成/未完成
type ProgressRequest struct {
	VideoID string `json:"videoId" binding:"required"`
	Done    *bool  `json:"done" binding:"required"`
}

// SetProgress godoc
// @Summary 更新观看进度
// @Tags 进度
// @Accept  json
// @Produce  json
// @Param   body body ProgressRequest true "进度"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "视频不存在"
// @Router /api/progress [post]
func (c *ProgressController) SetProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if _, err := c.ProgressService.SetProgress(user.UserID, req.VideoID, *req.Done); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
