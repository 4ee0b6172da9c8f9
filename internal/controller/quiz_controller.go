package controller

import (
	"errors"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	ScoringService *service.ScoringService
}

func NewQuizController(scoringService *service.ScoringService) *QuizController {
	return &QuizController{ScoringService: scoringService}
}

// SubmitRequest 测验提交。答案记录首次选择和最终选择两个下标，
// 评分只认最终选择，首试加分额外要求首次选择也正确。
type SubmitRequest struct {
	VideoID string                   `json:"videoId" binding:"required"`
	Answers []model.AnswerSubmission `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交测验答卷
// @Description 服务端按标准答案评分入库，重复的尝试序号返回 409
// @Tags 测验
// @Accept  json
// @Produce  json
// @Param   body body SubmitRequest true "答卷"
// @Success 201 {object} util.Response{data=service.SubmitResult} "评分结果"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "测验不存在"
// @Failure 409 {object} util.Response "该次尝试已被记录"
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	result, err := c.ScoringService.SubmitAttempt(user.UserID, req.VideoID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptConflict):
			monitoring.AttemptConflictCounter.Inc()
			util.Conflict(ctx, "attempt already recorded")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// History godoc
// @Summary 某视频的历史答卷
// @Description 当前用户在该视频上的全部尝试和最高分一次
// @Tags 测验
// @Produce  json
// @Param   videoId path string true "视频 ID"
// @Success 200 {object} util.Response{data=service.AttemptHistory}
// @Router /api/quiz/{videoId}/attempts [get]
func (c *QuizController) History(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	history, err := c.ScoringService.AttemptHistory(user.UserID, ctx.Param("videoId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
