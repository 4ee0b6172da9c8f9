package controller

import (
	"errors"
	"strconv"

	"training_portal_backend/internal/model"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserService   *service.UserService
	ImportService *service.ImportService
}

func NewAdminController(userService *service.UserService, importService *service.ImportService) *AdminController {
	return &AdminController{UserService: userService, ImportService: importService}
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.UserView}
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserService.ListUsers()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, users)
}

// CreateUserRequest 新建用户
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=employee manager admin"`
	TeamID   uint   `json:"teamId" binding:"required"`
	Password string `json:"password"`
	JobTitle string `json:"jobTitle"`
}

// CreateUser godoc
// @Summary 新建用户
// @Tags 管理
// @Accept  json
// @Produce  json
// @Param   body body CreateUserRequest true "用户信息"
// @Success 201 {object} util.Response{data=service.UserView}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.UserService.CreateUser(service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     model.UserRole(req.Role),
		TeamID:   req.TeamID,
		Password: req.Password,
		JobTitle: req.JobTitle,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.Conflict(ctx, "该邮箱已被注册")
		case errors.Is(err, util.ErrTeamNotFound):
			util.BadRequest(ctx, "team not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, view)
}

// UpdateUser godoc
// @Summary 更新用户
// @Description 只更新请求体里出现的字段，可用于调岗、改角色或停用账号
// @Tags 管理
// @Accept  json
// @Produce  json
// @Param   id path int true "用户 ID"
// @Param   body body service.UpdateUserInput true "要更新的字段"
// @Success 200 {object} util.Response{data=service.UserView}
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var input service.UpdateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.UserService.UpdateUser(uint(userID), input)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// DeleteUser godoc
// @Summary 删除用户
// @Description 连带删除其答卷、会话和观看进度
// @Tags 管理
// @Produce  json
// @Param   id path int true "用户 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	if err := c.UserService.DeleteUser(uint(userID)); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListTeams godoc
// @Summary 团队列表
// @Tags 管理
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Team}
// @Router /api/admin/teams [get]
func (c *AdminController) ListTeams(ctx *gin.Context) {
	teams, err := c.UserService.ListTeams()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, teams)
}

// TeamRequest 新建/改名团队
type TeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateTeam godoc
// @Summary 新建团队
// @Tags 管理
// @Accept  json
// @Produce  json
// @Param   body body TeamRequest true "团队名"
// @Success 201 {object} util.Response{data=model.Team}
// @Router /api/admin/teams [post]
func (c *AdminController) CreateTeam(ctx *gin.Context) {
	var req TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.UserService.CreateTeam(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, team)
}

// UpdateTeam godoc
// @Summary 团队改名
// @Tags 管理
// @Accept  json
// @Produce  json
// @Param   id path int true "团队 ID"
// @Param   body body TeamRequest true "新团队名"
// @Success 200 {object} util.Response{data=model.Team}
// @Router /api/admin/teams/{id} [put]
func (c *AdminController) UpdateTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	var req TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	team, err := c.UserService.UpdateTeam(uint(teamID), req.Name)
	if err != nil {
		if errors.Is(err, util.ErrTeamNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, team)
}

// DeleteTeam godoc
// @Summary 删除团队
// @Description 仍有成员的团队不允许删除
// @Tags 管理
// @Produce  json
// @Param   id path int true "团队 ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "团队非空"
// @Router /api/admin/teams/{id} [delete]
func (c *AdminController) DeleteTeam(ctx *gin.Context) {
	teamID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid team id")
		return
	}

	if err := c.UserService.DeleteTeam(uint(teamID)); err != nil {
		switch {
		case errors.Is(err, util.ErrTeamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTeamNotEmpty):
			util.Conflict(ctx, "团队仍有成员，不能删除")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ImportUsers godoc
// @Summary CSV 批量导入用户
// @Description 接收 AD 导出的 CSV，逐行 upsert，原始文件归档到对象存储
// @Tags 管理
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "CSV 文件"
// @Success 200 {object} util.Response{data=service.ImportReport}
// @Failure 400 {object} util.Response "文件缺失或为空"
// @Router /api/admin/import [post]
func (c *AdminController) ImportUsers(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	report, err := c.ImportService.ImportUsers(file, fileHeader.Filename)
	if err != nil {
		if errors.Is(err, util.ErrEmptyImport) {
			util.BadRequest(ctx, "导入文件没有数据行")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
