package controller

import (
	"errors"
	"strconv"

	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 当前用户信息
// @Tags 用户
// @Produce json
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.UserService.GetProfile(userID)
	if err != nil {
		writeUserError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateProfileRequest 资料更新请求
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Avatar   string `json:"avatar"`
}

// UpdateProfile godoc
// @Summary 更新当前用户资料
// @Tags 用户
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "资料"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(userID, req.Name, req.Language, req.Avatar)
	if err != nil {
		writeUserError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表
// @Tags 用户管理
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.PageResponse
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.ListUsers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// AdminUserUpdateRequest 管理端用户更新请求
type AdminUserUpdateRequest struct {
	Role     string `json:"role" binding:"omitempty,oneof=student teacher admin"`
	Disabled *bool  `json:"disabled"`
}

// AdminUpdateUser godoc
// @Summary 管理端更新用户
// @Description 修改角色或禁用状态
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param id path int true "用户 ID"
// @Param body body AdminUserUpdateRequest true "变更内容"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [put]
func (c *UserController) AdminUpdateUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	var req AdminUserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Role != "" {
		if err := c.UserService.SetRole(uint(id), model.UserRole(req.Role)); err != nil {
			writeUserError(ctx, err)
			return
		}
	}
	if req.Disabled != nil {
		if err := c.UserService.SetDisabled(uint(id), *req.Disabled); err != nil {
			writeUserError(ctx, err)
			return
		}
	}
	util.Success(ctx, nil)
}

func writeUserError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrUserNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
