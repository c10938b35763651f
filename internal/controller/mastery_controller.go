package controller

import (
	"errors"

	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MasteryController struct {
	MasteryService *service.MasteryService
}

func NewMasteryController(masteryService *service.MasteryService) *MasteryController {
	return &MasteryController{MasteryService: masteryService}
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return claims.UserID, true
}

// GetUnlockedConcepts godoc
// @Summary 获取解锁概念
// @Description 返回课程内全部概念及当前解锁集合
// @Tags 掌握
// @Produce json
// @Param courseId query string true "课程 ID"
// @Success 200 {object} util.Response{data=service.UnlockedConceptResponse}
// @Failure 401 {object} util.Response
// @Router /api/concepts/unlocked [get]
func (c *MasteryController) GetUnlockedConcepts(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID := ctx.Query("courseId")
	if courseID == "" {
		util.BadRequest(ctx, "courseId is required")
		return
	}

	res, err := c.MasteryService.GetUnlockedConcepts(userID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// ProgressStepRequest 进度步骤事件请求
type ProgressStepRequest struct {
	CourseID  string `json:"courseId" binding:"required"`
	WatchTime int    `json:"watchTime"` // 秒，仅视频事件
}

// MarkDescriptionRead godoc
// @Summary 标记说明已读
// @Tags 掌握
// @Accept json
// @Produce json
// @Param id path string true "概念 ID"
// @Param body body ProgressStepRequest true "事件信息"
// @Success 200 {object} util.Response{data=service.MasteryUpdateResponse}
// @Failure 423 {object} util.Response "概念未解锁"
// @Router /api/concepts/{id}/description-read [post]
func (c *MasteryController) MarkDescriptionRead(ctx *gin.Context) {
	c.step(ctx, func(userID uint, courseID, conceptID string, req ProgressStepRequest) (*service.MasteryUpdateResponse, error) {
		return c.MasteryService.MarkDescriptionRead(userID, courseID, conceptID)
	})
}

// MarkVideoWatched godoc
// @Summary 标记视频已看
// @Tags 掌握
// @Accept json
// @Produce json
// @Param id path string true "概念 ID"
// @Param body body ProgressStepRequest true "事件信息"
// @Success 200 {object} util.Response{data=service.MasteryUpdateResponse}
// @Failure 423 {object} util.Response "概念未解锁"
// @Router /api/concepts/{id}/video-watched [post]
func (c *MasteryController) MarkVideoWatched(ctx *gin.Context) {
	c.step(ctx, func(userID uint, courseID, conceptID string, req ProgressStepRequest) (*service.MasteryUpdateResponse, error) {
		return c.MasteryService.MarkVideoWatched(userID, courseID, conceptID, req.WatchTime)
	})
}

func (c *MasteryController) step(ctx *gin.Context, fn func(uint, string, string, ProgressStepRequest) (*service.MasteryUpdateResponse, error)) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	conceptID := ctx.Param("id")

	var req ProgressStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := fn(userID, req.CourseID, conceptID, req)
	if err != nil {
		writeMasteryError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetRecord godoc
// @Summary 查询单概念掌握台账
// @Tags 掌握
// @Produce json
// @Param id path string true "概念 ID"
// @Param courseId query string true "课程 ID"
// @Success 200 {object} util.Response{data=model.MasteryRecord}
// @Router /api/concepts/{id}/mastery [get]
func (c *MasteryController) GetRecord(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	courseID := ctx.Query("courseId")
	if courseID == "" {
		util.BadRequest(ctx, "courseId is required")
		return
	}

	rec, err := c.MasteryService.GetRecord(userID, courseID, ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

func writeMasteryError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrConceptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrConceptLocked):
		util.Error(ctx, 423, "前置概念尚未掌握")
	default:
		util.LogInternalError(ctx, err)
	}
}
