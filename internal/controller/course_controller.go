package controller

import (
	"errors"
	"strconv"

	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 分页返回已发布课程，附当前用户报名状态
// @Tags 课程
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.PageResponse
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.CourseService.ListCourses(userID, true, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Param id path string true "课程 ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Enroll godoc
// @Summary 报名课程
// @Tags 课程
// @Produce json
// @Param id path string true "课程 ID"
// @Success 201 {object} util.Response{data=model.CourseEnrollment}
// @Failure 409 {object} util.Response "重复报名"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.CourseService.Enroll(userID, ctx.Param("id"))
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// GetProgress godoc
// @Summary 课程进度
// @Description 按掌握台账重算后的进度汇总
// @Tags 课程
// @Produce json
// @Param id path string true "课程 ID"
// @Success 200 {object} util.Response{data=engine.ProgressSnapshot}
// @Failure 404 {object} util.Response "未报名"
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	snap, err := c.CourseService.GetProgress(userID, ctx.Param("id"))
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, snap)
}

// CourseRequest 课程创建/更新请求
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Published   bool   `json:"published"`
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Param body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Published:   req.Published,
		CreatorID:   userID,
	}
	if err := c.CourseService.CreateCourse(course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Param id path string true "课程 ID"
// @Param body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/teacher/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.GetCourse(ctx.Param("id"))
	if err != nil {
		writeCourseError(ctx, err)
		return
	}
	course.Title = req.Title
	course.Description = req.Description
	course.Icon = req.Icon
	course.Published = req.Published

	if err := c.CourseService.UpdateCourse(course); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程管理
// @Produce json
// @Param id path string true "课程 ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.DeleteCourse(ctx.Param("id")); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AttachConceptRequest 课程挂载概念请求
type AttachConceptRequest struct {
	ConceptID string `json:"conceptId" binding:"required"`
	Order     int    `json:"order"`
}

// AttachConcept godoc
// @Summary 课程挂载概念
// @Tags 课程管理
// @Accept json
// @Produce json
// @Param id path string true "课程 ID"
// @Param body body AttachConceptRequest true "概念信息"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/concepts [post]
func (c *CourseController) AttachConcept(ctx *gin.Context) {
	var req AttachConceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.AttachConcept(ctx.Param("id"), req.ConceptID, req.Order); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DetachConcept godoc
// @Summary 课程移除概念
// @Tags 课程管理
// @Produce json
// @Param id path string true "课程 ID"
// @Param conceptId path string true "概念 ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/concepts/{conceptId} [delete]
func (c *CourseController) DetachConcept(ctx *gin.Context) {
	if err := c.CourseService.DetachConcept(ctx.Param("id"), ctx.Param("conceptId")); err != nil {
		writeCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func writeCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrConceptNotFound), errors.Is(err, util.ErrNotEnrolled):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAlreadyEnrolled):
		util.Conflict(ctx, "已报名该课程")
	default:
		util.LogInternalError(ctx, err)
	}
}
