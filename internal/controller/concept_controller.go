package controller

import (
	"errors"
	"strconv"

	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ConceptController struct {
	ConceptService *service.ConceptService
}

func NewConceptController(conceptService *service.ConceptService) *ConceptController {
	return &ConceptController{ConceptService: conceptService}
}

// GetConcept godoc
// @Summary 概念详情
// @Tags 概念
// @Produce json
// @Param id path string true "概念 ID"
// @Success 200 {object} util.Response{data=model.Concept}
// @Failure 404 {object} util.Response
// @Router /api/concepts/{id} [get]
func (c *ConceptController) GetConcept(ctx *gin.Context) {
	concept, err := c.ConceptService.GetConcept(ctx.Param("id"))
	if err != nil {
		writeConceptError(ctx, err)
		return
	}
	util.Success(ctx, concept)
}

// ListConcepts godoc
// @Summary 概念列表
// @Tags 概念
// @Produce json
// @Param title query string false "标题模糊匹配"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.PageResponse
// @Router /api/concepts [get]
func (c *ConceptController) ListConcepts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	concepts, total, err := c.ConceptService.ListConcepts(ctx.Query("title"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: concepts, Total: total, Page: page, Limit: limit})
}

// ConceptRequest 概念创建/更新请求
type ConceptRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	Difficulty       string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Icon             string   `json:"icon"`
	Order            int      `json:"order"`
	Prerequisites    []string `json:"prerequisites"`
}

// CreateConcept godoc
// @Summary 创建概念
// @Description 前置引用必须已存在且不得成环
// @Tags 概念管理
// @Accept json
// @Produce json
// @Param body body ConceptRequest true "概念信息"
// @Success 201 {object} util.Response{data=model.Concept}
// @Failure 422 {object} util.Response "前置编辑成环"
// @Router /api/teacher/concepts [post]
func (c *ConceptController) CreateConcept(ctx *gin.Context) {
	var req ConceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	concept := conceptFromRequest(req)
	if err := c.ConceptService.CreateConcept(concept, req.Prerequisites); err != nil {
		writeConceptError(ctx, err)
		return
	}
	util.Created(ctx, concept)
}

// UpdateConcept godoc
// @Summary 更新概念
// @Description 整体替换概念本体与前置集合，成环编辑被拒绝
// @Tags 概念管理
// @Accept json
// @Produce json
// @Param id path string true "概念 ID"
// @Param body body ConceptRequest true "概念信息"
// @Success 200 {object} util.Response{data=model.Concept}
// @Failure 422 {object} util.Response "前置编辑成环"
// @Router /api/teacher/concepts/{id} [put]
func (c *ConceptController) UpdateConcept(ctx *gin.Context) {
	var req ConceptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	concept := conceptFromRequest(req)
	concept.ID = ctx.Param("id")
	if err := c.ConceptService.UpdateConcept(concept, req.Prerequisites); err != nil {
		writeConceptError(ctx, err)
		return
	}
	util.Success(ctx, concept)
}

// DeleteConcept godoc
// @Summary 删除概念
// @Tags 概念管理
// @Produce json
// @Param id path string true "概念 ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/concepts/{id} [delete]
func (c *ConceptController) DeleteConcept(ctx *gin.Context) {
	if err := c.ConceptService.DeleteConcept(ctx.Param("id")); err != nil {
		writeConceptError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func conceptFromRequest(req ConceptRequest) *model.Concept {
	difficulty := model.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	minutes := req.EstimatedMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return &model.Concept{
		Title:            req.Title,
		Description:      req.Description,
		Difficulty:       difficulty,
		EstimatedMinutes: minutes,
		Icon:             req.Icon,
		Order:            req.Order,
	}
}

func writeConceptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrConceptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPrerequisiteCycle):
		util.Error(ctx, 422, "前置编辑会形成环")
	default:
		util.LogInternalError(ctx, err)
	}
}
