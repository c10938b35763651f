package controller

import (
	"errors"

	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PathController struct {
	PathService *service.PathService
}

func NewPathController(pathService *service.PathService) *PathController {
	return &PathController{PathService: pathService}
}

// BuildPath godoc
// @Summary 生成顺序学习路径
// @Description 基于当前掌握台账生成课程的顺序学习路径
// @Tags 路径
// @Produce json
// @Param id path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.PathResponse}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/path [get]
func (c *PathController) BuildPath(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	res, err := c.PathService.BuildSequentialPath(userID, ctx.Param("id"))
	if err != nil {
		writePathError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// GetRoutes godoc
// @Summary 生成备选路线
// @Description 返回 Recommended 与至多三条备选路线
// @Tags 路径
// @Produce json
// @Param id path string true "课程 ID"
// @Success 200 {object} util.Response{data=service.RoutesResponse}
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/routes [get]
func (c *PathController) GetRoutes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	res, err := c.PathService.GenerateAlternativeRoutes(userID, ctx.Param("id"))
	if err != nil {
		writePathError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// SelectRouteRequest 路线选择请求
type SelectRouteRequest struct {
	Route int `json:"route"`
}

// SelectRoute godoc
// @Summary 保存选中路线
// @Tags 路径
// @Accept json
// @Produce json
// @Param id path string true "课程 ID"
// @Param body body SelectRouteRequest true "路线下标，0 为 Recommended"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "下标越界"
// @Router /api/courses/{id}/routes/select [post]
func (c *PathController) SelectRoute(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req SelectRouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.PathService.SaveSelectedRoute(userID, ctx.Param("id"), req.Route); err != nil {
		writePathError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"selectedRoute": req.Route})
}

func writePathError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrPathNotGenerated):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidRoute):
		util.BadRequest(ctx, "路线下标越界")
	default:
		util.LogInternalError(ctx, err)
	}
}
