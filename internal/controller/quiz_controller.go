package controller

import (
	"errors"

	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/service"
	"concept_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// GetQuiz godoc
// @Summary 获取概念测验
// @Description 学生视图，不含参考答案
// @Tags 测验
// @Produce json
// @Param id path string true "概念 ID"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response
// @Router /api/concepts/{id}/quiz [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	view, err := c.QuizService.GetQuizForConcept(ctx.Param("id"))
	if err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// QuizSubmitRequest 测验提交请求
type QuizSubmitRequest struct {
	CourseID string            `json:"courseId" binding:"required"`
	Answers  map[string]string `json:"answers" binding:"required"`
	Duration int               `json:"duration"`
}

// SubmitQuiz godoc
// @Summary 提交测验
// @Description 判分并按最优成绩策略结算掌握
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "概念 ID"
// @Param body body QuizSubmitRequest true "作答"
// @Success 200 {object} util.Response{data=service.QuizResultResponse}
// @Failure 423 {object} util.Response "概念未解锁"
// @Router /api/concepts/{id}/quiz [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	c.submit(ctx, c.QuizService.SubmitQuiz)
}

// SubmitPractice godoc
// @Summary 提交练习
// @Description 旧版练习接口，滑动平均策略，掌握可能被撤销
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "概念 ID"
// @Param body body QuizSubmitRequest true "作答"
// @Success 200 {object} util.Response{data=service.QuizResultResponse}
// @Failure 423 {object} util.Response "概念未解锁"
// @Router /api/concepts/{id}/practice [post]
func (c *QuizController) SubmitPractice(ctx *gin.Context) {
	c.submit(ctx, c.QuizService.SubmitPractice)
}

func (c *QuizController) submit(ctx *gin.Context, fn func(uint, string, string, service.QuizSubmission) (*service.QuizResultResponse, error)) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	res, err := fn(userID, req.CourseID, ctx.Param("id"), service.QuizSubmission{
		Answers:  req.Answers,
		Duration: req.Duration,
	})
	if err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Success(ctx, res)
}

// QuizCreateRequest 测验创建请求
type QuizCreateRequest struct {
	ConceptID string              `json:"conceptId" binding:"required"`
	Title     string              `json:"title" binding:"required"`
	PassScore float64             `json:"passScore" binding:"omitempty,gte=0,lte=1"`
	Questions []QuizQuestionInput `json:"questions" binding:"required,min=1"`
}

type QuizQuestionInput struct {
	Type        string `json:"type" binding:"required,oneof=single_choice true_false fill_in"`
	Question    string `json:"question" binding:"required"`
	Options     string `json:"options"`
	Answer      string `json:"answer" binding:"required"`
	Explanation string `json:"explanation"`
	Points      int    `json:"points"`
}

// CreateQuiz godoc
// @Summary 创建概念测验
// @Tags 测验管理
// @Accept json
// @Produce json
// @Param body body QuizCreateRequest true "测验信息"
// @Success 201 {object} util.Response{data=model.ConceptQuiz}
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req QuizCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	passScore := req.PassScore
	if passScore == 0 {
		passScore = 0.6
	}

	quiz := &model.ConceptQuiz{
		ConceptID: req.ConceptID,
		Title:     req.Title,
		PassScore: passScore,
		Questions: make([]model.ConceptQuizQuestion, len(req.Questions)),
	}
	for i, q := range req.Questions {
		quiz.Questions[i] = model.ConceptQuizQuestion{
			Type:        model.QuestionType(q.Type),
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Explanation: q.Explanation,
			Points:      q.Points,
		}
	}

	if err := c.QuizService.CreateQuiz(quiz); err != nil {
		writeQuizError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

func writeQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrConceptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrConceptLocked):
		util.Error(ctx, 423, "前置概念尚未掌握")
	default:
		util.LogInternalError(ctx, err)
	}
}
