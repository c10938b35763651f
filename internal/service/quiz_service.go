package service

import (
	"strings"

	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/repository"
	"concept_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	ConceptRepo *repository.ConceptRepository
	Mastery     *MasteryService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	conceptRepo *repository.ConceptRepository,
	mastery *MasteryService,
) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		ConceptRepo: conceptRepo,
		Mastery:     mastery,
	}
}

// QuizView 面向学生的测验视图，不含参考答案与解析
type QuizView struct {
	ID        string             `json:"id"`
	ConceptID string             `json:"conceptId"`
	Title     string             `json:"title"`
	Questions []QuizQuestionView `json:"questions"`
}

type QuizQuestionView struct {
	ID       string             `json:"id"`
	Type     model.QuestionType `json:"type"`
	Question string             `json:"question"`
	Options  string             `json:"options"`
	Points   int                `json:"points"`
}

// QuizSubmission 一次作答，键为题目 ID
type QuizSubmission struct {
	Answers  map[string]string `json:"answers" binding:"required"`
	Duration int               `json:"duration"`
}

// QuizResultResponse 判分结果叠加掌握结算结果
type QuizResultResponse struct {
	Score         float64  `json:"score"` // 0-1
	Correct       int      `json:"correct"`
	Total         int      `json:"total"`
	Passed        bool     `json:"passed"`
	Mastered      bool     `json:"mastered"`
	NewlyMastered bool     `json:"newlyMastered"`
	Regressed     bool     `json:"regressed"`
	NewlyUnlocked []string `json:"newlyUnlocked"`
}

func (s *QuizService) GetQuizForConcept(conceptID string) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByConcept(conceptID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ID:        quiz.ID,
		ConceptID: quiz.ConceptID,
		Title:     quiz.Title,
		Questions: make([]QuizQuestionView, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		view.Questions[i] = QuizQuestionView{
			ID:       q.ID,
			Type:     q.Type,
			Question: q.Question,
			Options:  q.Options,
			Points:   q.Points,
		}
	}
	return view, nil
}

// SubmitQuiz 判分一次测验提交并走最优成绩策略结算掌握
func (s *QuizService) SubmitQuiz(userID uint, courseID, conceptID string, sub QuizSubmission) (*QuizResultResponse, error) {
	return s.submit(userID, courseID, conceptID, sub, s.Mastery.BestScorePolicy())
}

// SubmitPractice 旧版练习接口，滑动平均策略，分数可被拉低
func (s *QuizService) SubmitPractice(userID uint, courseID, conceptID string, sub QuizSubmission) (*QuizResultResponse, error) {
	return s.submit(userID, courseID, conceptID, sub, s.Mastery.RunningAveragePolicy())
}

func (s *QuizService) submit(userID uint, courseID, conceptID string, sub QuizSubmission, policy engine.ScoringPolicy) (*QuizResultResponse, error) {
	quiz, err := s.QuizRepo.FindByConcept(conceptID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}

	score, correct := grade(quiz.Questions, sub.Answers)
	passed := score >= quiz.PassScore

	update, err := s.Mastery.UpdateMastery(userID, courseID, conceptID, engine.Event{
		Action: engine.ActionQuizCompleted,
		Score:  score,
		Passed: passed,
	}, policy)
	if err != nil {
		return nil, err
	}

	if err := s.QuizRepo.SaveAttempt(&model.QuizAttempt{
		UserID:    userID,
		QuizID:    quiz.ID,
		ConceptID: conceptID,
		CourseID:  courseID,
		Score:     score,
		Passed:    passed,
		Duration:  sub.Duration,
	}); err != nil {
		return nil, err
	}

	return &QuizResultResponse{
		Score:         score,
		Correct:       correct,
		Total:         len(quiz.Questions),
		Passed:        passed,
		Mastered:      update.Mastered,
		NewlyMastered: update.NewlyMastered,
		Regressed:     update.Regressed,
		NewlyUnlocked: update.NewlyUnlocked,
	}, nil
}

func (s *QuizService) CreateQuiz(quiz *model.ConceptQuiz) error {
	if _, err := s.ConceptRepo.FindByID(quiz.ConceptID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrConceptNotFound
		}
		return err
	}
	return s.QuizRepo.Create(quiz)
}

// grade 按题目分值加权判分，归一化到 0-1
func grade(questions []model.ConceptQuizQuestion, answers map[string]string) (float64, int) {
	totalPoints := 0
	earned := 0
	correct := 0
	for _, q := range questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		totalPoints += points
		if answerMatches(q, answers[q.ID]) {
			earned += points
			correct++
		}
	}
	if totalPoints == 0 {
		return 0, 0
	}
	return engine.ClampUnit(float64(earned) / float64(totalPoints)), correct
}

func answerMatches(q model.ConceptQuizQuestion, given string) bool {
	if given == "" {
		return false
	}
	want := strings.TrimSpace(q.Answer)
	got := strings.TrimSpace(given)
	if q.Type == model.QFillIn {
		// 填空题忽略大小写
		return strings.EqualFold(want, got)
	}
	return want == got
}
