package repository

import (
	"concept_edu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.ConceptQuiz) error {
	if quiz.ID == "" {
		quiz.ID = model.GenerateUUID()
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = model.GenerateUUID()
		}
		quiz.Questions[i].QuizID = quiz.ID
		quiz.Questions[i].SortOrder = i
	}
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.ConceptQuiz, error) {
	var quiz model.ConceptQuiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// FindByConcept 取概念绑定的测验（含题目），一个概念至多一份
func (r *QuizRepository) FindByConcept(conceptID string) (*model.ConceptQuiz, error) {
	var quiz model.ConceptQuiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&quiz, "concept_id = ?", conceptID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) SaveAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) ListAttempts(userID uint, quizID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC").Find(&attempts).Error
	return attempts, err
}
