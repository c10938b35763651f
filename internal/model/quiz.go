package model

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QSingleChoice QuestionType = "single_choice"
	QTrueFalse    QuestionType = "true_false"
	QFillIn       QuestionType = "fill_in"
)

// ConceptQuiz 概念小测，由内容作者维护
type ConceptQuiz struct {
	ID        string                `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ConceptID string                `gorm:"index;type:varchar(36);not null" json:"conceptId"`
	Title     string                `gorm:"size:255;not null" json:"title"`
	PassScore float64               `gorm:"type:double;default:0.6" json:"passScore"` // 0-1，判定 passed 的及格线
	Questions []ConceptQuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	DeletedAt gorm.DeletedAt        `gorm:"index" json:"-"`
}

func (ConceptQuiz) TableName() string {
	return "concept_quizzes"
}

type ConceptQuizQuestion struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	QuizID      string         `gorm:"index;type:varchar(36);not null" json:"quizId"`
	Type        QuestionType   `gorm:"size:50;not null" json:"type"`
	Question    string         `gorm:"type:text;not null" json:"question"`
	Options     string         `gorm:"type:json" json:"options"` // string array JSON: ["A", "B"]
	Answer      string         `gorm:"type:text;not null" json:"answer"`
	Explanation string         `gorm:"type:text" json:"explanation"`
	Points      int            `gorm:"default:1" json:"points"`
	SortOrder   int            `gorm:"default:0" json:"sortOrder"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ConceptQuizQuestion) TableName() string {
	return "concept_quiz_questions"
}

// QuizAttempt 答题流水，用于审计与统计，不参与解锁判定
type QuizAttempt struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	QuizID    string    `gorm:"index;type:varchar(36);not null" json:"quizId"`
	ConceptID string    `gorm:"index;type:varchar(36);not null" json:"conceptId"`
	CourseID  string    `gorm:"type:varchar(36)" json:"courseId"`
	Score     float64   `gorm:"type:double;default:0" json:"score"` // 0-1
	Passed    bool      `gorm:"default:false" json:"passed"`
	Duration  int       `gorm:"default:0" json:"duration"` // 秒
	CreatedAt time.Time `json:"createdAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
