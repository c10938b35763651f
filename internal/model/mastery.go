package model

import (
	"time"

	"gorm.io/gorm"
)

type MasteryStatus string

const (
	MasteryNotStarted MasteryStatus = "not_started"
	MasteryInProgress MasteryStatus = "in_progress"
	MasteryCompleted  MasteryStatus = "completed"
)

// MasteryRecord 用户对单个概念的掌握台账
// 分数内部统一使用 0-1 归一化刻度，展示刻度在边界转换
type MasteryRecord struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint           `gorm:"index:idx_user_concept_course,unique;type:bigint unsigned;not null" json:"userId"`
	ConceptID       string         `gorm:"index:idx_user_concept_course,unique;type:varchar(36);not null" json:"conceptId"`
	CourseID        string         `gorm:"index:idx_user_concept_course,unique;type:varchar(36);not null" json:"courseId"`
	Status          MasteryStatus  `gorm:"type:enum('not_started','in_progress','completed');default:'not_started'" json:"status"`
	Score           float64        `gorm:"type:double;default:0" json:"score"` // 0.0 - 1.0
	Attempts        int            `gorm:"default:0" json:"attempts"`
	FailedAttempts  int            `gorm:"default:0" json:"failedAttempts"`
	Mastered        bool           `gorm:"default:false" json:"mastered"`
	MasteredAt      *time.Time     `json:"masteredAt"`
	DescriptionRead bool           `gorm:"default:false" json:"descriptionRead"`
	VideoWatched    bool           `gorm:"default:false" json:"videoWatched"`
	QuizPassed      bool           `gorm:"default:false" json:"quizPassed"`
	TimeSpent       int            `gorm:"default:0" json:"timeSpent"` // 秒
	LastUpdated     time.Time      `json:"lastUpdated"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MasteryRecord) TableName() string {
	return "mastery_records"
}

// Completed 判定台账条目是否计入已完成
func (m *MasteryRecord) Completed() bool {
	return m.Mastered || m.Status == MasteryCompleted
}
