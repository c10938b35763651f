package model

import (
	"time"

	"gorm.io/gorm"
)

type PathType string

const (
	PathTypeCourse PathType = "course"
	PathTypeTopic  PathType = "topic"
)

// LearningPath 一次生成的学习路径快照，整条覆盖写入，从不逐字段修补
// GeneratedPath / AlternativeRoutes 存序列化后的装饰概念列表（图标为字符串标签）
type LearningPath struct {
	ID                string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID            uint           `gorm:"index:idx_user_course_path,unique;type:bigint unsigned;not null" json:"userId"`
	CourseID          string         `gorm:"index:idx_user_course_path,unique;type:varchar(36);not null" json:"courseId"`
	PathType          PathType       `gorm:"type:enum('course','topic');default:'course'" json:"pathType"`
	SelectedGoal      string         `gorm:"size:255" json:"selectedGoal"`
	SelectedConcept   string         `gorm:"type:varchar(36)" json:"selectedConcept"`
	GeneratedPath     string         `gorm:"type:json" json:"generatedPath"`
	AlternativeRoutes string         `gorm:"type:json" json:"alternativeRoutes"`
	SelectedRoute     int            `gorm:"default:0" json:"selectedRoute"`
	SavedAt           time.Time      `json:"savedAt"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}
