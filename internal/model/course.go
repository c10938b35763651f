package model

import (
	"time"

	"gorm.io/gorm"
)

type EnrollmentStatus string

const (
	NotEnrolled      EnrollmentStatus = "not_enrolled"
	Enrolled         EnrollmentStatus = "enrolled"
	CourseInProgress EnrollmentStatus = "in_progress"
	CourseCompleted  EnrollmentStatus = "completed"
)

// swagger:model Course
type Course struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"size:50" json:"icon"`
	Published   bool           `gorm:"default:false" json:"published"`
	CreatorID   uint           `gorm:"index;type:bigint unsigned" json:"creatorId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseEnrollment 课程报名与进度汇总，进度字段全部由掌握台账重算得出
type CourseEnrollment struct {
	ID                uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint             `gorm:"index:idx_user_course,unique;type:bigint unsigned;not null" json:"userId"`
	CourseID          string           `gorm:"index:idx_user_course,unique;type:varchar(36);not null" json:"courseId"`
	Status            EnrollmentStatus `gorm:"type:enum('not_enrolled','enrolled','in_progress','completed');default:'enrolled'" json:"status"`
	ConceptsCompleted int              `gorm:"default:0" json:"conceptsCompleted"`
	TotalConcepts     int              `gorm:"default:0" json:"totalConcepts"`
	OverallProgress   int              `gorm:"default:0" json:"overallProgress"` // 0-100
	EnrolledAt        time.Time        `json:"enrolledAt"`
	LastAccessedAt    time.Time        `json:"lastAccessedAt"`
	CompletedAt       *time.Time       `json:"completedAt"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
