package model

import (
	"time"

	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Concept 原子学习单元，前置依赖指向其它概念
// swagger:model Concept
type Concept struct {
	ID               string                `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title            string                `gorm:"size:255;not null" json:"title"`
	Description      string                `gorm:"type:text" json:"description"`
	Difficulty       Difficulty            `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	EstimatedMinutes int                   `gorm:"default:30" json:"estimatedMinutes"`
	Icon             string                `gorm:"size:50" json:"icon"` // 图标标识，仅存字符串标签
	Order            int                   `gorm:"default:0" json:"order"`
	Prerequisites    []ConceptPrerequisite `gorm:"foreignKey:ConceptID" json:"prerequisites"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt        `gorm:"index" json:"-"`
}

func (Concept) TableName() string {
	return "concepts"
}

// ConceptPrerequisite 有向边：学习 ConceptID 之前要求掌握 PrerequisiteID
type ConceptPrerequisite struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConceptID      string    `gorm:"index:idx_concept_prereq,unique;type:varchar(36);not null" json:"conceptId"`
	PrerequisiteID string    `gorm:"index:idx_concept_prereq,unique;type:varchar(36);not null" json:"prerequisiteId"`
	Order          int       `gorm:"default:0" json:"order"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ConceptPrerequisite) TableName() string {
	return "concept_prerequisites"
}

// CourseConcept 课程与概念的关联
type CourseConcept struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID  string    `gorm:"index:idx_course_concept,unique;type:varchar(36);not null" json:"courseId"`
	ConceptID string    `gorm:"index:idx_course_concept,unique;type:varchar(36);not null" json:"conceptId"`
	Order     int       `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CourseConcept) TableName() string {
	return "course_concepts"
}

// PrerequisiteIDs 按声明顺序返回前置概念 ID
func (c *Concept) PrerequisiteIDs() []string {
	ids := make([]string, 0, len(c.Prerequisites))
	for _, p := range c.Prerequisites {
		ids = append(ids, p.PrerequisiteID)
	}
	return ids
}
