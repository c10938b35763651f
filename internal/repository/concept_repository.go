package repository

import (
	"concept_edu_backend/internal/model"

	"gorm.io/gorm"
)

type ConceptRepository struct {
	DB *gorm.DB
}

func NewConceptRepository(db *gorm.DB) *ConceptRepository {
	return &ConceptRepository{DB: db}
}

func (r *ConceptRepository) Create(concept *model.Concept) error {
	return r.DB.Create(concept).Error
}

func (r *ConceptRepository) FindByID(id string) (*model.Concept, error) {
	var c model.Concept
	err := r.DB.Preload("Prerequisites", func(db *gorm.DB) *gorm.DB {
		return db.Order("concept_prerequisites.order ASC")
	}).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *ConceptRepository) List(title string, page, limit int) ([]model.Concept, int64, error) {
	var cs []model.Concept
	var total int64
	query := r.DB.Model(&model.Concept{})
	if title != "" {
		query = query.Where("title LIKE ?", "%"+title+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Prerequisites").
		Order("`order` ASC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&cs).Error
	return cs, total, err
}

// ListByCourse 按课程内排序返回概念及其前置边，路径解析的唯一图来源
func (r *ConceptRepository) ListByCourse(courseID string) ([]model.Concept, error) {
	var cs []model.Concept
	err := r.DB.
		Joins("JOIN course_concepts ON course_concepts.concept_id = concepts.id").
		Where("course_concepts.course_id = ?", courseID).
		Order("course_concepts.order ASC").
		Preload("Prerequisites", func(db *gorm.DB) *gorm.DB {
			return db.Order("concept_prerequisites.order ASC")
		}).
		Find(&cs).Error
	return cs, err
}

func (r *ConceptRepository) Update(concept *model.Concept) error {
	return r.DB.Save(concept).Error
}

// ReplacePrerequisites 整组覆盖概念的前置边
func (r *ConceptRepository) ReplacePrerequisites(conceptID string, prerequisiteIDs []string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("concept_id = ?", conceptID).Delete(&model.ConceptPrerequisite{}).Error; err != nil {
			return err
		}
		for i, pid := range prerequisiteIDs {
			edge := model.ConceptPrerequisite{
				ConceptID:      conceptID,
				PrerequisiteID: pid,
				Order:          i,
			}
			if err := tx.Create(&edge).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ConceptRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 删除以该概念为端点的依赖边
		if err := tx.Where("concept_id = ? OR prerequisite_id = ?", id, id).
			Delete(&model.ConceptPrerequisite{}).Error; err != nil {
			return err
		}

		// 2. 删除课程关联
		if err := tx.Where("concept_id = ?", id).Delete(&model.CourseConcept{}).Error; err != nil {
			return err
		}

		// 3. 最后删除概念本体
		return tx.Delete(&model.Concept{}, "id = ?", id).Error
	})
}
