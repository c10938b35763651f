package repository

import (
	"time"

	"concept_edu_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var c model.Course
	err := r.DB.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CourseRepository) List(publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	var cs []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseConcept{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseEnrollment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) AttachConcept(courseID, conceptID string, order int) error {
	return r.DB.Create(&model.CourseConcept{
		CourseID:  courseID,
		ConceptID: conceptID,
		Order:     order,
	}).Error
}

func (r *CourseRepository) DetachConcept(courseID, conceptID string) error {
	return r.DB.Where("course_id = ? AND concept_id = ?", courseID, conceptID).
		Delete(&model.CourseConcept{}).Error
}

func (r *CourseRepository) FindEnrollment(userID uint, courseID string) (*model.CourseEnrollment, error) {
	var e model.CourseEnrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	return &e, err
}

func (r *CourseRepository) CreateEnrollment(e *model.CourseEnrollment) error {
	return r.DB.Create(e).Error
}

func (r *CourseRepository) ListEnrollments(userID uint) ([]model.CourseEnrollment, error) {
	var es []model.CourseEnrollment
	err := r.DB.Where("user_id = ?", userID).Order("enrolled_at DESC").Find(&es).Error
	return es, err
}

func (r *CourseRepository) SaveEnrollment(e *model.CourseEnrollment) error {
	return r.DB.Save(e).Error
}

func (r *CourseRepository) TouchLastAccessed(userID uint, courseID string) error {
	return r.DB.Model(&model.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("last_accessed_at", time.Now()).
		Error
}
