package service

import (
	"time"

	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/repository"
	"concept_edu_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	ConceptRepo *repository.ConceptRepository
	MasteryRepo *repository.MasteryRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	conceptRepo *repository.ConceptRepository,
	masteryRepo *repository.MasteryRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		ConceptRepo: conceptRepo,
		MasteryRepo: masteryRepo,
	}
}

// CourseListItem 课程列表条目，附带当前用户的报名状态
type CourseListItem struct {
	model.Course
	EnrollmentStatus model.EnrollmentStatus `json:"enrollmentStatus"`
	OverallProgress  int                    `json:"overallProgress"`
}

func (s *CourseService) ListCourses(userID uint, publishedOnly bool, page, limit int) ([]CourseListItem, int64, error) {
	courses, total, err := s.CourseRepo.List(publishedOnly, page, limit)
	if err != nil {
		return nil, 0, err
	}

	enrollments, err := s.CourseRepo.ListEnrollments(userID)
	if err != nil {
		return nil, 0, err
	}
	byCourse := make(map[string]*model.CourseEnrollment, len(enrollments))
	for i := range enrollments {
		byCourse[enrollments[i].CourseID] = &enrollments[i]
	}

	items := make([]CourseListItem, len(courses))
	for i, c := range courses {
		items[i] = CourseListItem{Course: c, EnrollmentStatus: model.NotEnrolled}
		if e, ok := byCourse[c.ID]; ok {
			items[i].EnrollmentStatus = e.Status
			items[i].OverallProgress = e.OverallProgress
		}
	}
	return items, total, nil
}

func (s *CourseService) GetCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

// Enroll 报名课程，重复报名返回冲突错误
func (s *CourseService) Enroll(userID uint, courseID string) (*model.CourseEnrollment, error) {
	course, err := s.GetCourse(courseID)
	if err != nil {
		return nil, err
	}

	if _, err := s.CourseRepo.FindEnrollment(userID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	concepts, err := s.ConceptRepo.ListByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	enrollment := &model.CourseEnrollment{
		UserID:         userID,
		CourseID:       course.ID,
		Status:         model.Enrolled,
		TotalConcepts:  len(concepts),
		EnrolledAt:     now,
		LastAccessedAt: now,
	}
	if err := s.CourseRepo.CreateEnrollment(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// GetProgress 读取课程进度，返回前先按台账重算一次保证口径一致
func (s *CourseService) GetProgress(userID uint, courseID string) (*engine.ProgressSnapshot, error) {
	enrollment, err := s.CourseRepo.FindEnrollment(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrNotEnrolled
	}
	if err != nil {
		return nil, err
	}

	snap, err := s.RecomputeCourseProgress(userID, courseID, enrollment)
	if err != nil {
		return nil, err
	}

	_ = s.CourseRepo.TouchLastAccessed(userID, courseID)
	return snap, nil
}

// RecomputeCourseProgress 按台账重算进度汇总并回写报名行，幂等
func (s *CourseService) RecomputeCourseProgress(userID uint, courseID string, enrollment *model.CourseEnrollment) (*engine.ProgressSnapshot, error) {
	concepts, err := s.ConceptRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.MasteryRepo.GetLedger(userID, courseID)
	if err != nil {
		return nil, err
	}

	g := engine.NewGraph(concepts)
	snap := engine.AggregateProgress(g, ledger, enrollment.Status, enrollment.CompletedAt, time.Now())

	enrollment.Status = snap.Status
	enrollment.ConceptsCompleted = snap.ConceptsCompleted
	enrollment.TotalConcepts = snap.TotalConcepts
	enrollment.OverallProgress = snap.OverallProgress
	enrollment.CompletedAt = snap.CompletedAt
	if err := s.CourseRepo.SaveEnrollment(enrollment); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) UpdateCourse(course *model.Course) error {
	if _, err := s.GetCourse(course.ID); err != nil {
		return err
	}
	return s.CourseRepo.Update(course)
}

func (s *CourseService) DeleteCourse(id string) error {
	if _, err := s.GetCourse(id); err != nil {
		return err
	}
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) AttachConcept(courseID, conceptID string, order int) error {
	if _, err := s.GetCourse(courseID); err != nil {
		return err
	}
	if _, err := s.ConceptRepo.FindByID(conceptID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrConceptNotFound
		}
		return err
	}
	return s.CourseRepo.AttachConcept(courseID, conceptID, order)
}

func (s *CourseService) DetachConcept(courseID, conceptID string) error {
	return s.CourseRepo.DetachConcept(courseID, conceptID)
}
