package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrCourseNotFound    = errors.New("course not found")
	ErrConceptNotFound   = errors.New("concept not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrNotEnrolled       = errors.New("not enrolled in course")
	ErrAlreadyEnrolled   = errors.New("already enrolled in course")
	ErrConceptLocked     = errors.New("concept locked: prerequisites not mastered")
	ErrPrerequisiteCycle = errors.New("prerequisite edit would create a cycle")
	ErrPathNotGenerated  = errors.New("learning path not generated yet")
	ErrInvalidRoute      = errors.New("invalid route index")
)
