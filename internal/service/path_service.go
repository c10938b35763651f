package service

import (
	"encoding/json"
	"time"

	"concept_edu_backend/internal/config"
	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/repository"
	"concept_edu_backend/internal/util"
	"concept_edu_backend/pkg/logger"
	"concept_edu_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PathService struct {
	ConceptRepo *repository.ConceptRepository
	MasteryRepo *repository.MasteryRepository
	PathRepo    *repository.LearningPathRepository
	CourseRepo  *repository.CourseRepository
	Cfg         *config.Config
}

func NewPathService(
	conceptRepo *repository.ConceptRepository,
	masteryRepo *repository.MasteryRepository,
	pathRepo *repository.LearningPathRepository,
	courseRepo *repository.CourseRepository,
	cfg *config.Config,
) *PathService {
	return &PathService{
		ConceptRepo: conceptRepo,
		MasteryRepo: masteryRepo,
		PathRepo:    pathRepo,
		CourseRepo:  courseRepo,
		Cfg:         cfg,
	}
}

// PathResponse 顺序路径视图，环告警以字符串列表附带返回
type PathResponse struct {
	CourseID      string                    `json:"courseId"`
	Path          []engine.DecoratedConcept `json:"path"`
	CycleWarnings []string                  `json:"cycleWarnings,omitempty"`
	GeneratedAt   time.Time                 `json:"generatedAt"`
}

// RoutesResponse 全部路线视图，下标 0 恒为 Recommended
type RoutesResponse struct {
	CourseID      string         `json:"courseId"`
	Routes        []engine.Route `json:"routes"`
	SelectedRoute int            `json:"selectedRoute"`
	CycleWarnings []string       `json:"cycleWarnings,omitempty"`
}

// BuildSequentialPath 基于当前台账生成顺序学习路径并整条持久化
// 环不致命：跳过成环概念并告警，剩余部分照常返回
func (s *PathService) BuildSequentialPath(userID uint, courseID string) (*PathResponse, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	g, ledger, err := s.load(userID, courseID)
	if err != nil {
		return nil, err
	}

	path, cycles := g.SequentialPath(ledger)
	warnings := s.reportCycles(courseID, cycles)
	monitoring.PathGenerationCounter.WithLabelValues("fresh").Inc()

	now := time.Now()
	record, err := newPathRecord(userID, courseID, path, nil, now)
	if err != nil {
		return nil, err
	}
	if err := s.PathRepo.Upsert(record, s.Cfg.Engine.PathCacheTTL); err != nil {
		logger.Log.Warn("learning path persist failed",
			zap.Uint("userId", userID),
			zap.String("courseId", courseID),
			zap.Error(err))
	}

	return &PathResponse{
		CourseID:      courseID,
		Path:          path,
		CycleWarnings: warnings,
		GeneratedAt:   now,
	}, nil
}

// GenerateAlternativeRoutes 基于同一台账快照生成 Recommended 与至多三条备选路线
func (s *PathService) GenerateAlternativeRoutes(userID uint, courseID string) (*RoutesResponse, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	g, ledger, err := s.load(userID, courseID)
	if err != nil {
		return nil, err
	}

	routes, cycles := g.AlternativeRoutes(ledger)
	warnings := s.reportCycles(courseID, cycles)
	monitoring.PathGenerationCounter.WithLabelValues("fresh").Inc()

	record, err := newPathRecord(userID, courseID, routes[0].Concepts, routes[1:], time.Now())
	if err != nil {
		return nil, err
	}
	if err := s.PathRepo.Upsert(record, s.Cfg.Engine.PathCacheTTL); err != nil {
		logger.Log.Warn("learning path persist failed",
			zap.Uint("userId", userID),
			zap.String("courseId", courseID),
			zap.Error(err))
	}

	// 整条覆盖写入后路线选择回到 Recommended，响应与快照保持一致
	return &RoutesResponse{
		CourseID:      courseID,
		Routes:        routes,
		SelectedRoute: record.SelectedRoute,
		CycleWarnings: warnings,
	}, nil
}

// SaveSelectedRoute 记录用户选中的路线下标，0 表示回到 Recommended
func (s *PathService) SaveSelectedRoute(userID uint, courseID string, route int) error {
	if route < 0 || route > engine.MaxAlternativeRoutes {
		return util.ErrInvalidRoute
	}
	if _, err := s.PathRepo.Find(userID, courseID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrPathNotGenerated
		}
		return err
	}
	return s.PathRepo.UpdateSelectedRoute(userID, courseID, route)
}

// GetSavedPath 读取已持久化的路径快照，DB 缺失时走 redis 兜底
func (s *PathService) GetSavedPath(userID uint, courseID string) (*model.LearningPath, error) {
	p, err := s.PathRepo.Find(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPathNotGenerated
	}
	return p, err
}

func (s *PathService) load(userID uint, courseID string) (*engine.Graph, engine.Ledger, error) {
	concepts, err := s.ConceptRepo.ListByCourse(courseID)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := s.MasteryRepo.GetLedger(userID, courseID)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewGraph(concepts), ledger, nil
}

func (s *PathService) reportCycles(courseID string, cycles []engine.CycleDiagnostic) []string {
	if len(cycles) == 0 {
		return nil
	}
	warnings := make([]string, len(cycles))
	for i, d := range cycles {
		warnings[i] = d.String()
		logger.Log.Warn("prerequisite cycle detected",
			zap.String("courseId", courseID),
			zap.String("conceptId", d.ConceptID),
			zap.Strings("chain", d.Chain))
		monitoring.CycleWarningCounter.Inc()
	}
	return warnings
}

// newPathRecord 构造整条覆盖写入的路径快照
// 旧快照的路线下标指向的是旧路线集合，重新生成时一并重置为 Recommended
func newPathRecord(userID uint, courseID string, path []engine.DecoratedConcept, alternates []engine.Route, now time.Time) (*model.LearningPath, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return nil, err
	}
	altJSON := "[]"
	if len(alternates) > 0 {
		b, err := json.Marshal(alternates)
		if err != nil {
			return nil, err
		}
		altJSON = string(b)
	}

	return &model.LearningPath{
		UserID:            userID,
		CourseID:          courseID,
		PathType:          model.PathTypeCourse,
		GeneratedPath:     string(pathJSON),
		AlternativeRoutes: altJSON,
		SelectedRoute:     0,
		SavedAt:           now,
	}, nil
}
