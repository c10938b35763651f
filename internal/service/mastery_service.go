package service

import (
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

type MasteryService struct {
	ConceptRepo *repository.ConceptRepository
	MasteryRepo *repository.MasteryRepository
	CourseRepo  *repository.CourseRepository
	PathRepo    *repository.LearningPathRepository
	Cfg         *config.Config

	bestScore  *engine.BestScorePolicy
	runningAvg *engine.RunningAveragePolicy
}

func NewMasteryService(
	conceptRepo *repository.ConceptRepository,
	masteryRepo *repository.MasteryRepository,
	courseRepo *repository.CourseRepository,
	pathRepo *repository.LearningPathRepository,
	cfg *config.Config,
) *MasteryService {
	best := engine.NewBestScorePolicy()
	avg := engine.NewRunningAveragePolicy()
	if cfg.Engine.BestScoreThreshold > 0 {
		best.MasteryThreshold = cfg.Engine.BestScoreThreshold
	}
	if cfg.Engine.RunningAverageThreshold > 0 {
		avg.MasteryThreshold = cfg.Engine.RunningAverageThreshold
	}
	return &MasteryService{
		ConceptRepo: conceptRepo,
		MasteryRepo: masteryRepo,
		CourseRepo:  courseRepo,
		PathRepo:    pathRepo,
		Cfg:         cfg,
		bestScore:   best,
		runningAvg:  avg,
	}
}

// BestScorePolicy 新接入点统一走该策略
func (s *MasteryService) BestScorePolicy() engine.ScoringPolicy { return s.bestScore }

// RunningAveragePolicy 仅保留给旧版练习接口
func (s *MasteryService) RunningAveragePolicy() engine.ScoringPolicy { return s.runningAvg }

// UnlockedConceptResponse 概念解锁视图
type UnlockedConceptResponse struct {
	Concepts []engine.DecoratedConcept `json:"concepts"`
	Unlocked []string                  `json:"unlocked"`
}

func (s *MasteryService) courseGraph(courseID string) (*engine.Graph, error) {
	concepts, err := s.ConceptRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	return engine.NewGraph(concepts), nil
}

// GetUnlockedConcepts 返回课程内全部概念的装饰视图和当前解锁集合
func (s *MasteryService) GetUnlockedConcepts(userID uint, courseID string) (*UnlockedConceptResponse, error) {
	g, err := s.courseGraph(courseID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.MasteryRepo.GetLedger(userID, courseID)
	if err != nil {
		return nil, err
	}

	path, _ := g.SequentialPath(ledger)
	unlockedSet := g.UnlockedSet(ledger)
	unlocked := make([]string, 0, len(unlockedSet))
	for _, c := range path {
		if unlockedSet[c.ID] {
			unlocked = append(unlocked, c.ID)
		}
	}
	return &UnlockedConceptResponse{Concepts: path, Unlocked: unlocked}, nil
}

// MasteryUpdateResponse 一次进度事件的结算结果，含本次事件新解锁的后继概念
type MasteryUpdateResponse struct {
	Record        *model.MasteryRecord `json:"record"`
	Mastered      bool                 `json:"mastered"`
	NewlyMastered bool                 `json:"newlyMastered"`
	Demoted       bool                 `json:"demoted"`
	Regressed     bool                 `json:"regressed"`
	NewlyUnlocked []string             `json:"newlyUnlocked"`
}

// UpdateMastery 结算一次进度事件并返回新解锁概念
// 解锁差集基于事件前后两次 UnlockedSet 比对，之后顺带重算课程进度
func (s *MasteryService) UpdateMastery(userID uint, courseID, conceptID string, ev engine.Event, policy engine.ScoringPolicy) (*MasteryUpdateResponse, error) {
	g, err := s.courseGraph(courseID)
	if err != nil {
		return nil, err
	}
	if !g.Has(conceptID) {
		return nil, util.ErrConceptNotFound
	}

	ledger, err := s.MasteryRepo.GetLedger(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !g.IsUnlocked(conceptID, ledger) {
		// 无前置的概念首次交互时台账为空，IsUnlocked 已放行
		return nil, util.ErrConceptLocked
	}
	before := g.UnlockedSet(ledger)

	machine := engine.NewStateMachineWithLimit(policy, s.Cfg.Engine.MaxFailedAttempts)
	var result engine.UpdateResult
	rec, err := s.MasteryRepo.UpdateAtomically(userID, conceptID, courseID, func(r *model.MasteryRecord) error {
		res, err := machine.Apply(r, ev, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.MasteryUpdateCounter.WithLabelValues(policy.Name(), outcomeLabel(result)).Inc()

	ledger[conceptID] = rec
	after := g.UnlockedSet(ledger)
	newlyUnlocked := make([]string, 0)
	for id := range after {
		if !before[id] {
			newlyUnlocked = append(newlyUnlocked, id)
		}
	}

	if err := s.recomputeProgress(g, userID, courseID, ledger); err != nil {
		logger.Log.Warn("course progress recompute failed",
			zap.Uint("userId", userID),
			zap.String("courseId", courseID),
			zap.Error(err))
	}

	if result.NewlyMastered || result.Demoted || result.Regressed {
		// 解锁状态变了，已缓存的路径快照作废
		s.PathRepo.Invalidate(userID, courseID)
	}

	return &MasteryUpdateResponse{
		Record:        rec,
		Mastered:      rec.Mastered,
		NewlyMastered: result.NewlyMastered,
		Demoted:       result.Demoted,
		Regressed:     result.Regressed,
		NewlyUnlocked: newlyUnlocked,
	}, nil
}

// MarkDescriptionRead 阅读说明步骤事件
func (s *MasteryService) MarkDescriptionRead(userID uint, courseID, conceptID string) (*MasteryUpdateResponse, error) {
	return s.UpdateMastery(userID, courseID, conceptID, engine.Event{Action: engine.ActionDescriptionRead}, s.bestScore)
}

// MarkVideoWatched 观看视频步骤事件
func (s *MasteryService) MarkVideoWatched(userID uint, courseID, conceptID string, watchTime int) (*MasteryUpdateResponse, error) {
	return s.UpdateMastery(userID, courseID, conceptID, engine.Event{
		Action:    engine.ActionVideoWatched,
		WatchTime: watchTime,
	}, s.bestScore)
}

func (s *MasteryService) GetRecord(userID uint, courseID, conceptID string) (*model.MasteryRecord, error) {
	rec, err := s.MasteryRepo.Find(userID, conceptID, courseID)
	if err == gorm.ErrRecordNotFound {
		// 未交互过等价于空白台账条目
		return &model.MasteryRecord{
			UserID:    userID,
			ConceptID: conceptID,
			CourseID:  courseID,
			Status:    model.MasteryNotStarted,
		}, nil
	}
	return rec, err
}

func (s *MasteryService) recomputeProgress(g *engine.Graph, userID uint, courseID string, ledger engine.Ledger) error {
	enrollment, err := s.CourseRepo.FindEnrollment(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return nil // 未报名不维护进度汇总
	}
	if err != nil {
		return err
	}

	snap := engine.AggregateProgress(g, ledger, enrollment.Status, enrollment.CompletedAt, time.Now())
	enrollment.Status = snap.Status
	enrollment.ConceptsCompleted = snap.ConceptsCompleted
	enrollment.TotalConcepts = snap.TotalConcepts
	enrollment.OverallProgress = snap.OverallProgress
	enrollment.CompletedAt = snap.CompletedAt
	return s.CourseRepo.SaveEnrollment(enrollment)
}

func outcomeLabel(r engine.UpdateResult) string {
	switch {
	case r.NewlyMastered:
		return "mastered"
	case r.Demoted:
		return "demoted"
	case r.Regressed:
		return "regressed"
	default:
		return "updated"
	}
}
