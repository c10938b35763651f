package service

import (
	"concept_edu_backend/internal/model"
	"concept_edu_backend/internal/repository"
	"concept_edu_backend/internal/util"
	"concept_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ConceptService struct {
	ConceptRepo *repository.ConceptRepository
}

func NewConceptService(conceptRepo *repository.ConceptRepository) *ConceptService {
	return &ConceptService{ConceptRepo: conceptRepo}
}

func (s *ConceptService) GetConcept(id string) (*model.Concept, error) {
	concept, err := s.ConceptRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrConceptNotFound
	}
	return concept, err
}

func (s *ConceptService) ListConcepts(title string, page, limit int) ([]model.Concept, int64, error) {
	return s.ConceptRepo.List(title, page, limit)
}

// CreateConcept 新建概念，前置引用必须已存在且不得成环
func (s *ConceptService) CreateConcept(concept *model.Concept, prerequisiteIDs []string) error {
	if concept.ID == "" {
		concept.ID = model.GenerateUUID()
	}
	if err := s.validatePrerequisites(concept.ID, prerequisiteIDs); err != nil {
		return err
	}

	concept.Prerequisites = nil
	if err := s.ConceptRepo.Create(concept); err != nil {
		return err
	}
	if len(prerequisiteIDs) == 0 {
		return nil
	}
	return s.ConceptRepo.ReplacePrerequisites(concept.ID, prerequisiteIDs)
}

// UpdateConcept 更新概念本体与前置集合，会闭环的前置编辑直接拒绝
func (s *ConceptService) UpdateConcept(concept *model.Concept, prerequisiteIDs []string) error {
	if _, err := s.GetConcept(concept.ID); err != nil {
		return err
	}
	if err := s.validatePrerequisites(concept.ID, prerequisiteIDs); err != nil {
		return err
	}

	concept.Prerequisites = nil
	if err := s.ConceptRepo.Update(concept); err != nil {
		return err
	}
	return s.ConceptRepo.ReplacePrerequisites(concept.ID, prerequisiteIDs)
}

func (s *ConceptService) DeleteConcept(id string) error {
	if _, err := s.GetConcept(id); err != nil {
		return err
	}
	return s.ConceptRepo.Delete(id)
}

// validatePrerequisites 校验前置存在性，并在全量概念图上探测拟议编辑是否闭环
// 编辑期拒绝成环，运行期遍历仍保留跳过加告警的兜底
func (s *ConceptService) validatePrerequisites(conceptID string, prerequisiteIDs []string) error {
	for _, pid := range prerequisiteIDs {
		if pid == conceptID {
			return util.ErrPrerequisiteCycle
		}
		if _, err := s.ConceptRepo.FindByID(pid); err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrConceptNotFound
			}
			return err
		}
	}
	if len(prerequisiteIDs) == 0 {
		return nil
	}

	all, _, err := s.ConceptRepo.List("", 1, 10000)
	if err != nil {
		return err
	}
	prereq := make(map[string][]string, len(all)+1)
	for i := range all {
		prereq[all[i].ID] = all[i].PrerequisiteIDs()
	}
	prereq[conceptID] = prerequisiteIDs

	// 从拟议编辑的节点出发沿前置边 DFS，回到自身即成环
	visited := make(map[string]bool)
	var dfs func(id string) bool
	dfs = func(id string) bool {
		if visited[id] {
			return false
		}
		visited[id] = true
		for _, p := range prereq[id] {
			if p == conceptID || dfs(p) {
				return true
			}
		}
		return false
	}
	for _, p := range prerequisiteIDs {
		if dfs(p) {
			logger.Log.Warn("rejected prerequisite edit closing a cycle",
				zap.String("conceptId", conceptID),
				zap.Strings("prerequisites", prerequisiteIDs))
			return util.ErrPrerequisiteCycle
		}
	}
	return nil
}
