package engine

import (
	"math"

	"concept_edu_backend/internal/model"
)

// DecoratedConcept UI 消费的路径节点视图，图标只存字符串标签
type DecoratedConcept struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Complexity     int                 `json:"complexity"`     // 1/3/5 ← easy/medium/hard
	EstimatedHours float64             `json:"estimatedHours"`
	MasteryScore   float64             `json:"masteryScore"` // 0-10 展示刻度
	Status         model.MasteryStatus `json:"status"`
	IsCompleted    bool                `json:"isCompleted"`
	IsLocked       bool                `json:"isLocked"`
	Icon           string              `json:"icon"`
	Prerequisites  []string            `json:"prerequisites"`
}

func ComplexityOf(d model.Difficulty) int {
	switch d {
	case model.DifficultyEasy:
		return 1
	case model.DifficultyHard:
		return 5
	default:
		return 3
	}
}

// Decorate 按同一份台账快照装饰单个概念
func (g *Graph) Decorate(c *model.Concept, ledger Ledger) DecoratedConcept {
	dc := DecoratedConcept{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Complexity:     ComplexityOf(c.Difficulty),
		EstimatedHours: math.Round(float64(c.EstimatedMinutes)/60*10) / 10,
		Status:         model.MasteryNotStarted,
		Icon:           c.Icon,
		Prerequisites:  g.PrerequisiteIDs(c.ID),
		IsLocked:       !g.IsUnlocked(c.ID, ledger),
	}
	if rec, ok := ledger[c.ID]; ok {
		dc.MasteryScore = ToDisplayScale(rec.Score)
		dc.Status = rec.Status
		dc.IsCompleted = rec.Completed()
	}
	return dc
}

// SequentialPath 深度优先拓扑遍历：先递归访问全部前置，再输出自身
// 环上的重入节点被跳过但记入诊断，调用方负责上报
// 输出顺序由输入顺序和图结构唯一确定，但不是全局规范序
func (g *Graph) SequentialPath(ledger Ledger) ([]DecoratedConcept, []CycleDiagnostic) {
	sequence := make([]DecoratedConcept, 0, len(g.order))
	var cycles []CycleDiagnostic

	visited := make(map[string]bool, len(g.order))
	visiting := make(map[string]bool, len(g.order))

	var visit func(id string, chain []string)
	visit = func(id string, chain []string) {
		if visited[id] {
			return
		}
		if visiting[id] {
			cycles = append(cycles, CycleDiagnostic{
				ConceptID: id,
				Chain:     append(append([]string{}, chain...), id),
			})
			return
		}
		visiting[id] = true
		for _, p := range g.PrerequisiteIDs(id) {
			visit(p, append(chain, id))
		}
		delete(visiting, id)
		visited[id] = true

		c := g.nodes[id]
		sequence = append(sequence, g.Decorate(c, ledger))
	}

	for _, id := range g.order {
		visit(id, nil)
	}
	return sequence, cycles
}
