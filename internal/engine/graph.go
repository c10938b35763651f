package engine

import (
	"concept_edu_backend/internal/model"
)

// Ledger 按概念 ID 索引的掌握台账快照，引擎内只读
type Ledger map[string]*model.MasteryRecord

// Graph 一门课程的概念依赖图，解析过程中视为只读
type Graph struct {
	nodes  map[string]*model.Concept
	order  []string            // 输入顺序，保证遍历结果确定
	prereq map[string][]string // conceptID -> 前置概念 ID（声明顺序）
}

func NewGraph(concepts []model.Concept) *Graph {
	g := &Graph{
		nodes:  make(map[string]*model.Concept, len(concepts)),
		order:  make([]string, 0, len(concepts)),
		prereq: make(map[string][]string, len(concepts)),
	}
	for i := range concepts {
		c := &concepts[i]
		if _, ok := g.nodes[c.ID]; ok {
			continue
		}
		g.nodes[c.ID] = c
		g.order = append(g.order, c.ID)
		g.prereq[c.ID] = c.PrerequisiteIDs()
	}
	return g
}

func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Concept(id string) (*model.Concept, error) {
	c, ok := g.nodes[id]
	if !ok {
		return nil, ErrConceptNotFound
	}
	return c, nil
}

// PrerequisiteIDs 只包含图内存在的前置；指向图外的悬挂边不参与解锁判定
func (g *Graph) PrerequisiteIDs(id string) []string {
	var ids []string
	for _, p := range g.prereq[id] {
		if g.Has(p) {
			ids = append(ids, p)
		}
	}
	return ids
}

// IsUnlocked 无前置恒解锁；有前置要求每一条都已完成，缺台账视为未完成
// 不做部分解锁：3 个前置掌握 2 个仍然锁定
func (g *Graph) IsUnlocked(id string, ledger Ledger) bool {
	if !g.Has(id) {
		return false
	}
	for _, p := range g.PrerequisiteIDs(id) {
		rec, ok := ledger[p]
		if !ok || !rec.Completed() {
			return false
		}
	}
	return true
}

// UnlockedSet 当前快照下所有已解锁概念的 ID 集合
func (g *Graph) UnlockedSet(ledger Ledger) map[string]bool {
	set := make(map[string]bool, len(g.order))
	for _, id := range g.order {
		if g.IsUnlocked(id, ledger) {
			set[id] = true
		}
	}
	return set
}
