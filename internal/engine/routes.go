package engine

import (
	"sort"
)

const (
	RouteRecommended    = "Recommended"
	RouteEasyFirst      = "Easy First"
	RouteTimeOptimized  = "Time Optimized"
	RouteMasteryFocused = "Mastery Focused"
)

// MaxAlternativeRoutes 除 Recommended 外最多生成的备选路线数
const MaxAlternativeRoutes = 3

// Route 同一概念集合在某个优化目标下的一种排序
// 备选路线按次级信号稳定排序，不保证仍满足拓扑序，仅作为建议呈现
type Route struct {
	Name     string             `json:"name"`
	Concepts []DecoratedConcept `json:"concepts"`
}

// AlternativeRoutes 基于同一台账快照生成全部路线
// 下标 0 恒为规范拓扑序的 Recommended 路线
func (g *Graph) AlternativeRoutes(ledger Ledger) ([]Route, []CycleDiagnostic) {
	canonical, cycles := g.SequentialPath(ledger)

	routes := []Route{{Name: RouteRecommended, Concepts: canonical}}

	alternates := []struct {
		name string
		less func(a, b DecoratedConcept) bool
	}{
		{RouteEasyFirst, func(a, b DecoratedConcept) bool { return a.Complexity < b.Complexity }},
		{RouteTimeOptimized, func(a, b DecoratedConcept) bool { return a.EstimatedHours < b.EstimatedHours }},
		{RouteMasteryFocused, func(a, b DecoratedConcept) bool { return a.MasteryScore < b.MasteryScore }},
	}

	for _, alt := range alternates {
		if len(routes)-1 >= MaxAlternativeRoutes {
			break
		}
		concepts := make([]DecoratedConcept, len(canonical))
		copy(concepts, canonical)
		less := alt.less
		sort.SliceStable(concepts, func(i, j int) bool { return less(concepts[i], concepts[j]) })
		routes = append(routes, Route{Name: alt.name, Concepts: concepts})
	}

	return routes, cycles
}
