package engine

import (
	"sort"
	"testing"

	"concept_edu_backend/internal/model"
)

func routesGraph() *Graph {
	return NewGraph([]model.Concept{
		concept("A", model.DifficultyHard, 120),
		concept("B", model.DifficultyEasy, 30, "A"),
		concept("C", model.DifficultyMedium, 60, "A"),
		concept("D", model.DifficultyEasy, 15, "B", "C"),
	})
}

func TestAlternativeRoutesShape(t *testing.T) {
	g := routesGraph()
	routes, cycles := g.AlternativeRoutes(Ledger{})

	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if len(routes) != 1+MaxAlternativeRoutes {
		t.Fatalf("route count = %d, want %d", len(routes), 1+MaxAlternativeRoutes)
	}
	if routes[0].Name != RouteRecommended {
		t.Errorf("route 0 = %q, want %q", routes[0].Name, RouteRecommended)
	}

	wantNames := []string{RouteRecommended, RouteEasyFirst, RouteTimeOptimized, RouteMasteryFocused}
	for i, want := range wantNames {
		if routes[i].Name != want {
			t.Errorf("route %d = %q, want %q", i, routes[i].Name, want)
		}
		if len(routes[i].Concepts) != g.Len() {
			t.Errorf("route %q has %d concepts, want %d", routes[i].Name, len(routes[i].Concepts), g.Len())
		}
	}
}

func TestRecommendedRouteIsTopological(t *testing.T) {
	g := routesGraph()
	routes, _ := g.AlternativeRoutes(Ledger{})
	assertTopological(t, g, routes[0].Concepts)
}

func TestEasyFirstOrdering(t *testing.T) {
	g := routesGraph()
	routes, _ := g.AlternativeRoutes(Ledger{})

	var easyFirst []DecoratedConcept
	for _, r := range routes {
		if r.Name == RouteEasyFirst {
			easyFirst = r.Concepts
		}
	}
	if !sort.SliceIsSorted(easyFirst, func(i, j int) bool {
		return easyFirst[i].Complexity < easyFirst[j].Complexity
	}) {
		t.Error("Easy First route not sorted by complexity ascending")
	}
}

func TestTimeOptimizedOrdering(t *testing.T) {
	g := routesGraph()
	routes, _ := g.AlternativeRoutes(Ledger{})

	var timeOpt []DecoratedConcept
	for _, r := range routes {
		if r.Name == RouteTimeOptimized {
			timeOpt = r.Concepts
		}
	}
	if !sort.SliceIsSorted(timeOpt, func(i, j int) bool {
		return timeOpt[i].EstimatedHours < timeOpt[j].EstimatedHours
	}) {
		t.Error("Time Optimized route not sorted by estimated hours ascending")
	}
}

func TestMasteryFocusedOrdering(t *testing.T) {
	g := routesGraph()
	ledger := Ledger{
		"A": {ConceptID: "A", Status: model.MasteryCompleted, Mastered: true, Score: 0.9},
		"B": {ConceptID: "B", Status: model.MasteryInProgress, Score: 0.3},
		"C": {ConceptID: "C", Status: model.MasteryInProgress, Score: 0.6},
	}

	routes, _ := g.AlternativeRoutes(ledger)
	var focused []DecoratedConcept
	for _, r := range routes {
		if r.Name == RouteMasteryFocused {
			focused = r.Concepts
		}
	}

	// 最薄弱的在最前面：D（无台账 0）、B（3.0）、C（6.0）、A（9.0）
	wantOrder := []string{"D", "B", "C", "A"}
	for i, want := range wantOrder {
		if focused[i].ID != want {
			t.Fatalf("mastery-focused position %d = %s, want %s", i, focused[i].ID, want)
		}
	}
}

func TestRoutesShareLedgerSnapshot(t *testing.T) {
	g := routesGraph()
	ledger := Ledger{"A": completedRecord("A")}

	routes, _ := g.AlternativeRoutes(ledger)
	for _, r := range routes {
		for _, dc := range r.Concepts {
			if dc.ID == "A" && !dc.IsCompleted {
				t.Errorf("route %q lost A's completion decoration", r.Name)
			}
			if dc.ID == "D" && !dc.IsLocked {
				t.Errorf("route %q shows D unlocked, prerequisites incomplete", r.Name)
			}
		}
	}
}
