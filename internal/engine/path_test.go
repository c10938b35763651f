package engine

import (
	"testing"

	"concept_edu_backend/internal/model"
)

// assertTopological 校验序列中每个概念的前置都严格出现在它之前
func assertTopological(t *testing.T, g *Graph, seq []DecoratedConcept) {
	t.Helper()
	pos := make(map[string]int, len(seq))
	for i, dc := range seq {
		pos[dc.ID] = i
	}
	for _, dc := range seq {
		for _, p := range g.PrerequisiteIDs(dc.ID) {
			pi, ok := pos[p]
			if !ok {
				t.Errorf("prerequisite %s of %s missing from sequence", p, dc.ID)
				continue
			}
			if pi >= pos[dc.ID] {
				t.Errorf("prerequisite %s appears at %d, after %s at %d", p, pi, dc.ID, pos[dc.ID])
			}
		}
	}
}

func TestSequentialPathChain(t *testing.T) {
	g := chainGraph()
	seq, cycles := g.SequentialPath(Ledger{})

	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if len(seq) != 3 {
		t.Fatalf("sequence length = %d, want 3", len(seq))
	}
	assertTopological(t, g, seq)

	// A→B→C 链上只有 A 解锁
	for _, dc := range seq {
		wantLocked := dc.ID != "A"
		if dc.IsLocked != wantLocked {
			t.Errorf("concept %s locked = %v, want %v", dc.ID, dc.IsLocked, wantLocked)
		}
	}
}

func TestSequentialPathDiamond(t *testing.T) {
	// A → {B, C} → D 菱形依赖合法，D 只输出一次
	g := NewGraph([]model.Concept{
		concept("D", model.DifficultyHard, 90, "B", "C"),
		concept("B", model.DifficultyMedium, 60, "A"),
		concept("C", model.DifficultyMedium, 45, "A"),
		concept("A", model.DifficultyEasy, 30),
	})

	seq, cycles := g.SequentialPath(Ledger{})
	if len(cycles) != 0 {
		t.Fatalf("unexpected cycles: %v", cycles)
	}
	if len(seq) != 4 {
		t.Fatalf("sequence length = %d, want 4 (each concept exactly once)", len(seq))
	}
	assertTopological(t, g, seq)
}

func TestSequentialPathDeterministic(t *testing.T) {
	build := func() *Graph {
		return NewGraph([]model.Concept{
			concept("A", model.DifficultyEasy, 30),
			concept("B", model.DifficultyMedium, 60, "A"),
			concept("C", model.DifficultyMedium, 45, "A"),
			concept("D", model.DifficultyHard, 90, "B", "C"),
		})
	}

	first, _ := build().SequentialPath(Ledger{})
	second, _ := build().SequentialPath(Ledger{})

	if len(first) != len(second) {
		t.Fatal("sequence lengths differ between identical runs")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("position %d differs: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestSequentialPathCycleDiagnostic(t *testing.T) {
	// A → B → A 成环：跳过重入但必须上报
	g := NewGraph([]model.Concept{
		concept("A", model.DifficultyEasy, 30, "B"),
		concept("B", model.DifficultyMedium, 60, "A"),
	})

	seq, cycles := g.SequentialPath(Ledger{})
	if len(cycles) == 0 {
		t.Fatal("cycle silently swallowed, expected a diagnostic")
	}
	if len(seq) != 2 {
		t.Errorf("sequence length = %d, want 2 (traversal continues past the cycle)", len(seq))
	}
	if cycles[0].String() == "" {
		t.Error("diagnostic has no description")
	}
}

func TestDecoration(t *testing.T) {
	g := chainGraph()
	ledger := Ledger{
		"A": completedRecord("A"),
		"B": {ConceptID: "B", Status: model.MasteryInProgress, Score: 0.45},
	}

	seq, _ := g.SequentialPath(ledger)
	byID := make(map[string]DecoratedConcept, len(seq))
	for _, dc := range seq {
		byID[dc.ID] = dc
	}

	a := byID["A"]
	if !a.IsCompleted || a.IsLocked {
		t.Errorf("A decorated as completed=%v locked=%v", a.IsCompleted, a.IsLocked)
	}
	if a.Complexity != 1 {
		t.Errorf("easy concept complexity = %d, want 1", a.Complexity)
	}
	if a.MasteryScore != 9.0 {
		t.Errorf("A masteryScore = %.1f, want 9.0 on the 0-10 display scale", a.MasteryScore)
	}

	b := byID["B"]
	if b.IsCompleted || b.IsLocked {
		t.Errorf("B decorated as completed=%v locked=%v", b.IsCompleted, b.IsLocked)
	}
	if b.MasteryScore != 4.5 {
		t.Errorf("B masteryScore = %.1f, want 4.5", b.MasteryScore)
	}
	if b.EstimatedHours != 1.0 {
		t.Errorf("B estimatedHours = %.1f, want 1.0", b.EstimatedHours)
	}

	c := byID["C"]
	if c.Complexity != 5 {
		t.Errorf("hard concept complexity = %d, want 5", c.Complexity)
	}
	if c.Status != model.MasteryNotStarted {
		t.Errorf("C status = %s, want not_started for missing ledger entry", c.Status)
	}
}
