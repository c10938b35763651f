package engine

import (
	"testing"
	"time"

	"concept_edu_backend/internal/model"
)

func concept(id string, diff model.Difficulty, minutes int, prereqs ...string) model.Concept {
	c := model.Concept{
		ID:               id,
		Title:            "Concept " + id,
		Difficulty:       diff,
		EstimatedMinutes: minutes,
	}
	for i, p := range prereqs {
		c.Prerequisites = append(c.Prerequisites, model.ConceptPrerequisite{
			ConceptID:      id,
			PrerequisiteID: p,
			Order:          i,
		})
	}
	return c
}

func completedRecord(conceptID string) *model.MasteryRecord {
	now := time.Now()
	return &model.MasteryRecord{
		ConceptID:  conceptID,
		Status:     model.MasteryCompleted,
		Score:      0.9,
		Mastered:   true,
		MasteredAt: &now,
	}
}

func chainGraph() *Graph {
	// A → B → C
	return NewGraph([]model.Concept{
		concept("A", model.DifficultyEasy, 30),
		concept("B", model.DifficultyMedium, 60, "A"),
		concept("C", model.DifficultyHard, 90, "B"),
	})
}

func TestIsUnlocked(t *testing.T) {
	g := chainGraph()

	tests := []struct {
		name   string
		ledger Ledger
		want   map[string]bool
	}{
		{
			name:   "empty ledger only root unlocked",
			ledger: Ledger{},
			want:   map[string]bool{"A": true, "B": false, "C": false},
		},
		{
			name:   "A completed unlocks B but not C",
			ledger: Ledger{"A": completedRecord("A")},
			want:   map[string]bool{"A": true, "B": true, "C": false},
		},
		{
			name: "in-progress prerequisite does not unlock",
			ledger: Ledger{"A": {
				ConceptID: "A",
				Status:    model.MasteryInProgress,
				Score:     0.5,
			}},
			want: map[string]bool{"A": true, "B": false, "C": false},
		},
		{
			name:   "full chain completed unlocks everything",
			ledger: Ledger{"A": completedRecord("A"), "B": completedRecord("B")},
			want:   map[string]bool{"A": true, "B": true, "C": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for id, want := range tt.want {
				if got := g.IsUnlocked(id, tt.ledger); got != want {
					t.Errorf("IsUnlocked(%s) = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestIsUnlockedNoPartialCredit(t *testing.T) {
	// D 需要 A、B、C 三个前置，掌握两个仍然锁定
	g := NewGraph([]model.Concept{
		concept("A", model.DifficultyEasy, 30),
		concept("B", model.DifficultyEasy, 30),
		concept("C", model.DifficultyEasy, 30),
		concept("D", model.DifficultyHard, 120, "A", "B", "C"),
	})

	ledger := Ledger{"A": completedRecord("A"), "B": completedRecord("B")}
	if g.IsUnlocked("D", ledger) {
		t.Fatal("D unlocked with 2 of 3 prerequisites mastered")
	}

	ledger["C"] = completedRecord("C")
	if !g.IsUnlocked("D", ledger) {
		t.Fatal("D locked with all prerequisites mastered")
	}
}

func TestUnlockMonotonicity(t *testing.T) {
	g := chainGraph()

	ledger := Ledger{"A": completedRecord("A")}
	before := g.UnlockedSet(ledger)

	// 追加完成只增不减
	ledger["B"] = completedRecord("B")
	after := g.UnlockedSet(ledger)

	for id := range before {
		if !after[id] {
			t.Errorf("concept %s lost unlock after additional completion", id)
		}
	}
	if !after["C"] {
		t.Error("C should unlock once B is completed")
	}
}

func TestIsUnlockedUnknownConcept(t *testing.T) {
	g := chainGraph()
	if g.IsUnlocked("Z", Ledger{}) {
		t.Error("unknown concept reported as unlocked")
	}
}

func TestDanglingPrerequisiteIgnored(t *testing.T) {
	// B 声明了一个图外前置，悬挂边不参与判定
	g := NewGraph([]model.Concept{
		concept("A", model.DifficultyEasy, 30),
		concept("B", model.DifficultyMedium, 60, "A", "ghost"),
	})

	if !g.IsUnlocked("B", Ledger{"A": completedRecord("A")}) {
		t.Error("dangling prerequisite edge should not lock B")
	}
}
