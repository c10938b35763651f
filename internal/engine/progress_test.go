package engine

import (
	"testing"
	"time"

	"concept_edu_backend/internal/model"
)

func TestAggregateProgressZeroConcepts(t *testing.T) {
	g := NewGraph(nil)
	snap := AggregateProgress(g, Ledger{}, model.Enrolled, nil, time.Now())

	if snap.OverallProgress != 0 {
		t.Errorf("overallProgress = %d, want 0 for empty course", snap.OverallProgress)
	}
	if snap.Status != model.Enrolled {
		t.Errorf("status = %s, want enrolled unchanged", snap.Status)
	}
}

func TestAggregateProgressRounding(t *testing.T) {
	g := chainGraph()

	tests := []struct {
		name         string
		ledger       Ledger
		wantProgress int
		wantStatus   model.EnrollmentStatus
	}{
		{"no completions stays enrolled", Ledger{}, 0, model.Enrolled},
		{"one of three rounds to 33", Ledger{"A": completedRecord("A")}, 33, model.CourseInProgress},
		{"two of three rounds to 67", Ledger{"A": completedRecord("A"), "B": completedRecord("B")}, 67, model.CourseInProgress},
		{
			"all complete",
			Ledger{"A": completedRecord("A"), "B": completedRecord("B"), "C": completedRecord("C")},
			100,
			model.CourseCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := AggregateProgress(g, tt.ledger, model.Enrolled, nil, time.Now())
			if snap.OverallProgress != tt.wantProgress {
				t.Errorf("overallProgress = %d, want %d", snap.OverallProgress, tt.wantProgress)
			}
			if snap.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", snap.Status, tt.wantStatus)
			}
		})
	}
}

func TestAggregateProgressIdempotent(t *testing.T) {
	g := chainGraph()
	ledger := Ledger{"A": completedRecord("A"), "B": completedRecord("B")}
	now := time.Now()

	first := AggregateProgress(g, ledger, model.Enrolled, nil, now)
	second := AggregateProgress(g, ledger, model.Enrolled, nil, now)

	if first != second {
		t.Errorf("recompute not idempotent: %+v vs %+v", first, second)
	}
}

func TestAggregateProgressStampsCompletedAtOnce(t *testing.T) {
	g := chainGraph()
	ledger := Ledger{"A": completedRecord("A"), "B": completedRecord("B"), "C": completedRecord("C")}

	first := AggregateProgress(g, ledger, model.CourseInProgress, nil, time.Now())
	if first.CompletedAt == nil {
		t.Fatal("completedAt not stamped on completion")
	}

	later := AggregateProgress(g, ledger, first.Status, first.CompletedAt, time.Now().Add(time.Hour))
	if !later.CompletedAt.Equal(*first.CompletedAt) {
		t.Error("completedAt overwritten on recompute")
	}
}

func TestAggregateProgressCountsMasteredEntries(t *testing.T) {
	g := chainGraph()
	// mastered 标志与 completed 状态等价计入
	ledger := Ledger{"A": {ConceptID: "A", Mastered: true, Status: model.MasteryInProgress, Score: 0.8}}

	snap := AggregateProgress(g, ledger, model.Enrolled, nil, time.Now())
	if snap.ConceptsCompleted != 1 {
		t.Errorf("conceptsCompleted = %d, want 1", snap.ConceptsCompleted)
	}
}
