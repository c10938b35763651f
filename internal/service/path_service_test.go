package service

import (
	"encoding/json"
	"testing"
	"time"

	"concept_edu_backend/internal/engine"
	"concept_edu_backend/internal/model"
)

func decorated(id string) engine.DecoratedConcept {
	return engine.DecoratedConcept{ID: id, Title: id, Complexity: 1}
}

func TestNewPathRecordResetsSelectedRoute(t *testing.T) {
	canonical := []engine.DecoratedConcept{decorated("A"), decorated("B")}
	alternates := []engine.Route{
		{Name: engine.RouteEasyFirst, Concepts: []engine.DecoratedConcept{decorated("B"), decorated("A")}},
	}

	record, err := newPathRecord(7, "course-1", canonical, alternates, time.Now())
	if err != nil {
		t.Fatalf("newPathRecord: %v", err)
	}

	// 重新生成的快照整条覆盖旧行，旧的路线选择不得遗留
	if record.SelectedRoute != 0 {
		t.Errorf("selectedRoute = %d, want 0 after regeneration", record.SelectedRoute)
	}
	if record.PathType != model.PathTypeCourse {
		t.Errorf("pathType = %s, want course", record.PathType)
	}

	var storedPath []engine.DecoratedConcept
	if err := json.Unmarshal([]byte(record.GeneratedPath), &storedPath); err != nil {
		t.Fatalf("generatedPath not valid JSON: %v", err)
	}
	if len(storedPath) != 2 || storedPath[0].ID != "A" || storedPath[1].ID != "B" {
		t.Errorf("generatedPath = %v, want canonical order A,B", storedPath)
	}

	var storedAlts []engine.Route
	if err := json.Unmarshal([]byte(record.AlternativeRoutes), &storedAlts); err != nil {
		t.Fatalf("alternativeRoutes not valid JSON: %v", err)
	}
	if len(storedAlts) != 1 || storedAlts[0].Name != engine.RouteEasyFirst {
		t.Errorf("alternativeRoutes = %v, want one Easy First route", storedAlts)
	}
}

func TestNewPathRecordWithoutAlternates(t *testing.T) {
	record, err := newPathRecord(7, "course-1", []engine.DecoratedConcept{decorated("A")}, nil, time.Now())
	if err != nil {
		t.Fatalf("newPathRecord: %v", err)
	}
	if record.AlternativeRoutes != "[]" {
		t.Errorf("alternativeRoutes = %q, want empty JSON array", record.AlternativeRoutes)
	}
}
