package engine

import (
	"math"
	"time"

	"concept_edu_backend/internal/model"
)

// ProgressSnapshot 课程维度的进度汇总，台账快照的纯函数
type ProgressSnapshot struct {
	Status            model.EnrollmentStatus `json:"status"`
	ConceptsCompleted int                    `json:"conceptsCompleted"`
	TotalConcepts     int                    `json:"totalConcepts"`
	OverallProgress   int                    `json:"overallProgress"` // 0-100
	CompletedAt       *time.Time             `json:"completedAt"`
}

// AggregateProgress 重算课程进度，幂等：同一快照重复调用结果一致
// totalConcepts == 0 时进度为 0，不报错
func AggregateProgress(g *Graph, ledger Ledger, current model.EnrollmentStatus, completedAt *time.Time, now time.Time) ProgressSnapshot {
	total := g.Len()
	completed := 0
	for _, id := range g.order {
		if rec, ok := ledger[id]; ok && rec.Completed() {
			completed++
		}
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(completed) / float64(total) * 100))
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	snap := ProgressSnapshot{
		Status:            current,
		ConceptsCompleted: completed,
		TotalConcepts:     total,
		OverallProgress:   progress,
		CompletedAt:       completedAt,
	}

	switch {
	case progress >= 100 && total > 0:
		snap.Status = model.CourseCompleted
		if snap.CompletedAt == nil {
			snap.CompletedAt = &now
		}
	case progress > 0:
		if current == model.Enrolled || current == model.NotEnrolled {
			snap.Status = model.CourseInProgress
		}
	}
	return snap
}
