package engine

import (
	"time"

	"concept_edu_backend/internal/model"
)

type Action string

const (
	ActionDescriptionRead Action = "mark_description_read"
	ActionVideoWatched    Action = "mark_video_watched"
	ActionQuizCompleted   Action = "quiz_completed"
)

// MaxFailedAttempts 连续失败达到该次数触发反刷题回退
const MaxFailedAttempts = 3

// 两条打分路径各自的掌握线，历史上并存，不做统一（见 DESIGN.md）
const (
	BestScoreMasteryThreshold      = 0.75
	RunningAverageMasteryThreshold = 0.70
)

// Event 一次离散的进度事件
type Event struct {
	Action    Action  `json:"action"`
	WatchTime int     `json:"watchTime"` // 秒，仅 mark_video_watched
	Score     float64 `json:"score"`     // 0-1，仅 quiz_completed
	Passed    bool    `json:"passed"`    // 仅 quiz_completed
}

type UpdateResult struct {
	NewlyMastered bool `json:"newlyMastered"`
	Demoted       bool `json:"demoted"`
	Regressed     bool `json:"regressed"`
}

// ScoringPolicy 合并新分数并裁决掌握状态
// 两种实现语义不同，调用方按接入点显式选择，不得静默混用
type ScoringPolicy interface {
	Name() string
	Threshold() float64
	Apply(rec *model.MasteryRecord, score float64, passed bool, now time.Time) (newlyMastered, demoted bool)
}

// BestScorePolicy 取最优成绩：分数只升不降，已获得的掌握不会被该路径撤销
type BestScorePolicy struct {
	MasteryThreshold float64
}

func NewBestScorePolicy() *BestScorePolicy {
	return &BestScorePolicy{MasteryThreshold: BestScoreMasteryThreshold}
}

func (p *BestScorePolicy) Name() string { return "best_score" }

func (p *BestScorePolicy) Threshold() float64 { return p.MasteryThreshold }

func (p *BestScorePolicy) Apply(rec *model.MasteryRecord, score float64, passed bool, now time.Time) (bool, bool) {
	if score > rec.Score {
		rec.Score = score
	}
	if passed && rec.Score >= p.MasteryThreshold && !rec.Mastered {
		promote(rec, now)
		return true, false
	}
	return false, false
}

// RunningAveragePolicy 滑动平均：新旧分数取均值，低于线无条件降级（即使已掌握）
type RunningAveragePolicy struct {
	MasteryThreshold float64
}

func NewRunningAveragePolicy() *RunningAveragePolicy {
	return &RunningAveragePolicy{MasteryThreshold: RunningAverageMasteryThreshold}
}

func (p *RunningAveragePolicy) Name() string { return "running_average" }

func (p *RunningAveragePolicy) Threshold() float64 { return p.MasteryThreshold }

func (p *RunningAveragePolicy) Apply(rec *model.MasteryRecord, score float64, passed bool, now time.Time) (bool, bool) {
	avg := (rec.Score + score) / 2
	if avg > 1 {
		avg = 1
	}
	rec.Score = avg

	if avg >= p.MasteryThreshold {
		if !rec.Mastered {
			promote(rec, now)
			return true, false
		}
		return false, false
	}
	if rec.Mastered {
		rec.Mastered = false
		rec.MasteredAt = nil
		rec.Status = model.MasteryInProgress
		return false, true
	}
	return false, false
}

func promote(rec *model.MasteryRecord, now time.Time) {
	rec.Mastered = true
	rec.MasteredAt = &now
	rec.QuizPassed = true
	rec.Status = model.MasteryCompleted
}

// StateMachine 驱动单条台账的状态迁移
// not_started → in_progress → completed，外加 failedAttempts 触发的回退
type StateMachine struct {
	policy      ScoringPolicy
	maxFailures int
}

func NewStateMachine(policy ScoringPolicy) *StateMachine {
	return &StateMachine{policy: policy, maxFailures: MaxFailedAttempts}
}

// NewStateMachineWithLimit 指定回退阈值，非正值回落到默认值
func NewStateMachineWithLimit(policy ScoringPolicy, maxFailures int) *StateMachine {
	if maxFailures <= 0 {
		maxFailures = MaxFailedAttempts
	}
	return &StateMachine{policy: policy, maxFailures: maxFailures}
}

func (m *StateMachine) Policy() ScoringPolicy { return m.policy }

// Apply 在副本上完成全部迁移后才写回，未知动作直接拒绝、不产生半写
func (m *StateMachine) Apply(rec *model.MasteryRecord, ev Event, now time.Time) (UpdateResult, error) {
	cp := *rec
	var res UpdateResult

	switch ev.Action {
	case ActionDescriptionRead:
		cp.DescriptionRead = true
		if cp.Status == model.MasteryNotStarted {
			cp.Status = model.MasteryInProgress
		}

	case ActionVideoWatched:
		cp.VideoWatched = true
		cp.TimeSpent += ev.WatchTime
		if cp.Status == model.MasteryNotStarted {
			cp.Status = model.MasteryInProgress
		}

	case ActionQuizCompleted:
		cp.Attempts++
		if cp.Status == model.MasteryNotStarted {
			cp.Status = model.MasteryInProgress
		}
		res.NewlyMastered, res.Demoted = m.policy.Apply(&cp, ClampUnit(ev.Score), ev.Passed, now)
		if ev.Passed {
			cp.QuizPassed = true
			cp.FailedAttempts = 0
		} else {
			cp.FailedAttempts++
			if cp.FailedAttempts >= m.maxFailures {
				// 反刷题回退：清空内容步骤标记，逼迫重新学习内容
				// attempts 继续累计；已获得的 mastered 不在此路径撤销
				cp.DescriptionRead = false
				cp.VideoWatched = false
				cp.QuizPassed = false
				cp.Status = model.MasteryInProgress
				res.Regressed = true
			}
		}

	default:
		return UpdateResult{}, ErrInvalidAction
	}

	cp.LastUpdated = now
	*rec = cp
	return res, nil
}
