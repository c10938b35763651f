package service

import (
	"math"
	"testing"

	"concept_edu_backend/internal/model"
)

func question(id string, qt model.QuestionType, answer string, points int) model.ConceptQuizQuestion {
	return model.ConceptQuizQuestion{ID: id, Type: qt, Answer: answer, Points: points}
}

func TestGrade(t *testing.T) {
	questions := []model.ConceptQuizQuestion{
		question("q1", model.QSingleChoice, "B", 2),
		question("q2", model.QTrueFalse, "true", 1),
		question("q3", model.QFillIn, "pointer", 1),
	}

	tests := []struct {
		name        string
		answers     map[string]string
		wantScore   float64
		wantCorrect int
	}{
		{
			name:        "all correct",
			answers:     map[string]string{"q1": "B", "q2": "true", "q3": "pointer"},
			wantScore:   1.0,
			wantCorrect: 3,
		},
		{
			name:        "points weighted",
			answers:     map[string]string{"q1": "B"},
			wantScore:   0.5,
			wantCorrect: 1,
		},
		{
			name:        "fill in is case insensitive",
			answers:     map[string]string{"q3": "Pointer"},
			wantScore:   0.25,
			wantCorrect: 1,
		},
		{
			name:        "choice answers are case sensitive",
			answers:     map[string]string{"q1": "b"},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "whitespace trimmed",
			answers:     map[string]string{"q2": " true "},
			wantScore:   0.25,
			wantCorrect: 1,
		},
		{
			name:        "empty submission",
			answers:     map[string]string{},
			wantScore:   0,
			wantCorrect: 0,
		},
		{
			name:        "unknown question ids ignored",
			answers:     map[string]string{"q9": "B"},
			wantScore:   0,
			wantCorrect: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, correct := grade(questions, tt.answers)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", score, tt.wantScore)
			}
			if correct != tt.wantCorrect {
				t.Errorf("correct = %d, want %d", correct, tt.wantCorrect)
			}
		})
	}
}

func TestGradeZeroPointQuestionsCountAsOne(t *testing.T) {
	questions := []model.ConceptQuizQuestion{
		question("q1", model.QSingleChoice, "A", 0),
		question("q2", model.QSingleChoice, "B", 0),
	}
	score, correct := grade(questions, map[string]string{"q1": "A"})
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("score = %v, want 0.5", score)
	}
	if correct != 1 {
		t.Errorf("correct = %d, want 1", correct)
	}
}

func TestGradeNoQuestions(t *testing.T) {
	score, correct := grade(nil, map[string]string{"q1": "A"})
	if score != 0 || correct != 0 {
		t.Errorf("got (%v, %d), want (0, 0)", score, correct)
	}
}
