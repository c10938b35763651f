package engine

import "testing"

func TestScaleConversions(t *testing.T) {
	tests := []struct {
		in          float64
		wantPercent int
		wantDisplay float64
	}{
		{0, 0, 0},
		{0.45, 45, 4.5},
		{0.754, 75, 7.5},
		{1, 100, 10},
		{1.3, 100, 10},  // 越界截断
		{-0.2, 0, 0},
	}

	for _, tt := range tests {
		if got := ToPercent(tt.in); got != tt.wantPercent {
			t.Errorf("ToPercent(%v) = %d, want %d", tt.in, got, tt.wantPercent)
		}
		if got := ToDisplayScale(tt.in); got != tt.wantDisplay {
			t.Errorf("ToDisplayScale(%v) = %v, want %v", tt.in, got, tt.wantDisplay)
		}
	}
}

func TestFromPercent(t *testing.T) {
	if got := FromPercent(80); got != 0.8 {
		t.Errorf("FromPercent(80) = %v, want 0.8", got)
	}
	if got := FromPercent(130); got != 1.0 {
		t.Errorf("FromPercent(130) = %v, want 1.0", got)
	}
}
