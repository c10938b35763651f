package engine

import "math"

// 引擎内部统一使用 0-1 归一化分数
// 各展示刻度（0-100 百分比、0-10 展示值）只在边界转换

func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ToPercent 0-1 → 0-100 整数百分比
func ToPercent(v float64) int {
	return int(math.Round(ClampUnit(v) * 100))
}

// FromPercent 0-100 → 0-1
func FromPercent(p float64) float64 {
	return ClampUnit(p / 100)
}

// ToDisplayScale 0-1 → 0-10 展示刻度，保留一位小数
func ToDisplayScale(v float64) float64 {
	return math.Round(ClampUnit(v)*100) / 10
}
