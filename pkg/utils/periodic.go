package utils

import "math"

// 周期函数
// 参数 t 为当前时间（秒），period 为周期（秒），返回值 ∈ [0, 1]

// phase 返回 t 在周期内的位置 [0, 1)
func phase(period, t float64) float64 {
	if period <= 0 {
		return 0
	}
	p := math.Mod(t, period) / period
	if p < 0 {
		p += 1
	}
	return p
}

// Sine0_1 正弦波，t=0 时为 0.5
func Sine0_1(period, t float64) float64 {
	return math.Sin(2*math.Pi*phase(period, t))*0.5 + 0.5
}

// Square0_1 方波，前半周期为 1，后半周期为 0
func Square0_1(period, t float64) float64 {
	if phase(period, t) < 0.5 {
		return 1
	}
	return 0
}

// Jump0_1 跳跃波，每个周期内 0 → 1 → 0 的抛物线
func Jump0_1(period, t float64) float64 {
	x := 2*phase(period, t) - 1
	return 1 - x*x
}
