package utils

import (
	"math"
	"testing"
)

// TestPeriodicRange 测试周期函数的值域
func TestPeriodicRange(t *testing.T) {
	funcs := map[string]func(period, t float64) float64{
		"Sine0_1":   Sine0_1,
		"Square0_1": Square0_1,
		"Jump0_1":   Jump0_1,
	}

	for name, f := range funcs {
		t.Run(name, func(t *testing.T) {
			for tm := -3.0; tm < 3.0; tm += 0.013 {
				v := f(0.8, tm)
				if v < 0 || v > 1 {
					t.Fatalf("%s(0.8, %v) = %v, 超出 [0, 1]", name, tm, v)
				}
			}
		})
	}
}

// TestPeriodicValues 测试特征点
func TestPeriodicValues(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"Sine 起点", Sine0_1(1, 0), 0.5},
		{"Sine 四分之一", Sine0_1(1, 0.25), 1},
		{"Sine 四分之三", Sine0_1(1, 0.75), 0},
		{"Square 前半", Square0_1(0.1, 0.02), 1},
		{"Square 后半", Square0_1(0.1, 0.07), 0},
		{"Jump 起点", Jump0_1(0.8, 0), 0},
		{"Jump 中点", Jump0_1(0.8, 0.4), 1},
		{"Jump 下一周期", Jump0_1(0.8, 1.2), 1},
		{"零周期", Sine0_1(0, 5), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("got %v, 期望 %v", tt.got, tt.want)
			}
		})
	}
}
