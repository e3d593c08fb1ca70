package systems

import "testing"

// TestInputBoxRect 测试输入框位于画面底部居中
func TestInputBoxRect(t *testing.T) {
	x, y, w, h := InputBoxRect(800, 600)
	if x != 240 || y != 524 || w != 320 || h != 64 {
		t.Errorf("InputBoxRect = (%v, %v, %v, %v), want (240, 524, 320, 64)", x, y, w, h)
	}
}
