package components

// TextInputComponent 答案输入框状态
type TextInputComponent struct {
	// 输入框文本
	Text        string // 已确定的文本
	Composition string // 输入法正在编辑、尚未确定的文本

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字节偏移）

	// 输入限制
	MaxLength int // 最大字符数（0 = 无限制）

	// 焦点状态
	IsFocused bool // 是否获得焦点（接收键盘输入）
}
