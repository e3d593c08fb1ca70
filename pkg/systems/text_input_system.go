package systems

import (
	"log"
	"unicode/utf8"

	"github.com/decker502/mikiri/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/exp/textinput"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// cursorBlinkInterval 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// KeyboardInput 键盘和输入法输入
//
// 实现 PlayerInput：
//   - 确认键为 Enter / 小键盘 Enter
//   - 文字输入通过 exp/textinput 接收，支持输入法的未确定文本
//   - 输入法没有处理的编辑键（退格、删除、方向键、Home/End）由本系统处理
type KeyboardInput struct {
	field textinput.Field
	state *components.TextInputComponent

	// 输入法候选窗口位置（画面坐标）
	imeX, imeY int
}

// NewKeyboardInput 创建键盘输入
//
// 参数：
//   - maxLength: 答案最大字符数（0 = 无限制）
func NewKeyboardInput(maxLength int) *KeyboardInput {
	return &KeyboardInput{
		state: &components.TextInputComponent{
			MaxLength: maxLength,
		},
	}
}

// State 输入框状态（供 TextInputRenderSystem 绘制）
func (k *KeyboardInput) State() *components.TextInputComponent {
	return k.state
}

// SetIMEPosition 设置输入法候选窗口位置
func (k *KeyboardInput) SetIMEPosition(x, y int) {
	k.imeX, k.imeY = x, y
}

// ConfirmJustPressed 本帧是否按下确认键
func (k *KeyboardInput) ConfirmJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
}

// EditingText 输入法正在编辑的文本
// 返回上一次 UpdateText 时的状态，确认键提交输入法文本的那一帧仍视为编辑中
func (k *KeyboardInput) EditingText() string {
	return k.state.Composition
}

// UpdateText 把本帧输入应用到答案上
func (k *KeyboardInput) UpdateText(committed string) string {
	input := k.state

	// 答案被外部清空（新回合）时同步到输入框
	if committed != input.Text || !k.field.IsFocused() {
		input.Text = committed
		input.CursorPosition = len(committed)
		input.Composition = ""
		k.field.SetTextAndSelection(committed, len(committed), len(committed))
		k.field.Focus()
		input.IsFocused = true
	}

	handled, err := k.field.HandleInput(k.imeX, k.imeY)
	if err != nil {
		log.Printf("[TextInput] Warning: input handling failed: %v", err)
	}

	if handled {
		input.Text = k.field.Text()
		input.CursorPosition, _ = k.field.Selection()
		input.Composition = compositionOf(k.field.TextForRendering(), input.CursorPosition, k.field.UncommittedTextLengthInBytes())
		resetCursorBlink(input)
	} else {
		input.Composition = ""
		if k.handleEditKeys(input) {
			k.field.SetTextAndSelection(input.Text, input.CursorPosition, input.CursorPosition)
			resetCursorBlink(input)
		}
	}

	if truncateToMaxLength(input) {
		k.field.SetTextAndSelection(input.Text, input.CursorPosition, input.CursorPosition)
	}

	return input.Text
}

// Blur 离开输入阶段时取消焦点，关闭输入法
func (k *KeyboardInput) Blur() {
	k.field.Blur()
	k.state.IsFocused = false
	k.state.Composition = ""
	k.state.CursorVisible = false
}

// Reset 清空答案和光标，新回合开始时调用
// 输入框在第一次 UpdateText 之前也不会显示上一回合的答案
func (k *KeyboardInput) Reset() {
	k.state.Text = ""
	k.state.Composition = ""
	k.state.CursorPosition = 0
}

// UpdateCursorBlink 更新光标闪烁状态
func (k *KeyboardInput) UpdateCursorBlink(deltaTime float64) {
	updateCursorBlink(k.state, deltaTime)
}

// handleEditKeys 处理编辑键，返回文本或光标是否改变
// 使用 KeyPressDuration 支持按住连续删除/移动
func (k *KeyboardInput) handleEditKeys(input *components.TextInputComponent) bool {
	changed := false

	if isRepeating(ebiten.KeyBackspace) {
		changed = deleteCharBefore(input) || changed
	}
	if isRepeating(ebiten.KeyDelete) {
		changed = deleteCharAfter(input) || changed
	}
	if isRepeating(ebiten.KeyArrowLeft) {
		changed = moveCursorLeft(input) || changed
	}
	if isRepeating(ebiten.KeyArrowRight) {
		changed = moveCursorRight(input) || changed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		input.CursorPosition = 0
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		input.CursorPosition = len(input.Text)
		changed = true
	}

	return changed
}

// isRepeating 第 1 帧立即响应，按住 30 帧后每 3 帧响应一次
func isRepeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// compositionOf 从渲染文本中取出输入法未确定的部分
// 未确定文本插入在光标位置
func compositionOf(rendering string, cursor, length int) string {
	if length <= 0 || cursor < 0 || cursor+length > len(rendering) {
		return ""
	}
	return rendering[cursor : cursor+length]
}

// updateCursorBlink 更新光标闪烁状态
func updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	if !input.IsFocused {
		input.CursorVisible = false
		return
	}

	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= cursorBlinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// resetCursorBlink 输入时光标应该可见
func resetCursorBlink(input *components.TextInputComponent) {
	input.CursorBlinkTimer = 0
	input.CursorVisible = true
}

// deleteCharBefore 删除光标前的字符（退格）
func deleteCharBefore(input *components.TextInputComponent) bool {
	if input.CursorPosition <= 0 {
		return false // 光标在开头，无法删除
	}

	_, size := utf8.DecodeLastRuneInString(input.Text[:input.CursorPosition])
	input.Text = input.Text[:input.CursorPosition-size] + input.Text[input.CursorPosition:]
	input.CursorPosition -= size
	return true
}

// deleteCharAfter 删除光标后的字符（Delete 键）
func deleteCharAfter(input *components.TextInputComponent) bool {
	if input.CursorPosition >= len(input.Text) {
		return false // 光标在结尾，无法删除
	}

	_, size := utf8.DecodeRuneInString(input.Text[input.CursorPosition:])
	input.Text = input.Text[:input.CursorPosition] + input.Text[input.CursorPosition+size:]
	// 光标位置不变
	return true
}

// moveCursorLeft 光标左移一个字符
func moveCursorLeft(input *components.TextInputComponent) bool {
	if input.CursorPosition <= 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(input.Text[:input.CursorPosition])
	input.CursorPosition -= size
	return true
}

// moveCursorRight 光标右移一个字符
func moveCursorRight(input *components.TextInputComponent) bool {
	if input.CursorPosition >= len(input.Text) {
		return false
	}
	_, size := utf8.DecodeRuneInString(input.Text[input.CursorPosition:])
	input.CursorPosition += size
	return true
}

// truncateToMaxLength 超过最大字符数时截断，返回是否截断
func truncateToMaxLength(input *components.TextInputComponent) bool {
	if input.MaxLength <= 0 || utf8.RuneCountInString(input.Text) <= input.MaxLength {
		return false
	}

	end := 0
	for i := 0; i < input.MaxLength; i++ {
		_, size := utf8.DecodeRuneInString(input.Text[end:])
		end += size
	}
	input.Text = input.Text[:end]
	if input.CursorPosition > end {
		input.CursorPosition = end
	}
	log.Printf("[TextInput] 达到最大长度限制 (%d 字符)", input.MaxLength)
	return true
}
