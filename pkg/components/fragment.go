package components

// MotionVariant 碎片运动方式
// 0~2 为带垂直摆动的曲线运动，3~5 为直线运动
type MotionVariant int

// MotionVariantCount 运动方式总数
const MotionVariantCount = 6

// HasWobble 是否带垂直方向的正弦摆动
func (m MotionVariant) HasWobble() bool {
	return m >= 0 && m <= 2
}

// Fragment 出题文字的一个碎片粒子
//
// 所有字段在创建后不再修改，渲染位置只由经过时间决定
// （见 systems.FragmentPositionAt）
type Fragment struct {
	OriginX, OriginY float64 // 基准位置（画面坐标）

	Radius     float64 // 半径
	ColorAlpha float64 // 基础不透明度 0.1 ~ 0.3
	Direction  float64 // 飞行方向（弧度）0 ~ 2π
	Speed      float64 // 飞行速度（像素/秒）

	Motion MotionVariant
}
