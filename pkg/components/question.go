package components

// Question 一道题目
type Question struct {
	// Character 玩家需要回答的汉字（单个字符）
	Character string

	// PreRollOffset 倒计时开始时回合时钟的初始值（负数，秒）
	// 玩家第一次看到画面时碎片已经飞行了一段时间
	PreRollOffset float64
}
