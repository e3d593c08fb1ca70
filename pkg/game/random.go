package game

import (
	"math/rand/v2"
	"time"
)

// RandomSource 随机数来源
// 碎片生成和出题共用同一个来源，测试时注入固定种子即可复现
type RandomSource interface {
	// Float64 返回 [0, 1) 的随机数
	Float64() float64
	// IntN 返回 [0, n) 的随机整数
	IntN(n int) int
}

// NewRandomSource 创建随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
