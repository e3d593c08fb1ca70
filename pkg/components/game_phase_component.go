package components

// GamePhase 游戏阶段
//
// 阶段流转：
//
//	Title → QuestionAnnounce → Countdown → Judging → Reveal → Countdown（下一题）
//	                                                        ↘ GameOver → Countdown（重新开始）
type GamePhase int

const (
	// PhaseTitle 标题画面
	PhaseTitle GamePhase = iota
	// PhaseQuestionAnnounce 显示"第 N 问"
	PhaseQuestionAnnounce
	// PhaseCountdown 碎片飞行中，玩家输入答案
	PhaseCountdown
	// PhaseJudging 判定演出（○/×）
	PhaseJudging
	// PhaseReveal 显示正确答案
	PhaseReveal
	// PhaseGameOver 结算画面
	PhaseGameOver
)

// String 返回阶段名称（用于日志）
func (p GamePhase) String() string {
	switch p {
	case PhaseTitle:
		return "Title"
	case PhaseQuestionAnnounce:
		return "QuestionAnnounce"
	case PhaseCountdown:
		return "Countdown"
	case PhaseJudging:
		return "Judging"
	case PhaseReveal:
		return "Reveal"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
