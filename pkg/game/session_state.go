package game

// Phase 一局游戏所处阶段
type Phase int

const (
	// PhaseIdle 尚未开始（标题界面）
	PhaseIdle Phase = iota
	// PhaseActive 进行中
	PhaseActive
	// PhaseEnded 已结束（结算界面），可重开
	PhaseEnded
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SessionState 一局游戏的计分状态
type SessionState struct {
	Phase    Phase
	Score    int
	Lives    int
	MaxLives int
	TimeLeft int // 剩余秒数
}

// IsActive 是否处于进行中
func (s *SessionState) IsActive() bool {
	return s.Phase == PhaseActive
}

// Result 结算信息
type Result struct {
	FinalScore int
	BestScore  int
	NewBest    bool // 本局刷新了最高分
}
