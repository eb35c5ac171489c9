package systems

import (
	"github.com/decker502/clicktarget/pkg/game"
)

// ScoreSystem 连击与计分引擎
type ScoreSystem struct {
	scheduler *game.Scheduler
	state     *game.SessionState
	combo     *game.ComboState
	presenter game.Presenter
}

// NewScoreSystem 创建计分系统
func NewScoreSystem(sched *game.Scheduler, state *game.SessionState, combo *game.ComboState, presenter game.Presenter) *ScoreSystem {
	return &ScoreSystem{
		scheduler: sched,
		state:     state,
		combo:     combo,
		presenter: presenter,
	}
}

// RegisterHit 以当前调度器时刻记录一次命中
func (s *ScoreSystem) RegisterHit() {
	s.combo.RegisterHit(s.scheduler.Now())
	s.pushCombo()
}

// AddScore 加分：base × 当前倍率
func (s *ScoreSystem) AddScore(base int) {
	s.state.Score += base * s.combo.Multiplier
	s.presenter.UpdateScoreDisplay(s.state.Score)
}

// BreakCombo 清空连击与倍率
func (s *ScoreSystem) BreakCombo() {
	s.combo.Break()
	s.pushCombo()
}

// LoseLife 扣一条命，返回是否已无生命
func (s *ScoreSystem) LoseLife() bool {
	if s.state.Lives > 0 {
		s.state.Lives--
	}
	s.presenter.UpdateLivesDisplay(s.state.Lives)
	return s.state.Lives <= 0
}

// GainLife 生命未满时 +1，返回是否实际增加
func (s *ScoreSystem) GainLife() bool {
	if s.state.Lives >= s.state.MaxLives {
		return false
	}
	s.state.Lives++
	s.presenter.UpdateLivesDisplay(s.state.Lives)
	return true
}

// PushAll 把全部计分状态推送到表现层（开局时调用）
func (s *ScoreSystem) PushAll() {
	s.presenter.UpdateScoreDisplay(s.state.Score)
	s.presenter.UpdateLivesDisplay(s.state.Lives)
	s.presenter.UpdateTimeDisplay(s.state.TimeLeft)
	s.pushCombo()
}

func (s *ScoreSystem) pushCombo() {
	s.presenter.UpdateComboDisplay(s.combo.Count, s.combo.Multiplier)
}
