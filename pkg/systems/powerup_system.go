package systems

import (
	"log"
	"time"

	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

// powerUpWindow 一个生效中的倍率道具
type powerUpWindow struct {
	handle   game.TimerHandle
	deadline time.Duration
	restore  int // 窗口打开时捕获的倍率，到期时无条件恢复
}

// PowerUpSystem 限时道具窗口
//
// 每种道具同时只有一个窗口：再次激活同类道具会取消旧的到期回调并从现在重新计时，
// 恢复值保留窗口第一次打开时捕获的倍率。
//
// 不同类型的窗口各自恢复自己捕获的倍率，重叠且乱序到期时会覆盖彼此的翻倍效果。
// 这是保留下来的已知行为。
type PowerUpSystem struct {
	scheduler *game.Scheduler
	combo     *game.ComboState
	presenter game.Presenter
	countdown *CountdownSystem
	duration  time.Duration
	windows   map[types.TargetType]*powerUpWindow
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(sched *game.Scheduler, combo *game.ComboState, presenter game.Presenter, countdown *CountdownSystem, duration time.Duration) *PowerUpSystem {
	return &PowerUpSystem{
		scheduler: sched,
		combo:     combo,
		presenter: presenter,
		countdown: countdown,
		duration:  duration,
		windows:   make(map[types.TargetType]*powerUpWindow),
	}
}

// ActivateMultiplier 倍率翻倍（ScoreMultiplier / PrecisionMode）
func (s *PowerUpSystem) ActivateMultiplier(kind types.TargetType) {
	w, exists := s.windows[kind]
	if exists {
		s.scheduler.Cancel(w.handle)
	} else {
		w = &powerUpWindow{restore: s.combo.Multiplier}
		s.windows[kind] = w
	}

	s.combo.Multiplier *= 2
	s.presenter.UpdateComboDisplay(s.combo.Count, s.combo.Multiplier)

	w.deadline = s.scheduler.Now() + s.duration
	w.handle = s.scheduler.After(s.duration, func() { s.expire(kind) })

	if kind == types.TargetPrecisionMode && !exists {
		s.setPrecision(true)
	}
	log.Printf("[PowerUpSystem] %s active, multiplier=%d (restore to %d)", kind, s.combo.Multiplier, w.restore)
}

// ActivateTimeFreeze 冻结倒计时
func (s *PowerUpSystem) ActivateTimeFreeze() {
	s.countdown.Freeze(s.duration)
}

func (s *PowerUpSystem) expire(kind types.TargetType) {
	w, ok := s.windows[kind]
	if !ok {
		return
	}
	delete(s.windows, kind)

	s.combo.Multiplier = w.restore
	s.presenter.UpdateComboDisplay(s.combo.Count, s.combo.Multiplier)

	if kind == types.TargetPrecisionMode {
		s.setPrecision(false)
	}
	log.Printf("[PowerUpSystem] %s expired, multiplier restored to %d", kind, w.restore)
}

// PrecisionActive 精准模式是否生效
func (s *PowerUpSystem) PrecisionActive() bool {
	_, ok := s.windows[types.TargetPrecisionMode]
	return ok
}

// IsActive 指定类型的道具是否生效
func (s *PowerUpSystem) IsActive(kind types.TargetType) bool {
	if kind == types.TargetTimeFreeze {
		return s.countdown.IsFrozen()
	}
	_, ok := s.windows[kind]
	return ok
}

// Remaining 返回倍率道具剩余时间，未生效返回 0
func (s *PowerUpSystem) Remaining(kind types.TargetType) time.Duration {
	w, ok := s.windows[kind]
	if !ok {
		return 0
	}
	return w.deadline - s.scheduler.Now()
}

// Reset 关闭全部窗口且不恢复倍率（开局与结算时调用）
func (s *PowerUpSystem) Reset() {
	_, hadPrecision := s.windows[types.TargetPrecisionMode]
	for kind, w := range s.windows {
		s.scheduler.Cancel(w.handle)
		delete(s.windows, kind)
	}
	if hadPrecision {
		s.setPrecision(false)
	}
}

func (s *PowerUpSystem) setPrecision(active bool) {
	if p, ok := s.presenter.(game.PrecisionPresenter); ok {
		p.SetPrecisionMode(active)
	}
}
