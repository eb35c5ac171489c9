package systems

import (
	"log"
	"time"

	"github.com/decker502/clicktarget/pkg/game"
)

const tickInterval = time.Second

// CountdownSystem 倒计时与难度推进（Clock）
//
// 每经过一个活跃且未冻结的秒 tick 一次：剩余时间 -1，
// 按已活跃秒数计算进度并重新插值难度。冻结期间不 tick，也不计入进度。
type CountdownSystem struct {
	scheduler *game.Scheduler
	state     *game.SessionState
	timing    *game.TimingState
	presenter game.Presenter

	totalSeconds   int
	elapsedSeconds int // 已活跃秒数（冻结时间不计）

	running        bool
	tickHandle     game.TimerHandle
	tickDeadline   time.Duration
	tickRemaining  time.Duration // 冻结时距下一次 tick 的剩余时间
	unfreezeHandle game.TimerHandle

	onTimeUp func()
}

// NewCountdownSystem 创建倒计时系统
func NewCountdownSystem(sched *game.Scheduler, state *game.SessionState, timing *game.TimingState, presenter game.Presenter, totalSeconds int) *CountdownSystem {
	return &CountdownSystem{
		scheduler:    sched,
		state:        state,
		timing:       timing,
		presenter:    presenter,
		totalSeconds: totalSeconds,
	}
}

// SetOnTimeUp 设置剩余时间归零时的回调（由 Session 结束本局）
func (s *CountdownSystem) SetOnTimeUp(fn func()) {
	s.onTimeUp = fn
}

// Start 开始倒计时，第一次 tick 在 1 秒后
func (s *CountdownSystem) Start() {
	s.Stop()
	s.elapsedSeconds = 0
	s.running = true
	s.scheduleTick(tickInterval)
}

// Stop 停止倒计时并取消未执行的 tick 与解冻回调
func (s *CountdownSystem) Stop() {
	s.scheduler.Cancel(s.tickHandle)
	s.scheduler.Cancel(s.unfreezeHandle)
	s.tickHandle = 0
	s.unfreezeHandle = 0
	s.running = false
}

// Freeze 冻结倒计时 d
//
// 难度切换到初始值，暂停 tick；已冻结时重新从现在开始计时，不叠加冻结时长。
// 冻结前已流逝的不足一秒部分在解冻后继续计算，因此 tick 恰好推迟 d。
func (s *CountdownSystem) Freeze(d time.Duration) {
	if !s.running || !s.state.IsActive() {
		return
	}

	if !s.timing.Frozen {
		s.tickRemaining = s.tickDeadline - s.scheduler.Now()
		s.scheduler.Cancel(s.tickHandle)
		s.tickHandle = 0
	}
	s.timing.Freeze()

	s.scheduler.Cancel(s.unfreezeHandle)
	s.unfreezeHandle = s.scheduler.After(d, s.Unfreeze)
	log.Printf("[CountdownSystem] Frozen for %v (timeLeft=%d)", d, s.state.TimeLeft)
}

// Unfreeze 恢复冻结前的难度并继续 tick（仅当本局仍在进行）
func (s *CountdownSystem) Unfreeze() {
	if !s.timing.Frozen {
		return
	}
	s.scheduler.Cancel(s.unfreezeHandle)
	s.unfreezeHandle = 0
	s.timing.Unfreeze()

	if s.running && s.state.IsActive() {
		s.scheduleTick(s.tickRemaining)
	}
	log.Printf("[CountdownSystem] Unfrozen (timeLeft=%d)", s.state.TimeLeft)
}

// IsFrozen 是否处于冻结中
func (s *CountdownSystem) IsFrozen() bool {
	return s.timing.Frozen
}

// Progress 返回难度进度 [0,1]
func (s *CountdownSystem) Progress() float64 {
	if s.totalSeconds <= 0 {
		return 1
	}
	return clamp01(float64(s.elapsedSeconds) / float64(s.totalSeconds))
}

func (s *CountdownSystem) scheduleTick(d time.Duration) {
	s.tickDeadline = s.scheduler.Now() + d
	s.tickHandle = s.scheduler.After(d, s.tick)
}

func (s *CountdownSystem) tick() {
	s.tickHandle = 0
	if !s.running || !s.state.IsActive() || s.timing.Frozen {
		return
	}

	if s.state.TimeLeft > 0 {
		s.state.TimeLeft--
	}
	s.elapsedSeconds++
	s.timing.Apply(s.Progress())
	s.presenter.UpdateTimeDisplay(s.state.TimeLeft)

	if s.state.TimeLeft <= 0 {
		log.Printf("[CountdownSystem] Time up")
		s.running = false
		if s.onTimeUp != nil {
			s.onTimeUp()
		}
		return
	}
	s.scheduleTick(tickInterval)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
