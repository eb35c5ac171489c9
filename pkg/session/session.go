// Package session 实现一局游戏的状态机（Idle → Active → Ended → Active）
//
// Session 持有本局全部可变状态和唯一的 Scheduler。
// 所有方法都必须在同一个 goroutine（游戏循环）上调用。
package session

import (
	"log"
	"math/rand"
	"time"

	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/systems"
)

// Session 一局游戏
type Session struct {
	cfg       *config.GameConfig
	presenter game.Presenter
	best      game.BestScoreStore

	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	queue         *game.EventQueue
	state         *game.SessionState
	timing        *game.TimingState
	combo         *game.ComboState

	lifetime  *systems.LifetimeSystem
	countdown *systems.CountdownSystem
	score     *systems.ScoreSystem
	powerUps  *systems.PowerUpSystem
	spawn     *systems.TargetSpawnSystem
	input     *systems.InputSystem
	effects   *systems.EffectSystem

	lastResult game.Result
	round      int
}

// New 创建一局处于 Idle 状态的游戏，并让表现层显示标题界面
// 参数:
//   - cfg: 调参配置，nil 时使用默认值
//   - presenter: 表现层
//   - best: 最高分存取，nil 时仅保存在内存
//   - rng: 随机源，nil 时以当前时间为种子
func New(cfg *config.GameConfig, presenter game.Presenter, best game.BestScoreStore, rng *rand.Rand) *Session {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if best == nil {
		best = &game.MemoryBestScore{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		cfg:           cfg,
		presenter:     presenter,
		best:          best,
		entityManager: ecs.NewEntityManager(),
		scheduler:     game.NewScheduler(),
		queue:         &game.EventQueue{},
		state: &game.SessionState{
			Phase:    game.PhaseIdle,
			Lives:    cfg.InitialLives,
			MaxLives: cfg.MaxLives,
			TimeLeft: cfg.SessionSeconds,
		},
		timing: game.NewTimingState(cfg.Timing),
		combo:  game.NewComboState(cfg.ComboWindow(), cfg.Combo.Step),
	}

	s.lifetime = systems.NewLifetimeSystem(s.entityManager, s.scheduler, presenter)
	s.countdown = systems.NewCountdownSystem(s.scheduler, s.state, s.timing, presenter, cfg.SessionSeconds)
	s.score = systems.NewScoreSystem(s.scheduler, s.state, s.combo, presenter)
	s.powerUps = systems.NewPowerUpSystem(s.scheduler, s.combo, presenter, s.countdown, cfg.PowerUpDuration())
	s.spawn = systems.NewTargetSpawnSystem(s.entityManager, s.scheduler, s.state, s.timing, presenter, s.lifetime, s.powerUps, cfg.Spawn, rng)
	s.input = systems.NewInputSystem(s.entityManager, s.queue)
	s.effects = systems.NewEffectSystem(s.entityManager, s.queue, s.state, s.score, s.powerUps, s.lifetime, presenter)

	s.countdown.SetOnTimeUp(s.End)
	s.effects.SetOnLivesDepleted(s.End)

	presenter.ShowScreen(game.ScreenIdle, game.Result{})
	return s
}

// Start 开始（或重开）一局
//
// 上一局的全部待执行回调与存活目标都会被清除，因此旧回调不会影响新的一局。
func (s *Session) Start() {
	s.scheduler.CancelAll()
	s.queue.Clear()
	s.powerUps.Reset()
	s.lifetime.RemoveAll()
	s.countdown.Stop()
	s.spawn.Stop()

	s.state.Score = 0
	s.state.Lives = s.cfg.InitialLives
	s.state.TimeLeft = s.cfg.SessionSeconds
	s.timing.Reset()
	s.combo.Reset()
	s.state.Phase = game.PhaseActive
	s.round++

	s.score.PushAll()
	s.presenter.ShowScreen(game.ScreenActive, game.Result{})

	s.spawn.Start()
	s.countdown.Start()
	log.Printf("[Session] Round %d started (lives=%d, time=%ds)", s.round, s.state.Lives, s.state.TimeLeft)
}

// End 结束本局；非 Active 状态下调用是空操作
func (s *Session) End() {
	if s.state.Phase != game.PhaseActive {
		return
	}
	s.state.Phase = game.PhaseEnded

	s.countdown.Stop()
	s.spawn.Stop()
	s.powerUps.Reset()
	s.scheduler.CancelAll()
	s.queue.Clear()
	s.lifetime.RemoveAll()

	result := game.Result{FinalScore: s.state.Score}
	result.BestScore, result.NewBest = s.recordBest(s.state.Score)
	s.lastResult = result

	s.presenter.ShowScreen(game.ScreenEnded, result)
	if p, ok := s.presenter.(game.SoundPresenter); ok {
		p.PlaySound(game.SoundGameOver)
	}
	log.Printf("[Session] Round %d ended: score=%d best=%d newBest=%v", s.round, result.FinalScore, result.BestScore, result.NewBest)
}

// recordBest 比较并更新最高分，每局只调用一次
func (s *Session) recordBest(score int) (int, bool) {
	if r, ok := s.best.(game.BestScoreRecorder); ok {
		return r.RecordScore(score)
	}
	best := s.best.GetBestScore()
	if score <= best {
		return best, false
	}
	s.best.SetBestScore(score)
	return score, true
}

// Update 推进 dt 秒（游戏循环每帧调用）
func (s *Session) Update(dt float64) {
	s.Advance(time.Duration(dt * float64(time.Second)))
}

// Advance 推进时钟 d，执行期间到期的全部回调
func (s *Session) Advance(d time.Duration) {
	s.effects.Update()
	s.scheduler.Advance(d)
	s.effects.Update()
}

// Pointer 处理一次指针点击（游戏区域逻辑坐标）
// 返回是否命中目标
func (s *Session) Pointer(x, y float64) bool {
	if _, ok := s.input.Pointer(x, y); !ok {
		return false
	}
	s.effects.Update()
	return true
}

// Activate 按 ID 激活目标
func (s *Session) Activate(id ecs.EntityID) bool {
	if !s.input.Activate(id) {
		return false
	}
	s.effects.Update()
	return true
}

// Phase 返回当前阶段
func (s *Session) Phase() game.Phase {
	return s.state.Phase
}

// IsActive 是否处于进行中
func (s *Session) IsActive() bool {
	return s.state.IsActive()
}

// LastResult 返回最近一局的结算信息
func (s *Session) LastResult() game.Result {
	return s.lastResult
}

// BestScore 返回当前最高分
func (s *Session) BestScore() int {
	return s.best.GetBestScore()
}

// PlayArea 返回表现层提供的游戏区域
func (s *Session) PlayArea() game.PlayArea {
	return s.presenter.PlayArea()
}

// Snapshot 本局状态的只读快照，供轮询式表现层与重连同步使用
type Snapshot struct {
	Phase      game.Phase
	Score      int
	Lives      int
	TimeLeft   int
	Combo      int
	Multiplier int
	Frozen     bool
	Precision  bool
	BestScore  int
	Result     game.Result
	Targets    []game.TargetView // 按生成顺序
}

// Snapshot 返回当前快照
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      s.state.Phase,
		Score:      s.state.Score,
		Lives:      s.state.Lives,
		TimeLeft:   s.state.TimeLeft,
		Combo:      s.combo.Count,
		Multiplier: s.combo.Multiplier,
		Frozen:     s.countdown.IsFrozen(),
		Precision:  s.powerUps.PrecisionActive(),
		BestScore:  s.best.GetBestScore(),
		Result:     s.lastResult,
	}

	ids := ecs.GetEntitiesWith3[*components.TargetComponent, *components.PositionComponent, *components.FootprintComponent](s.entityManager)
	snap.Targets = make([]game.TargetView, 0, len(ids))
	for _, id := range ids {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		fp, _ := ecs.GetComponent[*components.FootprintComponent](s.entityManager, id)
		snap.Targets = append(snap.Targets, game.TargetView{
			ID:       id,
			Type:     target.Type,
			X:        pos.X,
			Y:        pos.Y,
			Size:     fp.Size,
			Enhanced: target.Enhanced,
		})
	}
	return snap
}
