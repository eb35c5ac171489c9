package systems

import (
	"math/rand"
	"time"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
)

// recordingPresenter 记录表现层调用
type recordingPresenter struct {
	area      game.PlayArea
	rendered  []game.TargetView
	removed   []ecs.EntityID
	score     int
	lives     int
	timeLeft  int
	combo     int
	mult      int
	precision []bool
	sounds    []game.Sound
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{area: game.PlayArea{
		Width:   config.PlayAreaWidth,
		Height:  config.PlayAreaHeight,
		TopBand: config.HUDBandHeight,
	}}
}

func (p *recordingPresenter) RenderTarget(t game.TargetView) { p.rendered = append(p.rendered, t) }
func (p *recordingPresenter) RemoveTarget(id ecs.EntityID) { p.removed = append(p.removed, id) }
func (p *recordingPresenter) UpdateScoreDisplay(score int) { p.score = score }
func (p *recordingPresenter) UpdateLivesDisplay(lives int) { p.lives = lives }
func (p *recordingPresenter) UpdateTimeDisplay(seconds int) { p.timeLeft = seconds }
func (p *recordingPresenter) UpdateComboDisplay(count, mult int) { p.combo, p.mult = count, mult }
func (p *recordingPresenter) ShowScreen(game.Screen, game.Result) {}
func (p *recordingPresenter) PlayArea() game.PlayArea { return p.area }
func (p *recordingPresenter) SetPrecisionMode(active bool) { p.precision = append(p.precision, active) }
func (p *recordingPresenter) PlaySound(s game.Sound) { p.sounds = append(p.sounds, s) }

// world 组装一套完整的系统，便于测试
type world struct {
	cfg       *config.GameConfig
	em        *ecs.EntityManager
	sched     *game.Scheduler
	queue     *game.EventQueue
	state     *game.SessionState
	timing    *game.TimingState
	combo     *game.ComboState
	presenter *recordingPresenter

	lifetime  *LifetimeSystem
	countdown *CountdownSystem
	score     *ScoreSystem
	powerUps  *PowerUpSystem
	spawn     *TargetSpawnSystem
	input     *InputSystem
	effects   *EffectSystem

	timeUp   int
	depleted int
}

func newWorld(seed int64) *world {
	cfg := config.DefaultGameConfig()
	w := &world{
		cfg:       cfg,
		em:        ecs.NewEntityManager(),
		sched:     game.NewScheduler(),
		queue:     &game.EventQueue{},
		timing:    game.NewTimingState(cfg.Timing),
		combo:     game.NewComboState(cfg.ComboWindow(), cfg.Combo.Step),
		presenter: newRecordingPresenter(),
		state: &game.SessionState{
			Phase:    game.PhaseActive,
			Lives:    cfg.InitialLives,
			MaxLives: cfg.MaxLives,
			TimeLeft: cfg.SessionSeconds,
		},
	}

	w.lifetime = NewLifetimeSystem(w.em, w.sched, w.presenter)
	w.countdown = NewCountdownSystem(w.sched, w.state, w.timing, w.presenter, cfg.SessionSeconds)
	w.countdown.SetOnTimeUp(func() { w.timeUp++ })
	w.score = NewScoreSystem(w.sched, w.state, w.combo, w.presenter)
	w.powerUps = NewPowerUpSystem(w.sched, w.combo, w.presenter, w.countdown, cfg.PowerUpDuration())
	w.spawn = NewTargetSpawnSystem(w.em, w.sched, w.state, w.timing, w.presenter, w.lifetime, w.powerUps, cfg.Spawn, rand.New(rand.NewSource(seed)))
	w.input = NewInputSystem(w.em, w.queue)
	w.effects = NewEffectSystem(w.em, w.queue, w.state, w.score, w.powerUps, w.lifetime, w.presenter)
	w.effects.SetOnLivesDepleted(func() { w.depleted++ })
	return w
}

// activate 激活目标并立即结算
func (w *world) activate(id ecs.EntityID) {
	w.input.Activate(id)
	w.effects.Update()
}

func (w *world) advance(d time.Duration) {
	w.sched.Advance(d)
	w.effects.Update()
}
