package systems

import (
	"log"

	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

// 计分基数
const (
	regularPoints = 1
	giantPoints   = 5
)

// EffectSystem 目标效果结算（Resolver）
//
// 消费激活事件：本局进行中时按目标类型应用效果；无论是否进行中，目标都会被移除。
type EffectSystem struct {
	entityManager *ecs.EntityManager
	queue         *game.EventQueue
	state         *game.SessionState
	score         *ScoreSystem
	powerUps      *PowerUpSystem
	lifetime      *LifetimeSystem
	presenter     game.Presenter

	onLivesDepleted func()
}

// NewEffectSystem 创建效果结算系统
func NewEffectSystem(em *ecs.EntityManager, queue *game.EventQueue, state *game.SessionState, score *ScoreSystem,
	powerUps *PowerUpSystem, lifetime *LifetimeSystem, presenter game.Presenter) *EffectSystem {
	return &EffectSystem{
		entityManager: em,
		queue:         queue,
		state:         state,
		score:         score,
		powerUps:      powerUps,
		lifetime:      lifetime,
		presenter:     presenter,
	}
}

// SetOnLivesDepleted 设置生命归零时的回调（由 Session 结束本局）
func (s *EffectSystem) SetOnLivesDepleted(fn func()) {
	s.onLivesDepleted = fn
}

// Update 处理队列中的全部激活事件
func (s *EffectSystem) Update() {
	for _, e := range s.queue.Drain() {
		s.resolve(e.Target)
	}
}

func (s *EffectSystem) resolve(id ecs.EntityID) {
	target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	if !ok {
		// 已过期或已被激活
		return
	}
	targetType := target.Type

	if s.state.IsActive() {
		s.apply(targetType)
	}
	// 生命归零结束本局时目标已随清场移除
	s.lifetime.Release(id)
}

func (s *EffectSystem) apply(targetType types.TargetType) {
	switch targetType {
	case types.TargetRegular:
		s.score.RegisterHit()
		s.score.AddScore(regularPoints)
		s.playSound(game.SoundHit)

	case types.TargetGiant:
		s.score.RegisterHit()
		s.score.AddScore(giantPoints)
		s.playSound(game.SoundHit)

	case types.TargetBomb:
		depleted := s.score.LoseLife()
		s.score.BreakCombo()
		s.playSound(game.SoundBomb)
		if depleted {
			log.Printf("[EffectSystem] Lives depleted")
			if s.onLivesDepleted != nil {
				s.onLivesDepleted()
			}
		}

	case types.TargetScoreMultiplier:
		s.powerUps.ActivateMultiplier(types.TargetScoreMultiplier)
		s.playSound(game.SoundPowerUp)

	case types.TargetPrecisionMode:
		s.powerUps.ActivateMultiplier(types.TargetPrecisionMode)
		s.playSound(game.SoundPowerUp)

	case types.TargetTimeFreeze:
		s.score.RegisterHit()
		s.powerUps.ActivateTimeFreeze()
		s.playSound(game.SoundPowerUp)

	case types.TargetExtraLife:
		if s.score.GainLife() {
			s.playSound(game.SoundExtraLife)
		}

	default:
		log.Printf("[EffectSystem] Unknown target type %v", targetType)
	}
}

func (s *EffectSystem) playSound(sound game.Sound) {
	if p, ok := s.presenter.(game.SoundPresenter); ok {
		p.PlaySound(sound)
	}
}
