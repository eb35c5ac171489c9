package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/entities"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

// precisionSource 报告精准模式是否生效
type precisionSource interface {
	PrecisionActive() bool
}

// TargetSpawnSystem 管理目标的定时生成（Spawner）
//
// 每个周期结束时重新读取当前生成间隔，难度提升后生成逐渐加快。
type TargetSpawnSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	state         *game.SessionState
	timing        *game.TimingState
	presenter     game.Presenter
	lifetime      *LifetimeSystem
	precision     precisionSource
	cfg           config.SpawnConfig
	rng           *rand.Rand

	running bool
	handle  game.TimerHandle
}

// NewTargetSpawnSystem 创建一个新的目标生成系统
// 参数:
//   - rng: 随机源；测试中传入固定种子以获得确定的结果
func NewTargetSpawnSystem(em *ecs.EntityManager, sched *game.Scheduler, state *game.SessionState, timing *game.TimingState,
	presenter game.Presenter, lifetime *LifetimeSystem, precision precisionSource, cfg config.SpawnConfig, rng *rand.Rand) *TargetSpawnSystem {
	return &TargetSpawnSystem{
		entityManager: em,
		scheduler:     sched,
		state:         state,
		timing:        timing,
		presenter:     presenter,
		lifetime:      lifetime,
		precision:     precision,
		cfg:           cfg,
		rng:           rng,
	}
}

// Start 开始生成循环，第一个周期立即执行
func (s *TargetSpawnSystem) Start() {
	s.Stop()
	s.running = true
	s.cycle()
}

// Stop 停止生成循环
func (s *TargetSpawnSystem) Stop() {
	s.scheduler.Cancel(s.handle)
	s.handle = 0
	s.running = false
}

func (s *TargetSpawnSystem) cycle() {
	s.handle = 0
	if !s.running || !s.state.IsActive() {
		return
	}
	s.SpawnOnce()
	s.handle = s.scheduler.After(s.timing.SpawnInterval, s.cycle)
}

// SpawnOnce 执行一次抽奖并尝试放置目标
// 抽奖落空或找不到位置时返回 false（静默跳过）
func (s *TargetSpawnSystem) SpawnOnce() (ecs.EntityID, bool) {
	targetType := DrawTargetType(s.cfg.Weights, s.rng.Float64(), s.state.Lives, s.cfg.ExtraLifeBelowLife)
	if targetType == types.TargetUnknown {
		return 0, false
	}
	return s.Place(targetType)
}

// Place 为指定类型寻找不重叠的位置并创建目标
func (s *TargetSpawnSystem) Place(targetType types.TargetType) (ecs.EntityID, bool) {
	enhanced := s.precision != nil && s.precision.PrecisionActive()
	size := FootprintSize(s.cfg, targetType, enhanced)

	x, y, ok := s.findPosition(size)
	if !ok {
		log.Printf("[TargetSpawnSystem] No free position for %s (size=%.0f) after %d attempts, skipping",
			targetType, size, s.cfg.MaxAttempts)
		return 0, false
	}

	now := s.scheduler.Now()
	id := entities.NewTargetEntity(s.entityManager, entities.TargetSpec{
		Type:     targetType,
		X:        x,
		Y:        y,
		Size:     size,
		Enhanced: enhanced,
		Now:      now,
		Lifetime: s.timing.TargetDuration,
	})
	s.lifetime.Track(id)

	s.presenter.RenderTarget(game.TargetView{
		ID:       id,
		Type:     targetType,
		X:        x,
		Y:        y,
		Size:     size,
		Enhanced: enhanced,
	})
	return id, true
}

// findPosition 在游戏区域内均匀采样，返回第一个不与存活目标重叠的位置
func (s *TargetSpawnSystem) findPosition(size float64) (float64, float64, bool) {
	area := s.presenter.PlayArea()
	minX, minY, maxX, maxY := config.GetSpawnBounds(area.Width, area.Height, area.TopBand, size)
	if maxX <= minX || maxY <= minY {
		return 0, 0, false
	}

	candidate := &components.FootprintComponent{Size: size}
	live := ecs.GetEntitiesWith2[*components.PositionComponent, *components.FootprintComponent](s.entityManager)

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		pos := &components.PositionComponent{
			X: minX + s.rng.Float64()*(maxX-minX),
			Y: minY + s.rng.Float64()*(maxY-minY),
		}
		if s.isPositionFree(pos, candidate, live) {
			return pos.X, pos.Y, true
		}
	}
	return 0, 0, false
}

func (s *TargetSpawnSystem) isPositionFree(pos *components.PositionComponent, fp *components.FootprintComponent, live []ecs.EntityID) bool {
	for _, id := range live {
		otherPos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}
		otherFp, ok := ecs.GetComponent[*components.FootprintComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if components.Overlaps(pos, fp, otherPos, otherFp) {
			return false
		}
	}
	return true
}

// weightBasis 权重精度（万分位）
const weightBasis = 10000

// DrawTargetType 将 [0,1) 内的随机数映射为目标类型
//
// 按权重表顺序累加区间；额外生命只在 lives < extraLifeBelow 时可选，
// 条件不满足时该区间本轮不生成任何目标。超出权重总和的部分同样不生成。
// 区间上界按万分位整数累加，避免浮点累加误差把边界值划入前一个区间。
func DrawTargetType(weights []config.SpawnWeight, u float64, lives, extraLifeBelow int) types.TargetType {
	cumulative := 0
	for _, w := range weights {
		cumulative += int(math.Round(w.Weight * weightBasis))
		if u < float64(cumulative)/weightBasis {
			if w.Type == types.TargetExtraLife && lives >= extraLifeBelow {
				return types.TargetUnknown
			}
			return w.Type
		}
	}
	return types.TargetUnknown
}

// FootprintSize 返回目标的占地直径
func FootprintSize(cfg config.SpawnConfig, targetType types.TargetType, precision bool) float64 {
	size := cfg.BaseSize
	if targetType == types.TargetGiant {
		size = cfg.GiantSize
	}
	if precision {
		size *= cfg.PrecisionScale
	}
	return size
}
