package systems

import (
	"log"

	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
)

// LifetimeSystem 管理目标的生命周期
//
// 每个目标在生成时登记一个到期回调；到期后目标被移除且不触发任何效果。
// 玩家先激活目标时由 Release 取消到期回调。
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *game.Scheduler
	presenter     game.Presenter
	expiries      map[ecs.EntityID]game.TimerHandle
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager, sched *game.Scheduler, presenter game.Presenter) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
		scheduler:     sched,
		presenter:     presenter,
		expiries:      make(map[ecs.EntityID]game.TimerHandle),
	}
}

// Track 为目标登记到期回调
// 到期时长使用 LifetimeComponent 中生成时捕获的值
func (s *LifetimeSystem) Track(id ecs.EntityID) {
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
	if !ok {
		return
	}
	if h, exists := s.expiries[id]; exists {
		s.scheduler.Cancel(h)
	}
	delay := lifetime.ExpiresAt - s.scheduler.Now()
	s.expiries[id] = s.scheduler.After(delay, func() { s.expire(id) })
}

// expire 到期回调
func (s *LifetimeSystem) expire(id ecs.EntityID) {
	delete(s.expiries, id)
	lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
	if !ok {
		return
	}
	lifetime.IsExpired = true
	s.remove(id)
}

// Release 移除一个存活目标并取消其到期回调
// 返回 false 表示目标已不存在
func (s *LifetimeSystem) Release(id ecs.EntityID) bool {
	if h, exists := s.expiries[id]; exists {
		s.scheduler.Cancel(h)
		delete(s.expiries, id)
	}
	if !ecs.HasComponent[*components.TargetComponent](s.entityManager, id) {
		return false
	}
	s.remove(id)
	return true
}

// RemoveAll 移除全部存活目标（开局与结算时调用）
func (s *LifetimeSystem) RemoveAll() {
	ids := ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager)
	for _, id := range ids {
		s.Release(id)
	}
	if len(ids) > 0 {
		log.Printf("[LifetimeSystem] Cleared %d live targets", len(ids))
	}
}

// LiveCount 返回存活目标数量
func (s *LifetimeSystem) LiveCount() int {
	return len(ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager))
}

// remove 先修改状态再通知表现层
// 删除立即生效：后续生成时的重叠检测只看存活目标
func (s *LifetimeSystem) remove(id ecs.EntityID) {
	if click, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id); ok {
		click.IsEnabled = false
	}
	s.entityManager.DestroyEntity(id)
	s.entityManager.RemoveMarkedEntities()
	s.presenter.RemoveTarget(id)
}
