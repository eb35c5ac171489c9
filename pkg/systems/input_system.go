package systems

import (
	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
)

// InputSystem 把指针输入转换为激活事件
// 命中判定只负责入队，效果由 EffectSystem 处理
type InputSystem struct {
	entityManager *ecs.EntityManager
	queue         *game.EventQueue
}

// NewInputSystem 创建一个新的输入系统
func NewInputSystem(em *ecs.EntityManager, queue *game.EventQueue) *InputSystem {
	return &InputSystem{
		entityManager: em,
		queue:         queue,
	}
}

// Pointer 处理一次指针点击 (x, y)（游戏区域逻辑坐标）
// 多个目标重叠时取最后生成的（绘制在最上层）
func (s *InputSystem) Pointer(x, y float64) (ecs.EntityID, bool) {
	id, ok := s.HitTest(x, y)
	if !ok {
		return 0, false
	}
	s.queue.Push(game.ActivationEvent{Target: id})
	return id, true
}

// Activate 直接激活指定目标（浏览器/终端按 ID 上报点击时使用）
func (s *InputSystem) Activate(id ecs.EntityID) bool {
	click, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
	if !ok || !click.IsEnabled {
		return false
	}
	s.queue.Push(game.ActivationEvent{Target: id})
	return true
}

// HitTest 返回 (x, y) 处最上层的可点击目标
func (s *InputSystem) HitTest(x, y float64) (ecs.EntityID, bool) {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.ClickableComponent](s.entityManager)
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if click.Contains(pos.X, pos.Y, x, y) {
			return id, true
		}
	}
	return 0, false
}
