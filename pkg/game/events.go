package game

import "github.com/decker502/clicktarget/pkg/ecs"

// ActivationEvent 玩家激活（点击）了某个目标
type ActivationEvent struct {
	Target ecs.EntityID
}

// EventQueue 激活事件队列
// 输入侧只负责入队，目标效果由 EffectSystem 统一出队处理
type EventQueue struct {
	events []ActivationEvent
}

// Push 入队
func (q *EventQueue) Push(e ActivationEvent) {
	q.events = append(q.events, e)
}

// Drain 取出全部事件并清空队列
func (q *EventQueue) Drain() []ActivationEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len 返回待处理事件数
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Clear 丢弃全部待处理事件
func (q *EventQueue) Clear() {
	q.events = nil
}
