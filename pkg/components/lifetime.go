package components

import "time"

// LifetimeComponent 管理目标的生命周期
// 用于在存在时间超过上限后自动移除目标（不触发任何效果）
type LifetimeComponent struct {
	MaxLifetime time.Duration // 生成时捕获的 currentTargetDuration，之后不再重读
	ExpiresAt   time.Duration // 过期时刻（调度器时钟）
	IsExpired   bool          // 是否已过期
}
