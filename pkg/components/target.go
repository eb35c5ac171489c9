package components

import (
	"time"

	"github.com/decker502/clicktarget/pkg/types"
)

// TargetComponent 标记实体为可点击目标，并存储目标特定的状态
type TargetComponent struct {
	Type      types.TargetType // 目标类型
	SpawnTime time.Duration    // 生成时刻（调度器时钟）
	Enhanced  bool             // 是否在精准模式期间生成（占地已放大）
}
