package entities

import (
	"time"

	"github.com/decker502/clicktarget/pkg/components"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/types"
)

// TargetSpec 创建目标实体所需的参数
type TargetSpec struct {
	Type     types.TargetType
	X, Y     float64       // 占地方块左上角
	Size     float64       // 占地直径
	Enhanced bool          // 精准模式期间生成
	Now      time.Duration // 生成时刻（调度器时钟）
	Lifetime time.Duration // 存活时长，生成时捕获
}

// NewTargetEntity 创建一个目标实体
// 参数:
//   - manager: EntityManager 实例
//   - spec: 目标参数
//
// 返回: 创建的实体ID
func NewTargetEntity(manager *ecs.EntityManager, spec TargetSpec) ecs.EntityID {
	id := manager.CreateEntity()

	ecs.AddComponent(manager, id, &components.TargetComponent{
		Type:      spec.Type,
		SpawnTime: spec.Now,
		Enhanced:  spec.Enhanced,
	})

	ecs.AddComponent(manager, id, &components.PositionComponent{
		X: spec.X,
		Y: spec.Y,
	})

	ecs.AddComponent(manager, id, &components.FootprintComponent{
		Size: spec.Size,
	})

	ecs.AddComponent(manager, id, &components.LifetimeComponent{
		MaxLifetime: spec.Lifetime,
		ExpiresAt:   spec.Now + spec.Lifetime,
		IsExpired:   false,
	})

	// 点击区域与占地一致
	ecs.AddComponent(manager, id, &components.ClickableComponent{
		Width:     spec.Size,
		Height:    spec.Size,
		IsEnabled: true,
	})

	return id
}
