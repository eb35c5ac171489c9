package game

import (
	"time"

	"github.com/decker502/clicktarget/pkg/config"
)

// TimingState 难度曲线状态
//
// 当前生成间隔与目标存活时长在初始值（最简单）与最终值之间线性插值。
// 冻结期间当前值固定为初始值；解冻后恢复冻结前的插值结果，
// 冻结时长不计入难度进度。
type TimingState struct {
	InitialSpawnInterval  time.Duration
	FinalSpawnInterval    time.Duration
	InitialTargetDuration time.Duration
	FinalTargetDuration   time.Duration

	SpawnInterval  time.Duration // 当前生成间隔
	TargetDuration time.Duration // 当前目标存活时长

	Frozen bool

	savedSpawnInterval  time.Duration
	savedTargetDuration time.Duration
}

// NewTimingState 根据配置创建难度曲线，当前值为初始值
func NewTimingState(cfg config.TimingConfig) *TimingState {
	ts := &TimingState{
		InitialSpawnInterval:  time.Duration(cfg.InitialSpawnIntervalMs) * time.Millisecond,
		FinalSpawnInterval:    time.Duration(cfg.FinalSpawnIntervalMs) * time.Millisecond,
		InitialTargetDuration: time.Duration(cfg.InitialTargetDurationMs) * time.Millisecond,
		FinalTargetDuration:   time.Duration(cfg.FinalTargetDurationMs) * time.Millisecond,
	}
	ts.Reset()
	return ts
}

// Reset 恢复到开局状态
func (ts *TimingState) Reset() {
	ts.SpawnInterval = ts.InitialSpawnInterval
	ts.TargetDuration = ts.InitialTargetDuration
	ts.Frozen = false
	ts.savedSpawnInterval = 0
	ts.savedTargetDuration = 0
}

// Apply 按进度 progress ∈ [0,1] 重新插值
// 冻结期间只更新冻结前保存的值，当前值保持初始值
func (ts *TimingState) Apply(progress float64) {
	progress = clamp01(progress)
	interval := lerpDuration(ts.InitialSpawnInterval, ts.FinalSpawnInterval, progress)
	duration := lerpDuration(ts.InitialTargetDuration, ts.FinalTargetDuration, progress)

	if ts.Frozen {
		ts.savedSpawnInterval = interval
		ts.savedTargetDuration = duration
		return
	}
	ts.SpawnInterval = interval
	ts.TargetDuration = duration
}

// Freeze 保存当前值并切换到初始值
// 已冻结时再次调用不覆盖保存的值
func (ts *TimingState) Freeze() {
	if !ts.Frozen {
		ts.savedSpawnInterval = ts.SpawnInterval
		ts.savedTargetDuration = ts.TargetDuration
		ts.Frozen = true
	}
	ts.SpawnInterval = ts.InitialSpawnInterval
	ts.TargetDuration = ts.InitialTargetDuration
}

// Unfreeze 恢复冻结前的值
func (ts *TimingState) Unfreeze() {
	if !ts.Frozen {
		return
	}
	ts.SpawnInterval = ts.savedSpawnInterval
	ts.TargetDuration = ts.savedTargetDuration
	ts.Frozen = false
}

func lerpDuration(from, to time.Duration, t float64) time.Duration {
	return from + time.Duration(float64(to-from)*t)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
