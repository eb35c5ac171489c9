package game

import (
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/types"
)

// Screen 界面
type Screen int

const (
	ScreenIdle   Screen = iota // 标题界面
	ScreenActive               // 游戏界面
	ScreenEnded                // 结算界面
)

// String 返回界面名称
func (s Screen) String() string {
	switch s {
	case ScreenIdle:
		return "idle"
	case ScreenActive:
		return "active"
	case ScreenEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PlayArea 游戏区域几何（逻辑坐标）
type PlayArea struct {
	Width   float64
	Height  float64
	TopBand float64 // 顶部 HUD 保留带，目标不会生成在这一带内
}

// TargetView 表现层渲染一个目标所需的信息
// X, Y 为占地方块左上角
type TargetView struct {
	ID       ecs.EntityID
	Type     types.TargetType
	X, Y     float64
	Size     float64
	Enhanced bool // 精准模式期间生成
}

// Presenter 表现层边界
//
// 核心逻辑只通过这些调用向外推送状态；所有调用都发生在游戏循环的 goroutine 上，
// 且总是在对应状态修改之后。
type Presenter interface {
	RenderTarget(t TargetView)
	RemoveTarget(id ecs.EntityID)
	UpdateScoreDisplay(score int)
	UpdateLivesDisplay(lives int)
	UpdateTimeDisplay(seconds int)
	UpdateComboDisplay(count, multiplier int)
	// ShowScreen 切换界面；result 仅在 ScreenEnded 时有意义
	ShowScreen(screen Screen, result Result)
	PlayArea() PlayArea
}

// BestScoreStore 最高分存取
// 读取失败时 GetBestScore 返回 0
type BestScoreStore interface {
	GetBestScore() int
	SetBestScore(n int)
}

// BestScoreRecorder 可选接口：比较并更新最高分作为一个原子操作
// 多局共享同一存储时，只有真正刷新纪录的那一局得到 isNew == true
type BestScoreRecorder interface {
	RecordScore(score int) (best int, isNew bool)
}

// PrecisionPresenter 可选接口：精准模式开启/关闭时整体变色
type PrecisionPresenter interface {
	SetPrecisionMode(active bool)
}

// SoundPresenter 可选接口：播放音效
type SoundPresenter interface {
	PlaySound(s Sound)
}

// Sound 音效种类
type Sound int

const (
	SoundHit Sound = iota
	SoundBomb
	SoundPowerUp
	SoundExtraLife
	SoundGameOver
)

// String 返回音效名称
func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundBomb:
		return "bomb"
	case SoundPowerUp:
		return "power-up"
	case SoundExtraLife:
		return "extra-life"
	case SoundGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// NopPresenter 什么都不做的表现层，用于无界面运行
type NopPresenter struct {
	Area PlayArea
}

func (NopPresenter) RenderTarget(TargetView) {}
func (NopPresenter) RemoveTarget(ecs.EntityID) {}
func (NopPresenter) UpdateScoreDisplay(int) {}
func (NopPresenter) UpdateLivesDisplay(int) {}
func (NopPresenter) UpdateTimeDisplay(int) {}
func (NopPresenter) UpdateComboDisplay(int, int) {}
func (NopPresenter) ShowScreen(Screen, Result) {}
func (p NopPresenter) PlayArea() PlayArea { return p.Area }

// MemoryBestScore 仅内存的最高分（降级模式）
type MemoryBestScore struct {
	best int
}

func (m *MemoryBestScore) GetBestScore() int { return m.best }
func (m *MemoryBestScore) SetBestScore(n int) { m.best = n }
