package game

import "time"

// ComboState 连击与倍率
//
// Multiplier 在每次 RegisterHit 后都按 Count/Step+1 重新计算，
// 因此道具带来的翻倍会被下一次命中覆盖。
type ComboState struct {
	Count      int
	Multiplier int

	window  time.Duration
	step    int
	lastHit time.Duration
	hasHit  bool // 本局是否已有命中；首次命中总是走重置分支
}

// NewComboState 创建连击状态
func NewComboState(window time.Duration, step int) *ComboState {
	if step <= 0 {
		step = 1
	}
	return &ComboState{
		Multiplier: 1,
		window:     window,
		step:       step,
	}
}

// Reset 清空连击（开局时调用）
func (c *ComboState) Reset() {
	c.Count = 0
	c.Multiplier = 1
	c.lastHit = 0
	c.hasHit = false
}

// Break 炸弹：清零连击与倍率，不改变上次命中时刻
func (c *ComboState) Break() {
	c.Count = 0
	c.Multiplier = 1
}

// RegisterHit 记录一次命中
// 与上次命中间隔小于窗口则连击 +1，否则从 1 重新开始
func (c *ComboState) RegisterHit(now time.Duration) {
	if c.hasHit && now-c.lastHit < c.window {
		c.Count++
		c.Multiplier = c.Count/c.step + 1
	} else {
		c.Count = 1
		c.Multiplier = 1
	}
	c.lastHit = now
	c.hasHit = true
}

// IsActive 连击数大于 1 时界面高亮
func (c *ComboState) IsActive() bool {
	return c.Count > 1
}
