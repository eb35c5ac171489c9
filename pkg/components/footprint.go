package components

import "math"

// FootprintComponent 目标的圆形占地
// Size 为直径，与表现层 renderTarget 的 size 参数一致
type FootprintComponent struct {
	Size float64
}

// Radius 返回占地半径
func (f *FootprintComponent) Radius() float64 {
	return f.Size / 2
}

// Center 返回以 pos 为左上角时的圆心坐标
func (f *FootprintComponent) Center(pos *PositionComponent) (float64, float64) {
	return pos.X + f.Size/2, pos.Y + f.Size/2
}

// Overlaps 判断两个占地是否重叠：圆心距离 < 半径之和
// 恰好相切不算重叠
func Overlaps(posA *PositionComponent, a *FootprintComponent, posB *PositionComponent, b *FootprintComponent) bool {
	ax, ay := a.Center(posA)
	bx, by := b.Center(posB)
	return math.Hypot(ax-bx, ay-by) < (a.Size+b.Size)/2
}
