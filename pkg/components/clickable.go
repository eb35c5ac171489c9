package components

// ClickableComponent 标记实体可以被指针点击
// 定义了可点击区域的尺寸和是否启用点击
type ClickableComponent struct {
	Width     float64 // 可点击区域的宽度
	Height    float64 // 可点击区域的高度
	IsEnabled bool    // 是否可以被点击(用于禁用已点击的对象)
}

// Contains 判断点 (x, y) 是否落在以 (left, top) 为左上角的圆形点击区域内
func (c *ClickableComponent) Contains(left, top, x, y float64) bool {
	if !c.IsEnabled {
		return false
	}
	rx, ry := c.Width/2, c.Height/2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (x - (left + rx)) / rx
	dy := (y - (top + ry)) / ry
	return dx*dx+dy*dy <= 1
}
