package components

// PositionComponent 存储目标占地方块的左上角坐标（游戏区域逻辑坐标）
type PositionComponent struct {
	X float64
	Y float64
}
