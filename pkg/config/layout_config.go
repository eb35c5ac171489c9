package config

// 布局配置常量
// 所有坐标使用"逻辑坐标系"（相对于游戏区域左上角，单位与目标占地尺寸一致）
// 各表现层（ebiten 窗口、终端、浏览器）负责把逻辑坐标映射到自己的像素/字符格
const (
	// PlayAreaWidth 是游戏区域的逻辑宽度
	PlayAreaWidth = 800.0

	// PlayAreaHeight 是游戏区域的逻辑高度
	PlayAreaHeight = 600.0

	// HUDBandHeight 是顶部 HUD 保留带高度，目标不会生成在这一带内
	HUDBandHeight = 60.0

	// WindowWidth / WindowHeight 是桌面窗口的默认像素尺寸
	// 与逻辑尺寸 1:1，Layout() 返回该值
	WindowWidth  = 800
	WindowHeight = 600
)

// GetSpawnBounds 返回尺寸为 size 的目标左上角可取值范围
// 返回值：minX, minY, maxX, maxY（max 为开区间）
//
// 区域过小时 max 可能小于等于 min，调用方应视为本轮无可用位置
func GetSpawnBounds(width, height, band, size float64) (float64, float64, float64, float64) {
	return 0, band, width - size, height - size
}
