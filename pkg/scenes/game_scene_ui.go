package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
	"github.com/decker502/clicktarget/pkg/utils"
)

// debugCharWidth ebitenutil 调试字体的字符宽度（像素）
const debugCharWidth = 6

var (
	colorBackground = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	colorHUDBand    = color.RGBA{R: 36, G: 42, B: 60, A: 255}
	colorPrecision  = color.RGBA{R: 60, G: 40, B: 90, A: 90}
	colorComboOn    = color.RGBA{R: 230, G: 160, B: 40, A: 255}
	colorEnhanced   = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	colorOverlay    = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

// targetColor 各目标类型的填充色
func targetColor(t types.TargetType) color.RGBA {
	switch t {
	case types.TargetRegular:
		return color.RGBA{R: 80, G: 200, B: 120, A: 255}
	case types.TargetBomb:
		return color.RGBA{R: 220, G: 60, B: 60, A: 255}
	case types.TargetScoreMultiplier:
		return color.RGBA{R: 250, G: 200, B: 50, A: 255}
	case types.TargetTimeFreeze:
		return color.RGBA{R: 90, G: 180, B: 250, A: 255}
	case types.TargetPrecisionMode:
		return color.RGBA{R: 180, G: 110, B: 240, A: 255}
	case types.TargetExtraLife:
		return color.RGBA{R: 250, G: 120, B: 180, A: 255}
	case types.TargetGiant:
		return color.RGBA{R: 60, G: 160, B: 90, A: 255}
	default:
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
}

// targetLabel 目标中央的短标记
func targetLabel(t types.TargetType) string {
	switch t {
	case types.TargetBomb:
		return "B"
	case types.TargetScoreMultiplier:
		return "x2"
	case types.TargetTimeFreeze:
		return "F"
	case types.TargetPrecisionMode:
		return "P"
	case types.TargetExtraLife:
		return "+"
	case types.TargetGiant:
		return "5"
	default:
		return ""
	}
}

// Draw 绘制当前界面
func (g *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	switch g.screen {
	case game.ScreenActive:
		g.drawPlayArea(screen)
		g.drawHUD(screen)
	case game.ScreenEnded:
		g.drawHUD(screen)
		g.drawEnded(screen)
	default:
		g.drawTitle(screen)
	}
}

func (g *GameScene) drawPlayArea(screen *ebiten.Image) {
	band := float32(g.area.TopBand)
	if g.precision {
		vector.DrawFilledRect(screen, 0, band, float32(g.area.Width), float32(g.area.Height)-band, colorPrecision, false)
	}

	for _, sprite := range g.sortedTargets() {
		v := sprite.view
		scale := utils.EaseOutBack(utils.Clamp01((g.elapsed - sprite.bornAt) / targetPopDuration))
		cx := float32(v.X + v.Size/2)
		cy := float32(v.Y + v.Size/2)
		r := float32(v.Size / 2 * scale)
		if r <= 0 {
			continue
		}

		vector.DrawFilledCircle(screen, cx, cy, r, targetColor(v.Type), true)
		if v.Enhanced {
			vector.StrokeCircle(screen, cx, cy, r, 2, colorEnhanced, true)
		}
		if label := targetLabel(v.Type); label != "" {
			ebitenutil.DebugPrintAt(screen, label, int(cx)-len(label)*debugCharWidth/2, int(cy)-8)
		}
	}
}

func (g *GameScene) drawHUD(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.area.Width), float32(g.area.TopBand), colorHUDBand, false)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", g.score), 16, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("LIVES %d", g.lives), 16, 32)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TIME %d", g.timeLeft), int(g.area.Width)/2-30, 12)

	comboText := fmt.Sprintf("COMBO %d  x%d", g.combo, g.multiplier)
	comboX := int(g.area.Width) - 16 - len(comboText)*debugCharWidth
	if g.combo > 1 {
		vector.DrawFilledRect(screen, float32(comboX-4), 10, float32(len(comboText)*debugCharWidth+8), 20, colorComboOn, false)
	}
	ebitenutil.DebugPrintAt(screen, comboText, comboX, 12)

	if g.precision {
		ebitenutil.DebugPrintAt(screen, "PRECISION", int(g.area.Width)/2-30, 32)
	}
}

func (g *GameScene) drawTitle(screen *ebiten.Image) {
	g.printCentered(screen, "CLICK TARGET", g.area.Height/2-60)
	g.printCentered(screen, fmt.Sprintf("BEST %d", g.session.BestScore()), g.area.Height/2-20)
	g.printCentered(screen, "click anywhere to start", g.area.Height/2+20)
}

func (g *GameScene) drawEnded(screen *ebiten.Image) {
	band := float32(g.area.TopBand)
	vector.DrawFilledRect(screen, 0, band, float32(g.area.Width), float32(g.area.Height)-band, colorOverlay, false)

	g.printCentered(screen, "GAME OVER", g.area.Height/2-60)
	g.printCentered(screen, fmt.Sprintf("FINAL %d", g.result.FinalScore), g.area.Height/2-30)
	g.printCentered(screen, fmt.Sprintf("BEST %d", g.result.BestScore), g.area.Height/2-10)
	if g.result.NewBest {
		g.printCentered(screen, "NEW BEST!", g.area.Height/2+10)
	}
	g.printCentered(screen, "click to play again", g.area.Height/2+40)
}

func (g *GameScene) printCentered(screen *ebiten.Image, text string, y float64) {
	x := int(g.area.Width)/2 - len(text)*debugCharWidth/2
	ebitenutil.DebugPrintAt(screen, text, x, int(y))
}
