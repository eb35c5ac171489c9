package terminal

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleComboOn   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorOrange)
	styleText      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHighlight = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePrecision = tcell.StyleDefault.Background(tcell.ColorDarkSlateBlue)
)

func targetStyle(t types.TargetType) tcell.Style {
	switch t {
	case types.TargetRegular:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	case types.TargetBomb:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	case types.TargetScoreMultiplier:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	case types.TargetTimeFreeze:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	case types.TargetPrecisionMode:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorPurple)
	case types.TargetExtraLife:
		return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorPink)
	case types.TargetGiant:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGreen)
	default:
		return styleText
	}
}

func targetGlyph(t types.TargetType) rune {
	switch t {
	case types.TargetBomb:
		return 'B'
	case types.TargetScoreMultiplier:
		return 'x'
	case types.TargetTimeFreeze:
		return 'F'
	case types.TargetPrecisionMode:
		return 'P'
	case types.TargetExtraLife:
		return '+'
	case types.TargetGiant:
		return '5'
	default:
		return 'o'
	}
}

// Draw 绘制当前界面并刷新屏幕
func (t *Terminal) Draw() {
	t.screen.Clear()
	w, h := t.screen.Size()

	switch t.current {
	case game.ScreenActive:
		if t.precision {
			t.fill(0, t.hudRows(), w, h, ' ', stylePrecision)
		}
		t.drawTargets()
		t.drawHUD(w)
	case game.ScreenEnded:
		t.drawHUD(w)
		t.centered(h/2-2, "GAME OVER", styleHighlight)
		t.centered(h/2, fmt.Sprintf("FINAL %d   BEST %d", t.result.FinalScore, t.result.BestScore), styleText)
		if t.result.NewBest {
			t.centered(h/2+1, "NEW BEST!", styleHighlight)
		}
		t.centered(h/2+3, "click or press space to play again, q to quit", styleText)
	default:
		t.centered(h/2-2, "CLICK TARGET", styleHighlight)
		t.centered(h/2, fmt.Sprintf("BEST %d", t.session.BestScore()), styleText)
		t.centered(h/2+2, "click or press space to start, q to quit", styleText)
	}

	t.screen.Show()
}

func (t *Terminal) drawTargets() {
	ids := make([]ecs.EntityID, 0, len(t.targets))
	for id := range t.targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		v := t.targets[id]
		x0, y0, x1, y1 := t.cellRect(v)
		style := targetStyle(v.Type)
		if v.Enhanced {
			style = style.Bold(true).Underline(true)
		}
		t.fill(x0, y0, x1, y1, ' ', style)
		t.screen.SetContent((x0+x1-1)/2, (y0+y1-1)/2, targetGlyph(v.Type), nil, style)
	}
}

func (t *Terminal) drawHUD(w int) {
	t.fill(0, 0, w, t.hudRows(), ' ', styleHUD)

	t.putString(1, 0, fmt.Sprintf("SCORE %d", t.score), styleHUD)
	t.putString(1, 1, fmt.Sprintf("LIVES %d", t.lives), styleHUD)
	t.putString(w/2-4, 0, fmt.Sprintf("TIME %d", t.timeLeft), styleHUD)
	if t.precision {
		t.putString(w/2-4, 1, "PRECISION", styleHUD)
	}

	combo := fmt.Sprintf("COMBO %d x%d", t.combo, t.multiplier)
	style := styleHUD
	if t.combo > 1 {
		style = styleComboOn
	}
	t.putString(w-len(combo)-1, 0, combo, style)
}

func (t *Terminal) fill(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (t *Terminal) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Terminal) centered(y int, s string, style tcell.Style) {
	w, _ := t.screen.Size()
	t.putString(w/2-len([]rune(s))/2, y, s, style)
}
