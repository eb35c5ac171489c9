// Package terminal 在终端中运行游戏（tcell，鼠标点击）
//
// 游戏区域的逻辑坐标按比例映射到字符格；点击命中按目标覆盖的字符格判定，
// 因为字符格远比目标粗糙，按格判定比按逻辑坐标判定更符合玩家看到的画面。
package terminal

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/session"
)

// frameInterval 刷新间隔（约 60 FPS）
const frameInterval = 16 * time.Millisecond

// Terminal 终端表现层，同时驱动 Session
type Terminal struct {
	screen  tcell.Screen
	session *session.Session
	area    game.PlayArea

	// Session 推送的显示状态
	targets    map[ecs.EntityID]game.TargetView
	current    game.Screen
	result     game.Result
	score      int
	lives      int
	timeLeft   int
	combo      int
	multiplier int
	precision  bool

	mouseDown bool
}

// New 创建终端表现层；screen 需已 Init
func New(screen tcell.Screen, cfg *config.GameConfig, best game.BestScoreStore, rng *rand.Rand) *Terminal {
	t := &Terminal{
		screen: screen,
		area: game.PlayArea{
			Width:   config.PlayAreaWidth,
			Height:  config.PlayAreaHeight,
			TopBand: config.HUDBandHeight,
		},
		targets:    make(map[ecs.EntityID]game.TargetView),
		multiplier: 1,
	}
	t.session = session.New(cfg, t, best, rng)
	return t
}

// Session 返回驱动的 Session
func (t *Terminal) Session() *session.Session {
	return t.session
}

// Run 运行事件循环直到用户退出或 ctx 取消
func (t *Terminal) Run(ctx context.Context) error {
	t.screen.EnableMouse()
	defer t.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !t.HandleEvent(ev) {
				log.Printf("[Terminal] Quit requested")
				return nil
			}
		case now := <-ticker.C:
			t.session.Advance(now.Sub(last))
			last = now
			t.Draw()
		}
	}
}

// HandleEvent 处理一个 tcell 事件；返回 false 表示退出
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			if t.current != game.ScreenActive {
				t.session.Start()
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !t.mouseDown {
			x, y := ev.Position()
			t.click(x, y)
		}
		t.mouseDown = pressed

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

// click 处理字符格 (cx, cy) 上的一次点击
func (t *Terminal) click(cx, cy int) {
	if t.current != game.ScreenActive {
		t.session.Start()
		return
	}
	if id, ok := t.targetAt(cx, cy); ok {
		t.session.Activate(id)
	}
}

// targetAt 返回覆盖字符格的最上层（最后生成的）目标
func (t *Terminal) targetAt(cx, cy int) (ecs.EntityID, bool) {
	var hit ecs.EntityID
	found := false
	for id, v := range t.targets {
		x0, y0, x1, y1 := t.cellRect(v)
		if cx >= x0 && cx < x1 && cy >= y0 && cy < y1 && (!found || id > hit) {
			hit = id
			found = true
		}
	}
	return hit, found
}

// toCell 逻辑坐标 -> 字符格
func (t *Terminal) toCell(x, y float64) (int, int) {
	w, h := t.screen.Size()
	return int(math.Floor(x * float64(w) / t.area.Width)), int(math.Floor(y * float64(h) / t.area.Height))
}

// cellRect 目标覆盖的字符格区间 [x0, x1) × [y0, y1)，至少一格
func (t *Terminal) cellRect(v game.TargetView) (int, int, int, int) {
	x0, y0 := t.toCell(v.X, v.Y)
	x1, y1 := t.toCell(v.X+v.Size, v.Y+v.Size)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// hudRows HUD 保留带占用的行数
func (t *Terminal) hudRows() int {
	_, rows := t.toCell(0, t.area.TopBand)
	if rows < 2 {
		rows = 2
	}
	return rows
}

// ============================================================================
// game.Presenter
// ============================================================================

func (t *Terminal) RenderTarget(v game.TargetView) {
	t.targets[v.ID] = v
}

func (t *Terminal) RemoveTarget(id ecs.EntityID) {
	delete(t.targets, id)
}

func (t *Terminal) UpdateScoreDisplay(score int) {
	t.score = score
}

func (t *Terminal) UpdateLivesDisplay(lives int) {
	t.lives = lives
}

func (t *Terminal) UpdateTimeDisplay(seconds int) {
	t.timeLeft = seconds
}

func (t *Terminal) UpdateComboDisplay(count, multiplier int) {
	t.combo = count
	t.multiplier = multiplier
}

func (t *Terminal) ShowScreen(screen game.Screen, result game.Result) {
	t.current = screen
	t.result = result
	if screen != game.ScreenActive {
		t.precision = false
	}
}

func (t *Terminal) PlayArea() game.PlayArea {
	return t.area
}

// SetPrecisionMode 实现 game.PrecisionPresenter
func (t *Terminal) SetPrecisionMode(active bool) {
	t.precision = active
}

// PlaySound 实现 game.SoundPresenter：终端只对炸弹与结束响铃
func (t *Terminal) PlaySound(s game.Sound) {
	if s == game.SoundBomb || s == game.SoundGameOver {
		_ = t.screen.Beep()
	}
}
