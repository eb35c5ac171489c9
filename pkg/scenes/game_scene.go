package scenes

import (
	"log"
	"math/rand"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/session"
	"github.com/decker502/clicktarget/pkg/utils"
)

// targetPopDuration 目标出现时弹出动画的时长（秒）
const targetPopDuration = 0.15

// targetSprite 表现层缓存的一个目标
type targetSprite struct {
	view   game.TargetView
	bornAt float64 // 出现时的场景时间（秒），用于弹出动画
}

// GameScene 是唯一的游戏场景，同时充当 Session 的表现层
//
// 标题、进行中、结算三个界面由 Session 通过 ShowScreen 切换，
// 场景本身只缓存 Session 推送过来的显示状态，不持有任何游戏规则。
type GameScene struct {
	session  *session.Session
	audio    *AudioManager
	settings *game.SettingsManager
	area     game.PlayArea

	// Session 推送的显示状态
	screen     game.Screen
	result     game.Result
	targets    map[ecs.EntityID]*targetSprite
	score      int
	lives      int
	timeLeft   int
	combo      int
	multiplier int
	precision  bool

	elapsed float64 // 场景时间（秒），仅用于动画
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - cfg: 调参配置，可为 nil
//   - best: 最高分存取，可为 nil（仅内存）
//   - am: 音效管理器，可为 nil（静音）
//   - sm: 设置管理器，可为 nil
//   - rng: 随机源，可为 nil
func NewGameScene(cfg *config.GameConfig, best game.BestScoreStore, am *AudioManager, sm *game.SettingsManager, rng *rand.Rand) *GameScene {
	g := &GameScene{
		audio:    am,
		settings: sm,
		area: game.PlayArea{
			Width:   config.PlayAreaWidth,
			Height:  config.PlayAreaHeight,
			TopBand: config.HUDBandHeight,
		},
		targets:    make(map[ecs.EntityID]*targetSprite),
		multiplier: 1,
	}
	g.session = session.New(cfg, g, best, rng)
	return g
}

// Session 返回场景驱动的 Session
func (g *GameScene) Session() *session.Session {
	return g.session
}

// Update 处理输入并推进 Session
func (g *GameScene) Update(deltaTime float64) {
	g.elapsed += deltaTime

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.audio != nil {
		g.audio.ToggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.screen != game.ScreenActive {
		g.session.Start()
	}

	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		g.HandlePointer(float64(x), float64(y))
	}

	g.session.Update(deltaTime)
}

// HandlePointer 处理一次点击（逻辑坐标）
// 标题与结算界面上任意点击开始新的一局
func (g *GameScene) HandlePointer(x, y float64) {
	if g.screen != game.ScreenActive {
		g.session.Start()
		return
	}
	g.session.Pointer(x, y)
}

// SaveOnExit 退出时保存偏好设置
func (g *GameScene) SaveOnExit() bool {
	if g.settings == nil {
		return true
	}
	if err := g.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: Failed to save settings: %v", err)
		return false
	}
	return true
}

// sortedTargets 按生成顺序返回目标，后生成的画在上层
func (g *GameScene) sortedTargets() []*targetSprite {
	ids := make([]ecs.EntityID, 0, len(g.targets))
	for id := range g.targets {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	sprites := make([]*targetSprite, 0, len(ids))
	for _, id := range ids {
		sprites = append(sprites, g.targets[id])
	}
	return sprites
}

// ============================================================================
// game.Presenter
// ============================================================================

func (g *GameScene) RenderTarget(t game.TargetView) {
	g.targets[t.ID] = &targetSprite{view: t, bornAt: g.elapsed}
}

func (g *GameScene) RemoveTarget(id ecs.EntityID) {
	delete(g.targets, id)
}

func (g *GameScene) UpdateScoreDisplay(score int) {
	g.score = score
}

func (g *GameScene) UpdateLivesDisplay(lives int) {
	g.lives = lives
}

func (g *GameScene) UpdateTimeDisplay(seconds int) {
	g.timeLeft = seconds
}

func (g *GameScene) UpdateComboDisplay(count, multiplier int) {
	g.combo = count
	g.multiplier = multiplier
}

func (g *GameScene) ShowScreen(screen game.Screen, result game.Result) {
	g.screen = screen
	g.result = result
	if screen != game.ScreenActive {
		g.precision = false
	}
	log.Printf("[GameScene] Screen -> %s", screen)
}

func (g *GameScene) PlayArea() game.PlayArea {
	return g.area
}

// SetPrecisionMode 实现 game.PrecisionPresenter
func (g *GameScene) SetPrecisionMode(active bool) {
	g.precision = active
}

// PlaySound 实现 game.SoundPresenter
func (g *GameScene) PlaySound(s game.Sound) {
	g.audio.PlaySound(s)
}
