package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	sfx "github.com/decker502/clicktarget/internal/audio"
	"github.com/decker502/clicktarget/pkg/game"
)

// AudioManager 音效管理器
// 职责：
//   - 启动时把全部合成音效渲染为 PCM 并创建播放器
//   - 播放时应用 SettingsManager 中的音量与开关
//
// context 为 nil 时进入静音模式（测试与无音频设备环境）
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager        // 可为 nil，使用默认音量
	players         map[game.Sound]*audio.Player // 音效 -> 播放器
}

// NewAudioManager 创建音效管理器并预渲染所有音效
//
// 参数：
//   - ctx: Ebitengine 音频上下文（采样率必须与合成采样率一致），可为 nil
//   - sm: SettingsManager 实例，可为 nil
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		players:         make(map[game.Sound]*audio.Player),
	}
	if ctx == nil {
		log.Printf("[AudioManager] No audio context, sounds disabled")
		return am
	}
	if ctx.SampleRate() != sfx.SampleRate {
		log.Printf("[AudioManager] Warning: context sample rate %d != %d, sounds disabled", ctx.SampleRate(), sfx.SampleRate)
		return am
	}

	for _, s := range sfx.AllSounds {
		player, err := ctx.NewPlayer(sfx.NewSoundStream(s))
		if err != nil {
			log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", s, err)
			continue
		}
		am.players[s] = player
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.players))
	return am
}

// PlaySound 播放音效（单次），返回是否实际播放
func (am *AudioManager) PlaySound(s game.Sound) bool {
	if am == nil {
		return false
	}
	if !am.SoundEnabled() {
		return false
	}

	player := am.players[s]
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", s, err)
	}
	player.Play()
	return true
}

// SoundEnabled 音效是否开启
func (am *AudioManager) SoundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// ToggleSound 切换音效开关并返回新状态
func (am *AudioManager) ToggleSound() bool {
	if am.settingsManager == nil {
		return true
	}
	enabled := am.settingsManager.ToggleSound()
	log.Printf("[AudioManager] Sound enabled: %v", enabled)
	return enabled
}

// SetSoundVolume 设置音效音量（0.0 ~ 1.0），立即作用于所有播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.players {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return game.DefaultSettings().SoundVolume
}

// PlayerCount 已创建的播放器数量
func (am *AudioManager) PlayerCount() int {
	return len(am.players)
}
