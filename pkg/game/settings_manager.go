package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// GameSettings 本机偏好设置（与最高分分开存储）
type GameSettings struct {
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // M 键切换
	Fullscreen   bool    `yaml:"fullscreen"`   // F11 切换，下次启动沿用
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:  0.6,
		SoundEnabled: true,
	}
}

const (
	prefsObject   = "prefs"
	prefsProperty = "clicktarget"
)

// SettingsManager 偏好设置
//
// 修改只作用于内存并标记为脏，Save 只在有改动时写盘；
// 桌面端在切换全屏与退出时各保存一次。
type SettingsManager struct {
	store    *gdata.Manager // 可为 nil（仅内存）
	settings *GameSettings
	dirty    bool
}

// NewSettingsManager 创建设置管理器并加载已保存的偏好
// 读取失败时使用默认设置
func NewSettingsManager(store *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{store: store, settings: DefaultSettings()}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm
}

// Load 重新读取偏好；缺失的字段保持默认值
func (sm *SettingsManager) Load() error {
	loaded := DefaultSettings()
	found, err := loadYAMLProp(sm.store, prefsObject, prefsProperty, loaded)
	if err != nil {
		sm.settings = DefaultSettings()
		return err
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	sm.dirty = false
	if found {
		log.Printf("[SettingsManager] Loaded: volume=%.2f sound=%v fullscreen=%v",
			loaded.SoundVolume, loaded.SoundEnabled, loaded.Fullscreen)
	}
	return nil
}

// Save 有未保存的修改时写入 gdata
func (sm *SettingsManager) Save() error {
	if !sm.dirty {
		return nil
	}
	if err := saveYAMLProp(sm.store, prefsObject, prefsProperty, sm.settings); err != nil {
		return err
	}
	sm.dirty = false
	return nil
}

// Dirty 是否有未保存的修改
func (sm *SettingsManager) Dirty() bool {
	return sm.dirty
}

// GetSettings 返回当前设置（只读）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	volume = clampVolume(volume)
	if volume != sm.settings.SoundVolume {
		sm.settings.SoundVolume = volume
		sm.dirty = true
	}
}

// ToggleSound 切换音效开关并返回新状态
func (sm *SettingsManager) ToggleSound() bool {
	sm.settings.SoundEnabled = !sm.settings.SoundEnabled
	sm.dirty = true
	return sm.settings.SoundEnabled
}

// SetFullscreen 记录全屏状态
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	if enabled != sm.settings.Fullscreen {
		sm.settings.Fullscreen = enabled
		sm.dirty = true
	}
}

func clampVolume(volume float64) float64 {
	return max(0, min(volume, 1))
}
