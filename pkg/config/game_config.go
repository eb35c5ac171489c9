package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/decker502/clicktarget/pkg/embedded"
	"github.com/decker502/clicktarget/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 默认调参文件路径（同时也是内嵌默认配置的路径）
const DefaultGameConfigPath = "data/game.yaml"

// GameConfig 游戏调参配置
//
// 所有时间单位均为毫秒，通过 Duration 辅助方法转换。
// 默认值即内置的线性难度曲线，不提供额外的难度档位。
type GameConfig struct {
	SessionSeconds int `yaml:"sessionSeconds"` // 一局总时长（秒）
	InitialLives   int `yaml:"initialLives"`   // 开局生命数
	MaxLives       int `yaml:"maxLives"`       // 生命上限（额外生命不会超过此值）

	Timing TimingConfig `yaml:"timing"`
	Combo  ComboConfig  `yaml:"combo"`
	Spawn  SpawnConfig  `yaml:"spawn"`

	PowerUpMs int `yaml:"powerUpMs"` // 倍率翻倍、精准模式、时间冻结的持续时间
}

// TimingConfig 难度曲线端点
type TimingConfig struct {
	InitialSpawnIntervalMs  int `yaml:"initialSpawnIntervalMs"`
	FinalSpawnIntervalMs    int `yaml:"finalSpawnIntervalMs"`
	InitialTargetDurationMs int `yaml:"initialTargetDurationMs"`
	FinalTargetDurationMs   int `yaml:"finalTargetDurationMs"`
}

// ComboConfig 连击参数
type ComboConfig struct {
	WindowMs int `yaml:"windowMs"` // 两次命中间隔小于该值视为连击
	Step     int `yaml:"step"`     // 每多少次连击倍率 +1
}

// SpawnConfig 目标生成参数
type SpawnConfig struct {
	BaseSize           float64       `yaml:"baseSize"`           // 普通目标占地直径
	GiantSize          float64       `yaml:"giantSize"`          // 巨型目标占地直径
	PrecisionScale     float64       `yaml:"precisionScale"`     // 精准模式下的放大倍数
	MaxAttempts        int           `yaml:"maxAttempts"`        // 寻找不重叠位置的最大尝试次数
	ExtraLifeBelowLife int           `yaml:"extraLifeBelowLife"` // 生命数小于该值时才允许生成额外生命
	Weights            []SpawnWeight `yaml:"weights"`            // 按顺序累加的抽奖权重表
}

// SpawnWeight 抽奖表中的一项
type SpawnWeight struct {
	Type   types.TargetType `yaml:"type"`
	Weight float64          `yaml:"weight"`
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		SessionSeconds: 180,
		InitialLives:   2,
		MaxLives:       3,
		Timing: TimingConfig{
			InitialSpawnIntervalMs:  1500,
			FinalSpawnIntervalMs:    200,
			InitialTargetDurationMs: 2000,
			FinalTargetDurationMs:   500,
		},
		Combo: ComboConfig{
			WindowMs: 3500,
			Step:     3,
		},
		Spawn: SpawnConfig{
			BaseSize:           30,
			GiantSize:          60,
			PrecisionScale:     1.5,
			MaxAttempts:        10,
			ExtraLifeBelowLife: 2,
			Weights: []SpawnWeight{
				{Type: types.TargetRegular, Weight: 0.60},
				{Type: types.TargetBomb, Weight: 0.20},
				{Type: types.TargetScoreMultiplier, Weight: 0.05},
				{Type: types.TargetTimeFreeze, Weight: 0.05},
				{Type: types.TargetPrecisionMode, Weight: 0.02},
				{Type: types.TargetExtraLife, Weight: 0.03},
				{Type: types.TargetGiant, Weight: 0.03},
			},
		},
		PowerUpMs: 5000,
	}
}

// LoadGameConfig 加载调参配置
//
// 查找顺序：
//   - path 指向的本地文件
//   - 内嵌资源中的同名文件（embedded 已初始化时）
//   - DefaultGameConfig()
//
// 文件存在但解析或校验失败时返回错误，不做静默降级。
func LoadGameConfig(path string) (*GameConfig, error) {
	if path == "" {
		path = DefaultGameConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read game config %q: %w", path, err)
		}
		data, err = readEmbeddedConfig(path)
		if err != nil {
			log.Printf("[Config] %s not found, using built-in defaults", path)
			return DefaultGameConfig(), nil
		}
		log.Printf("[Config] Using embedded %s", path)
	}

	return ParseGameConfig(data)
}

func readEmbeddedConfig(path string) ([]byte, error) {
	if !embedded.IsInitialized() {
		return nil, fmt.Errorf("embedded resources not initialized")
	}
	return embedded.ReadFile(path)
}

// ParseGameConfig 解析 YAML 内容
// 未出现的字段保留默认值，因此调参文件只需写出想覆盖的字段
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	// weights 是列表，出现时整体替换，不与默认值合并
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.SessionSeconds <= 0 {
		return fmt.Errorf("sessionSeconds must be > 0, got %d", cfg.SessionSeconds)
	}
	if cfg.InitialLives < 1 || cfg.InitialLives > cfg.MaxLives {
		return fmt.Errorf("initialLives must be in [1, maxLives=%d], got %d", cfg.MaxLives, cfg.InitialLives)
	}

	t := cfg.Timing
	if t.FinalSpawnIntervalMs <= 0 || t.InitialSpawnIntervalMs < t.FinalSpawnIntervalMs {
		return fmt.Errorf("spawn interval must satisfy initial >= final > 0, got %d/%d",
			t.InitialSpawnIntervalMs, t.FinalSpawnIntervalMs)
	}
	if t.FinalTargetDurationMs <= 0 || t.InitialTargetDurationMs < t.FinalTargetDurationMs {
		return fmt.Errorf("target duration must satisfy initial >= final > 0, got %d/%d",
			t.InitialTargetDurationMs, t.FinalTargetDurationMs)
	}

	if cfg.Combo.WindowMs <= 0 {
		return fmt.Errorf("combo.windowMs must be > 0, got %d", cfg.Combo.WindowMs)
	}
	if cfg.Combo.Step <= 0 {
		return fmt.Errorf("combo.step must be > 0, got %d", cfg.Combo.Step)
	}
	if cfg.PowerUpMs <= 0 {
		return fmt.Errorf("powerUpMs must be > 0, got %d", cfg.PowerUpMs)
	}

	s := cfg.Spawn
	if s.BaseSize <= 0 || s.GiantSize <= 0 {
		return fmt.Errorf("spawn sizes must be > 0, got base=%.1f giant=%.1f", s.BaseSize, s.GiantSize)
	}
	if s.PrecisionScale < 1 {
		return fmt.Errorf("spawn.precisionScale must be >= 1, got %.2f", s.PrecisionScale)
	}
	if s.MaxAttempts < 1 {
		return fmt.Errorf("spawn.maxAttempts must be >= 1, got %d", s.MaxAttempts)
	}

	total := 0.0
	for i, w := range s.Weights {
		if w.Type == types.TargetUnknown {
			return fmt.Errorf("spawn.weights[%d]: missing type", i)
		}
		if w.Weight < 0 {
			return fmt.Errorf("spawn.weights[%d] (%s): weight must be >= 0, got %.3f", i, w.Type, w.Weight)
		}
		total += w.Weight
	}
	if len(s.Weights) == 0 {
		return fmt.Errorf("spawn.weights cannot be empty")
	}
	// 总和允许小于 1：剩余部分即"本轮不生成"
	if total > 1.0+1e-9 {
		return fmt.Errorf("spawn.weights must sum to <= 1, got %.3f", total)
	}

	return nil
}

// SessionDuration 返回一局总时长
func (c *GameConfig) SessionDuration() time.Duration {
	return time.Duration(c.SessionSeconds) * time.Second
}

// ComboWindow 返回连击判定窗口
func (c *GameConfig) ComboWindow() time.Duration {
	return time.Duration(c.Combo.WindowMs) * time.Millisecond
}

// PowerUpDuration 返回道具持续时间
func (c *GameConfig) PowerUpDuration() time.Duration {
	return time.Duration(c.PowerUpMs) * time.Millisecond
}
