// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// TargetType 定义目标的类型
type TargetType int

const (
	// TargetUnknown 未知目标类型（抽奖落空时返回）
	TargetUnknown TargetType = iota
	// TargetRegular 普通目标：+1 分
	TargetRegular
	// TargetBomb 炸弹：扣一条命并清空连击
	TargetBomb
	// TargetScoreMultiplier 倍率翻倍道具
	TargetScoreMultiplier
	// TargetTimeFreeze 时间冻结道具
	TargetTimeFreeze
	// TargetPrecisionMode 精准模式道具：倍率翻倍且后续目标放大
	TargetPrecisionMode
	// TargetExtraLife 额外生命
	TargetExtraLife
	// TargetGiant 巨型目标：+5 分，占地翻倍
	TargetGiant
)

// AllTargetTypes 按抽奖表顺序列出所有有效目标类型
var AllTargetTypes = []TargetType{
	TargetRegular,
	TargetBomb,
	TargetScoreMultiplier,
	TargetTimeFreeze,
	TargetPrecisionMode,
	TargetExtraLife,
	TargetGiant,
}

// String 返回目标类型的字符串表示
func (t TargetType) String() string {
	switch t {
	case TargetRegular:
		return "regular"
	case TargetBomb:
		return "bomb"
	case TargetScoreMultiplier:
		return "score-multiplier"
	case TargetTimeFreeze:
		return "time-freeze"
	case TargetPrecisionMode:
		return "precision-mode"
	case TargetExtraLife:
		return "extra-life"
	case TargetGiant:
		return "giant"
	default:
		return "unknown"
	}
}

// IsPowerUp 判断该类型是否为限时道具
func (t TargetType) IsPowerUp() bool {
	return t == TargetScoreMultiplier || t == TargetTimeFreeze || t == TargetPrecisionMode
}

// ParseTargetType 将配置文件中的名称解析为 TargetType
func ParseTargetType(name string) (TargetType, error) {
	for _, t := range AllTargetTypes {
		if t.String() == name {
			return t, nil
		}
	}
	return TargetUnknown, fmt.Errorf("unknown target type %q", name)
}

// MarshalText 实现 encoding.TextMarshaler，便于 YAML/JSON 直接输出类型名
func (t TargetType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (t *TargetType) UnmarshalText(text []byte) error {
	parsed, err := ParseTargetType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
