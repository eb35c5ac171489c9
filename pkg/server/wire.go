package server

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/session"
	"github.com/decker502/clicktarget/pkg/types"
)

// 二进制快照帧（protobuf wire format，无生成代码）
//
//	Snapshot: 1 phase, 2 score, 3 lives, 4 timeLeft, 5 combo, 6 multiplier,
//	          7 frozen, 8 precision, 9 best, 10 repeated Target
//	Target:   1 id, 2 type, 3 x (double), 4 y (double), 5 size (double), 6 enhanced
const (
	fieldPhase      protowire.Number = 1
	fieldScore      protowire.Number = 2
	fieldLives      protowire.Number = 3
	fieldTimeLeft   protowire.Number = 4
	fieldCombo      protowire.Number = 5
	fieldMultiplier protowire.Number = 6
	fieldFrozen     protowire.Number = 7
	fieldPrecision  protowire.Number = 8
	fieldBest       protowire.Number = 9
	fieldTargets    protowire.Number = 10

	fieldTargetID       protowire.Number = 1
	fieldTargetType     protowire.Number = 2
	fieldTargetX        protowire.Number = 3
	fieldTargetY        protowire.Number = 4
	fieldTargetSize     protowire.Number = 5
	fieldTargetEnhanced protowire.Number = 6
)

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDoubleField(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// EncodeSnapshot 把快照编码为二进制帧
func EncodeSnapshot(s session.Snapshot) []byte {
	var b []byte
	b = appendVarintField(b, fieldPhase, uint64(s.Phase))
	b = appendVarintField(b, fieldScore, uint64(s.Score))
	b = appendVarintField(b, fieldLives, uint64(s.Lives))
	b = appendVarintField(b, fieldTimeLeft, uint64(s.TimeLeft))
	b = appendVarintField(b, fieldCombo, uint64(s.Combo))
	b = appendVarintField(b, fieldMultiplier, uint64(s.Multiplier))
	b = appendVarintField(b, fieldFrozen, protowire.EncodeBool(s.Frozen))
	b = appendVarintField(b, fieldPrecision, protowire.EncodeBool(s.Precision))
	b = appendVarintField(b, fieldBest, uint64(s.BestScore))

	for _, t := range s.Targets {
		var tb []byte
		tb = appendVarintField(tb, fieldTargetID, uint64(t.ID))
		tb = appendVarintField(tb, fieldTargetType, uint64(t.Type))
		tb = appendDoubleField(tb, fieldTargetX, t.X)
		tb = appendDoubleField(tb, fieldTargetY, t.Y)
		tb = appendDoubleField(tb, fieldTargetSize, t.Size)
		tb = appendVarintField(tb, fieldTargetEnhanced, protowire.EncodeBool(t.Enhanced))

		b = protowire.AppendTag(b, fieldTargets, protowire.BytesType)
		b = protowire.AppendBytes(b, tb)
	}
	return b
}

// DecodeSnapshot 解析 EncodeSnapshot 产生的帧；未知字段被跳过
func DecodeSnapshot(b []byte) (session.Snapshot, error) {
	var s session.Snapshot
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, fmt.Errorf("snapshot tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldTargets && typ == protowire.BytesType:
			data, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return s, fmt.Errorf("snapshot target: %w", protowire.ParseError(m))
			}
			t, err := decodeTarget(data)
			if err != nil {
				return s, err
			}
			s.Targets = append(s.Targets, t)
			b = b[m:]

		case typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return s, fmt.Errorf("snapshot field %d: %w", num, protowire.ParseError(m))
			}
			applySnapshotVarint(&s, num, v)
			b = b[m:]

		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return s, fmt.Errorf("snapshot field %d: %w", num, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return s, nil
}

func applySnapshotVarint(s *session.Snapshot, num protowire.Number, v uint64) {
	switch num {
	case fieldPhase:
		s.Phase = game.Phase(v)
	case fieldScore:
		s.Score = int(v)
	case fieldLives:
		s.Lives = int(v)
	case fieldTimeLeft:
		s.TimeLeft = int(v)
	case fieldCombo:
		s.Combo = int(v)
	case fieldMultiplier:
		s.Multiplier = int(v)
	case fieldFrozen:
		s.Frozen = protowire.DecodeBool(v)
	case fieldPrecision:
		s.Precision = protowire.DecodeBool(v)
	case fieldBest:
		s.BestScore = int(v)
	}
}

func decodeTarget(b []byte) (game.TargetView, error) {
	var t game.TargetView
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return t, fmt.Errorf("target tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return t, fmt.Errorf("target field %d: %w", num, protowire.ParseError(m))
			}
			switch num {
			case fieldTargetID:
				t.ID = ecs.EntityID(v)
			case fieldTargetType:
				t.Type = types.TargetType(v)
			case fieldTargetEnhanced:
				t.Enhanced = protowire.DecodeBool(v)
			}
			b = b[m:]

		case protowire.Fixed64Type:
			v, m := protowire.ConsumeFixed64(b)
			if m < 0 {
				return t, fmt.Errorf("target field %d: %w", num, protowire.ParseError(m))
			}
			f := math.Float64frombits(v)
			switch num {
			case fieldTargetX:
				t.X = f
			case fieldTargetY:
				t.Y = f
			case fieldTargetSize:
				t.Size = f
			}
			b = b[m:]

		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return t, fmt.Errorf("target field %d: %w", num, protowire.ParseError(m))
			}
			b = b[m:]
		}
	}
	return t, nil
}
