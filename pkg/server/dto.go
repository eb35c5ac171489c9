package server

import (
	"encoding/json"

	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/session"
)

// 出站消息类型
const (
	msgHello     = "hello"
	msgTarget    = "target"
	msgRemove    = "remove"
	msgScore     = "score"
	msgLives     = "lives"
	msgTime      = "time"
	msgCombo     = "combo"
	msgScreen    = "screen"
	msgPrecision = "precision"
	msgSound     = "sound"
	msgSnapshot  = "snapshot"
	msgError     = "error"
)

// 入站消息类型
const (
	inStart    = "start"
	inClick    = "click"
	inActivate = "activate"
	inSnapshot = "snapshot"
)

// inboundMessage 客户端发来的信封
type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// outboundMessage 服务端推送的信封
type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type clickDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type activateDTO struct {
	ID ecs.EntityID `json:"id"`
}

type snapshotRequestDTO struct {
	Binary bool `json:"binary"`
}

type playAreaDTO struct {
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Band float64 `json:"band"`
}

type helloDTO struct {
	Area     playAreaDTO `json:"area"`
	Snapshot snapshotDTO `json:"snapshot"`
}

type targetDTO struct {
	ID       ecs.EntityID `json:"id"`
	Type     string       `json:"type"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Size     float64      `json:"size"`
	Enhanced bool         `json:"enhanced,omitempty"`
}

type removeDTO struct {
	ID ecs.EntityID `json:"id"`
}

type valueDTO struct {
	Value int `json:"value"`
}

type comboDTO struct {
	Count      int `json:"count"`
	Multiplier int `json:"multiplier"`
}

type screenDTO struct {
	Screen  string `json:"screen"`
	Final   int    `json:"final,omitempty"`
	Best    int    `json:"best,omitempty"`
	NewBest bool   `json:"newBest,omitempty"`
}

type precisionDTO struct {
	Active bool `json:"active"`
}

type soundDTO struct {
	Sound string `json:"sound"`
}

type errorDTO struct {
	Message string `json:"message"`
}

type snapshotDTO struct {
	Phase      string      `json:"phase"`
	Score      int         `json:"score"`
	Lives      int         `json:"lives"`
	TimeLeft   int         `json:"timeLeft"`
	Combo      int         `json:"combo"`
	Multiplier int         `json:"multiplier"`
	Frozen     bool        `json:"frozen"`
	Precision  bool        `json:"precision"`
	Best       int         `json:"best"`
	Targets    []targetDTO `json:"targets"`
}

func targetToDTO(t game.TargetView) targetDTO {
	return targetDTO{
		ID:       t.ID,
		Type:     t.Type.String(),
		X:        t.X,
		Y:        t.Y,
		Size:     t.Size,
		Enhanced: t.Enhanced,
	}
}

func snapshotToDTO(s session.Snapshot) snapshotDTO {
	dto := snapshotDTO{
		Phase:      s.Phase.String(),
		Score:      s.Score,
		Lives:      s.Lives,
		TimeLeft:   s.TimeLeft,
		Combo:      s.Combo,
		Multiplier: s.Multiplier,
		Frozen:     s.Frozen,
		Precision:  s.Precision,
		Best:       s.BestScore,
		Targets:    make([]targetDTO, 0, len(s.Targets)),
	}
	for _, t := range s.Targets {
		dto.Targets = append(dto.Targets, targetToDTO(t))
	}
	return dto
}

func areaToDTO(a game.PlayArea) playAreaDTO {
	return playAreaDTO{W: a.Width, H: a.Height, Band: a.TopBand}
}
