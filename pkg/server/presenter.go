package server

import (
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
)

// wsPresenter 把边界调用缓存为待发送消息
// 只在连接的游戏循环 goroutine 上使用，发送由循环在每一步之后统一 flush
type wsPresenter struct {
	area   game.PlayArea
	outbox []outboundMessage
}

func newWSPresenter(area game.PlayArea) *wsPresenter {
	return &wsPresenter{area: area}
}

func (p *wsPresenter) push(typ string, payload any) {
	p.outbox = append(p.outbox, outboundMessage{Type: typ, Payload: payload})
}

// drain 取出并清空待发送消息
func (p *wsPresenter) drain() []outboundMessage {
	out := p.outbox
	p.outbox = nil
	return out
}

func (p *wsPresenter) RenderTarget(t game.TargetView) {
	p.push(msgTarget, targetToDTO(t))
}

func (p *wsPresenter) RemoveTarget(id ecs.EntityID) {
	p.push(msgRemove, removeDTO{ID: id})
}

func (p *wsPresenter) UpdateScoreDisplay(score int) {
	p.push(msgScore, valueDTO{Value: score})
}

func (p *wsPresenter) UpdateLivesDisplay(lives int) {
	p.push(msgLives, valueDTO{Value: lives})
}

func (p *wsPresenter) UpdateTimeDisplay(seconds int) {
	p.push(msgTime, valueDTO{Value: seconds})
}

func (p *wsPresenter) UpdateComboDisplay(count, multiplier int) {
	p.push(msgCombo, comboDTO{Count: count, Multiplier: multiplier})
}

func (p *wsPresenter) ShowScreen(screen game.Screen, result game.Result) {
	dto := screenDTO{Screen: screen.String()}
	if screen == game.ScreenEnded {
		dto.Final = result.FinalScore
		dto.Best = result.BestScore
		dto.NewBest = result.NewBest
	}
	p.push(msgScreen, dto)
}

func (p *wsPresenter) PlayArea() game.PlayArea {
	return p.area
}

func (p *wsPresenter) SetPrecisionMode(active bool) {
	p.push(msgPrecision, precisionDTO{Active: active})
}

func (p *wsPresenter) PlaySound(s game.Sound) {
	p.push(msgSound, soundDTO{Sound: s.String()})
}
