// Package server 通过 WebSocket 向浏览器提供游戏
//
// 每个连接拥有独立的 Session，运行在该连接自己的游戏循环 goroutine 上；
// 读 goroutine 只负责解码并把消息投递到循环的 channel。
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/session"
)

const (
	writeWait       = 5 * time.Second
	inboundCapacity = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Options 服务端参数
type Options struct {
	// TickInterval 游戏循环推进间隔，默认 1/60 秒
	TickInterval time.Duration
	// TimeScale 每次推进的游戏时间 = TickInterval × TimeScale，默认 1
	TimeScale float64
	// Seed 随机种子；0 表示按时间取种
	Seed int64
}

// Server WebSocket 游戏服务
type Server struct {
	cfg   *config.GameConfig
	best  *sharedBestScore
	opts  Options
	area  game.PlayArea
	conns atomic.Int64
}

// NewServer 创建服务
// cfg 为 nil 时使用默认调参；best 为 nil 时最高分只保存在内存
func NewServer(cfg *config.GameConfig, best game.BestScoreStore, opts Options) *Server {
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	return &Server{
		cfg:  cfg,
		best: newSharedBestScore(best),
		opts: opts,
		area: game.PlayArea{
			Width:   config.PlayAreaWidth,
			Height:  config.PlayAreaHeight,
			TopBand: config.HUDBandHeight,
		},
	}
}

// ActiveConnections 当前连接数
func (s *Server) ActiveConnections() int {
	return int(s.conns.Load())
}

func (s *Server) newRand(connID int64) *rand.Rand {
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + connID))
}

// ServeWS 升级连接并运行一局游戏循环，直到连接关闭
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Server] upgrade: %v", err)
		return
	}
	connID := s.conns.Add(1)
	defer s.conns.Add(-1)
	log.Printf("[Server] Connection %d opened from %s", connID, r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	inbound := make(chan inboundMessage, inboundCapacity)
	go readLoop(ctx, cancel, conn, inbound)

	if err := s.runSession(ctx, conn, inbound, s.newRand(connID)); err != nil {
		log.Printf("[Server] Connection %d: %v", connID, err)
	}
	conn.Close()
	log.Printf("[Server] Connection %d closed", connID)
}

// readLoop 解码客户端消息并投递给游戏循环
func readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, inbound chan<- inboundMessage) {
	defer cancel()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var m inboundMessage
		if err := json.Unmarshal(data, &m); err != nil {
			log.Printf("[Server] bad message: %v", err)
			continue
		}
		select {
		case inbound <- m:
		case <-ctx.Done():
			return
		}
	}
}

// runSession 连接的游戏循环：Session 只在这里被访问
func (s *Server) runSession(ctx context.Context, conn *websocket.Conn, inbound <-chan inboundMessage, rng *rand.Rand) error {
	presenter := newWSPresenter(s.area)
	sess := session.New(s.cfg, presenter, s.best, rng)

	hello := helloDTO{Area: areaToDTO(s.area), Snapshot: snapshotToDTO(sess.Snapshot())}
	if err := writeJSON(conn, outboundMessage{Type: msgHello, Payload: hello}); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}
	if err := flush(conn, presenter); err != nil {
		return err
	}

	step := time.Duration(float64(s.opts.TickInterval) * s.opts.TimeScale)
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sess.Advance(step)
		case m := <-inbound:
			if err := handleMessage(conn, sess, presenter, m); err != nil {
				return err
			}
		}
		if err := flush(conn, presenter); err != nil {
			return err
		}
	}
}

// handleMessage 把一条客户端消息翻译为 Session 调用
func handleMessage(conn *websocket.Conn, sess *session.Session, p *wsPresenter, m inboundMessage) error {
	switch m.Type {
	case inStart:
		sess.Start()

	case inClick:
		var c clickDTO
		if err := json.Unmarshal(m.Payload, &c); err != nil {
			p.push(msgError, errorDTO{Message: "bad click payload"})
			return nil
		}
		sess.Pointer(c.X, c.Y)

	case inActivate:
		var a activateDTO
		if err := json.Unmarshal(m.Payload, &a); err != nil {
			p.push(msgError, errorDTO{Message: "bad activate payload"})
			return nil
		}
		sess.Activate(a.ID)

	case inSnapshot:
		var req snapshotRequestDTO
		if len(m.Payload) > 0 {
			_ = json.Unmarshal(m.Payload, &req)
		}
		if req.Binary {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.BinaryMessage, EncodeSnapshot(sess.Snapshot())); err != nil {
				return fmt.Errorf("send binary snapshot: %w", err)
			}
			return nil
		}
		p.push(msgSnapshot, snapshotToDTO(sess.Snapshot()))

	default:
		p.push(msgError, errorDTO{Message: "unknown message type: " + m.Type})
	}
	return nil
}

func flush(conn *websocket.Conn, p *wsPresenter) error {
	for _, msg := range p.drain() {
		if err := writeJSON(conn, msg); err != nil {
			return fmt.Errorf("send %s: %w", msg.Type, err)
		}
	}
	return nil
}

func writeJSON(conn *websocket.Conn, msg outboundMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
