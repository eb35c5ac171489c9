package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/clicktarget/pkg/config"
	"github.com/decker502/clicktarget/pkg/ecs"
	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

// fakePresenter 记录表现层调用，并校验推送发生在状态修改之后
type fakePresenter struct {
	t       *testing.T
	session *Session

	screens []game.Screen
	results []game.Result
	live    map[ecs.EntityID]game.TargetView
	score   int
	lives   int
	time    int
	combo   int
	mult    int
}

func newFakePresenter(t *testing.T) *fakePresenter {
	return &fakePresenter{t: t, live: make(map[ecs.EntityID]game.TargetView)}
}

func (p *fakePresenter) RenderTarget(v game.TargetView) { p.live[v.ID] = v }
func (p *fakePresenter) RemoveTarget(id ecs.EntityID) { delete(p.live, id) }

func (p *fakePresenter) UpdateScoreDisplay(score int) {
	if p.session != nil && p.session.state.Score != score {
		p.t.Errorf("score pushed before state change: display %d, state %d", score, p.session.state.Score)
	}
	p.score = score
}

func (p *fakePresenter) UpdateLivesDisplay(lives int) {
	if p.session != nil && p.session.state.Lives != lives {
		p.t.Errorf("lives pushed before state change: display %d, state %d", lives, p.session.state.Lives)
	}
	p.lives = lives
}

func (p *fakePresenter) UpdateTimeDisplay(seconds int) { p.time = seconds }
func (p *fakePresenter) UpdateComboDisplay(count, mult int) { p.combo, p.mult = count, mult }

func (p *fakePresenter) ShowScreen(screen game.Screen, result game.Result) {
	p.screens = append(p.screens, screen)
	p.results = append(p.results, result)
}

func (p *fakePresenter) PlayArea() game.PlayArea {
	return game.PlayArea{Width: config.PlayAreaWidth, Height: config.PlayAreaHeight, TopBand: config.HUDBandHeight}
}

func (p *fakePresenter) lastScreen() game.Screen {
	return p.screens[len(p.screens)-1]
}

// countingBest 统计最高分写入次数
type countingBest struct {
	best   int
	writes int
}

func (b *countingBest) GetBestScore() int { return b.best }
func (b *countingBest) SetBestScore(n int) {
	b.best = n
	b.writes++
}

func newTestSession(t *testing.T) (*Session, *fakePresenter, *countingBest) {
	t.Helper()
	p := newFakePresenter(t)
	best := &countingBest{}
	s := New(config.DefaultGameConfig(), p, best, rand.New(rand.NewSource(1)))
	p.session = s
	return s, p, best
}

// spawnTarget 直接放置指定类型的目标
func spawnTarget(t *testing.T, s *Session, targetType types.TargetType) ecs.EntityID {
	t.Helper()
	id, ok := s.spawn.Place(targetType)
	if !ok {
		t.Fatalf("Place(%v) failed", targetType)
	}
	return id
}

func activate(t *testing.T, s *Session, targetType types.TargetType) {
	t.Helper()
	id := spawnTarget(t, s, targetType)
	if !s.Activate(id) {
		t.Fatalf("Activate(%v) returned false", targetType)
	}
}

func TestNewSessionIsIdle(t *testing.T) {
	s, p, _ := newTestSession(t)

	if s.Phase() != game.PhaseIdle {
		t.Errorf("Phase() = %v, want idle", s.Phase())
	}
	if len(p.screens) != 1 || p.screens[0] != game.ScreenIdle {
		t.Errorf("screens = %v, want [idle]", p.screens)
	}

	// 未开始时的操作都是空操作
	s.Advance(10 * time.Second)
	if s.Pointer(100, 100) {
		t.Error("Pointer() should miss before start")
	}
	s.End()
	if s.Phase() != game.PhaseIdle || len(p.live) != 0 {
		t.Errorf("inactive session changed: phase=%v live=%d", s.Phase(), len(p.live))
	}
}

func TestStartResetsState(t *testing.T) {
	s, p, _ := newTestSession(t)
	s.Start()

	snap := s.Snapshot()
	if snap.Phase != game.PhaseActive || snap.Score != 0 || snap.Lives != 2 || snap.TimeLeft != 180 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Combo != 0 || snap.Multiplier != 1 {
		t.Errorf("combo = %d/%d, want 0/1", snap.Combo, snap.Multiplier)
	}
	if p.lastScreen() != game.ScreenActive {
		t.Errorf("screen = %v, want active", p.lastScreen())
	}
	if p.score != 0 || p.lives != 2 || p.time != 180 {
		t.Errorf("displays = %d/%d/%d", p.score, p.lives, p.time)
	}
}

func TestThreeRegularHits(t *testing.T) {
	s, p, _ := newTestSession(t)
	s.Start()

	for i := 0; i < 3; i++ {
		activate(t, s, types.TargetRegular)
		s.Advance(time.Second)
	}

	snap := s.Snapshot()
	if snap.Combo != 3 || snap.Multiplier != 2 || snap.Score != 4 {
		t.Errorf("combo=%d mult=%d score=%d, want 3/2/4", snap.Combo, snap.Multiplier, snap.Score)
	}
	if p.score != 4 {
		t.Errorf("score display = %d, want 4", p.score)
	}
}

func TestTwoBombsEndSession(t *testing.T) {
	s, p, best := newTestSession(t)
	s.Start()
	activate(t, s, types.TargetRegular)

	activate(t, s, types.TargetBomb)
	snap := s.Snapshot()
	if snap.Lives != 1 || snap.Combo != 0 || snap.Multiplier != 1 {
		t.Fatalf("after bomb lives=%d combo=%d mult=%d, want 1/0/1", snap.Lives, snap.Combo, snap.Multiplier)
	}

	activate(t, s, types.TargetBomb)
	if s.Phase() != game.PhaseEnded {
		t.Fatalf("Phase() = %v, want ended", s.Phase())
	}
	if s.Snapshot().Lives != 0 {
		t.Errorf("lives = %d, want 0", s.Snapshot().Lives)
	}
	if p.lastScreen() != game.ScreenEnded {
		t.Errorf("screen = %v, want ended", p.lastScreen())
	}
	result := p.results[len(p.results)-1]
	if result.FinalScore != 1 || result.BestScore != 1 || !result.NewBest {
		t.Errorf("result = %+v", result)
	}
	if best.best != 1 || best.writes != 1 {
		t.Errorf("best = %d (writes %d), want 1 (1)", best.best, best.writes)
	}

	// 结算时清场，且不再有待执行回调
	if len(p.live) != 0 || len(s.Snapshot().Targets) != 0 {
		t.Errorf("live targets after end: presenter=%d session=%d", len(p.live), len(s.Snapshot().Targets))
	}
	if s.scheduler.Pending() != 0 {
		t.Errorf("Pending() = %d after end, want 0", s.scheduler.Pending())
	}
}

func TestExtraLifeAtMax(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()

	activate(t, s, types.TargetExtraLife)
	if s.Snapshot().Lives != 3 {
		t.Fatalf("lives = %d, want 3", s.Snapshot().Lives)
	}

	id := spawnTarget(t, s, types.TargetExtraLife)
	s.Activate(id)
	if s.Snapshot().Lives != 3 {
		t.Errorf("lives = %d, want 3", s.Snapshot().Lives)
	}
	if s.entityManager.Exists(id) {
		t.Error("extra life target should be consumed")
	}
}

func TestTimeFreezePausesExactly(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()

	s.Advance(2500 * time.Millisecond)
	activate(t, s, types.TargetTimeFreeze)
	if !s.Snapshot().Frozen {
		t.Fatal("session should be frozen")
	}

	// 原定 3.0s 的 tick 推迟到 8.0s
	s.Advance(5499 * time.Millisecond)
	if s.Snapshot().TimeLeft != 178 {
		t.Fatalf("TimeLeft = %d at 7.999s, want 178", s.Snapshot().TimeLeft)
	}
	s.Advance(time.Millisecond)
	if s.Snapshot().TimeLeft != 177 {
		t.Fatalf("TimeLeft = %d at 8.0s, want 177", s.Snapshot().TimeLeft)
	}
	s.Advance(time.Second)
	if s.Snapshot().TimeLeft != 176 {
		t.Errorf("TimeLeft = %d at 9.0s, want 176", s.Snapshot().TimeLeft)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	s, p, best := newTestSession(t)
	s.Start()
	activate(t, s, types.TargetGiant)

	s.End()
	s.End()

	if best.writes != 1 {
		t.Errorf("best score written %d times, want 1", best.writes)
	}
	ended := 0
	for _, sc := range p.screens {
		if sc == game.ScreenEnded {
			ended++
		}
	}
	if ended != 1 {
		t.Errorf("ended screen shown %d times, want 1", ended)
	}
	if s.LastResult().FinalScore != 5 {
		t.Errorf("LastResult().FinalScore = %d, want 5", s.LastResult().FinalScore)
	}
}

func TestBestScoreNotLowered(t *testing.T) {
	s, _, best := newTestSession(t)
	best.best = 50
	s.Start()
	activate(t, s, types.TargetRegular)
	s.End()

	if best.best != 50 || best.writes != 0 {
		t.Errorf("best = %d (writes %d), want 50 (0)", best.best, best.writes)
	}
	if r := s.LastResult(); r.BestScore != 50 || r.NewBest {
		t.Errorf("result = %+v", r)
	}
}

// sharedRecorder 模拟多局共用的最高分存储：另一局已经写入了更高的分数
type sharedRecorder struct {
	countingBest
	stored int
	calls  int
}

func (r *sharedRecorder) RecordScore(score int) (int, bool) {
	r.calls++
	if score <= r.stored {
		return r.stored, false
	}
	r.stored = score
	return score, true
}

func TestEndUsesAtomicBestScoreRecord(t *testing.T) {
	p := newFakePresenter(t)
	best := &sharedRecorder{stored: 10}
	s := New(config.DefaultGameConfig(), p, best, rand.New(rand.NewSource(1)))
	p.session = s

	s.Start()
	activate(t, s, types.TargetGiant)
	// 本局开始时读到的最高分已过期
	best.best = 0
	s.End()

	if best.calls != 1 || best.writes != 0 {
		t.Errorf("RecordScore calls = %d, SetBestScore writes = %d, want 1, 0", best.calls, best.writes)
	}
	if r := s.LastResult(); r.BestScore != 10 || r.NewBest {
		t.Errorf("result = %+v, want best 10 without new record", r)
	}
}

func TestRestartCancelsStaleCallbacks(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()

	// 上一局：倍率道具（5s 后恢复为 1）与冻结（5s 后解冻）
	activate(t, s, types.TargetScoreMultiplier)
	activate(t, s, types.TargetTimeFreeze)
	s.Advance(time.Second)

	s.Start()
	if s.Snapshot().Frozen || s.Snapshot().Multiplier != 1 {
		t.Fatalf("restart should clear power-ups: %+v", s.Snapshot())
	}

	// 新一局连击到倍率 2
	for i := 0; i < 3; i++ {
		activate(t, s, types.TargetRegular)
	}
	if s.Snapshot().Multiplier != 2 {
		t.Fatalf("multiplier = %d, want 2", s.Snapshot().Multiplier)
	}

	// 旧局的恢复回调（原定 5s）不应覆盖新局倍率
	s.Advance(5 * time.Second)
	snap := s.Snapshot()
	if snap.Multiplier != 2 {
		t.Errorf("stale power-up expiry fired: multiplier = %d", snap.Multiplier)
	}
	if snap.TimeLeft != 175 {
		t.Errorf("TimeLeft = %d 5s after restart, want 175", snap.TimeLeft)
	}
}

func TestTimeUpEndsSession(t *testing.T) {
	s, p, _ := newTestSession(t)
	s.Start()

	s.Advance(179 * time.Second)
	if !s.IsActive() {
		t.Fatal("session should still be active at 179s")
	}
	s.Advance(time.Second)
	if s.Phase() != game.PhaseEnded {
		t.Fatalf("Phase() = %v at 180s, want ended", s.Phase())
	}
	if p.time != 0 {
		t.Errorf("time display = %d, want 0", p.time)
	}

	// 结算后可以重开
	s.Start()
	if s.Phase() != game.PhaseActive || s.Snapshot().TimeLeft != 180 {
		t.Errorf("restart failed: %+v", s.Snapshot())
	}
}

func TestSnapshotMatchesPresenter(t *testing.T) {
	s, p, _ := newTestSession(t)
	s.Start()
	s.Advance(3 * time.Second)

	snap := s.Snapshot()
	if len(snap.Targets) != len(p.live) {
		t.Fatalf("snapshot has %d targets, presenter %d", len(snap.Targets), len(p.live))
	}
	for i, v := range snap.Targets {
		if p.live[v.ID] != v {
			t.Errorf("target %d mismatch: snapshot %+v presenter %+v", v.ID, v, p.live[v.ID])
		}
		if i > 0 && snap.Targets[i-1].ID >= v.ID {
			t.Error("snapshot targets should be in spawn order")
		}
	}
}

func TestPointerActivatesTarget(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()

	id := spawnTarget(t, s, types.TargetGiant)
	v := s.Snapshot()
	var view game.TargetView
	for _, tv := range v.Targets {
		if tv.ID == id {
			view = tv
		}
	}

	if !s.Pointer(view.X+view.Size/2, view.Y+view.Size/2) {
		t.Fatal("Pointer() at target center should hit")
	}
	if s.Snapshot().Score < 5 {
		t.Errorf("score = %d, want >= 5", s.Snapshot().Score)
	}
}

func TestUpdateUsesSeconds(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.Start()

	for i := 0; i < 61; i++ {
		s.Update(1.0 / 60)
	}
	if s.Snapshot().TimeLeft != 179 {
		t.Errorf("TimeLeft = %d after 61 frames, want 179", s.Snapshot().TimeLeft)
	}
}
