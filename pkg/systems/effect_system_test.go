package systems

import (
	"testing"
	"time"

	"github.com/decker502/clicktarget/pkg/game"
	"github.com/decker502/clicktarget/pkg/types"
)

func (w *world) placeAndActivate(t *testing.T, targetType types.TargetType) {
	t.Helper()
	id, ok := w.spawn.Place(targetType)
	if !ok {
		t.Fatalf("Place(%v) failed", targetType)
	}
	w.activate(id)
	if w.em.Exists(id) {
		t.Fatalf("%v target should be consumed", targetType)
	}
}

func TestEffectRegularCombo(t *testing.T) {
	w := newWorld(1)

	w.placeAndActivate(t, types.TargetRegular)
	w.advance(500 * time.Millisecond)
	w.placeAndActivate(t, types.TargetRegular)
	w.advance(500 * time.Millisecond)
	w.placeAndActivate(t, types.TargetRegular)

	if w.combo.Count != 3 || w.combo.Multiplier != 2 {
		t.Errorf("combo = %d/%d, want 3/2", w.combo.Count, w.combo.Multiplier)
	}
	if w.state.Score != 4 || w.presenter.score != 4 {
		t.Errorf("score = %d (display %d), want 4", w.state.Score, w.presenter.score)
	}
	if w.presenter.combo != 3 || w.presenter.mult != 2 {
		t.Errorf("combo display = %d/%d", w.presenter.combo, w.presenter.mult)
	}
}

func TestEffectGiant(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetGiant)
	if w.state.Score != 5 {
		t.Errorf("score = %d, want 5", w.state.Score)
	}
	if w.combo.Count != 1 {
		t.Errorf("giant should register a hit, combo = %d", w.combo.Count)
	}
}

func TestEffectBomb(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetRegular)
	w.placeAndActivate(t, types.TargetRegular)

	w.placeAndActivate(t, types.TargetBomb)
	if w.state.Lives != 1 || w.combo.Count != 0 || w.combo.Multiplier != 1 {
		t.Fatalf("after bomb lives=%d combo=%d mult=%d, want 1/0/1", w.state.Lives, w.combo.Count, w.combo.Multiplier)
	}
	if w.depleted != 0 {
		t.Fatal("first bomb should not end the session")
	}

	w.placeAndActivate(t, types.TargetBomb)
	if w.state.Lives != 0 {
		t.Errorf("lives = %d, want 0", w.state.Lives)
	}
	if w.depleted != 1 {
		t.Errorf("onLivesDepleted called %d times, want 1", w.depleted)
	}
}

func TestEffectExtraLife(t *testing.T) {
	w := newWorld(1)

	w.placeAndActivate(t, types.TargetExtraLife)
	if w.state.Lives != 3 {
		t.Fatalf("lives = %d, want 3", w.state.Lives)
	}

	// 生命已满：不变，但目标仍被消耗
	w.placeAndActivate(t, types.TargetExtraLife)
	if w.state.Lives != 3 {
		t.Errorf("lives = %d at max, want 3", w.state.Lives)
	}
}

func TestEffectInactiveIsNoop(t *testing.T) {
	w := newWorld(1)
	id, _ := w.spawn.Place(types.TargetRegular)
	w.state.Phase = game.PhaseEnded

	w.activate(id)
	if w.state.Score != 0 || w.combo.Count != 0 {
		t.Errorf("inactive activation changed state: score=%d combo=%d", w.state.Score, w.combo.Count)
	}
	if w.em.Exists(id) {
		t.Error("target should still be removed")
	}
}

func TestEffectStaleActivation(t *testing.T) {
	w := newWorld(1)
	id, _ := w.spawn.Place(types.TargetRegular)

	// 同一目标的两次点击只结算一次
	w.input.Activate(id)
	w.queue.Push(game.ActivationEvent{Target: id})
	w.effects.Update()

	if w.state.Score != 1 {
		t.Errorf("score = %d, want 1", w.state.Score)
	}
	if w.input.Activate(id) {
		t.Error("Activate() on removed target should return false")
	}
}

func TestEffectTimeFreeze(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()
	w.advance(2 * time.Second)

	w.placeAndActivate(t, types.TargetTimeFreeze)
	if !w.powerUps.IsActive(types.TargetTimeFreeze) {
		t.Fatal("time freeze should be active")
	}
	if w.combo.Count != 1 {
		t.Errorf("time freeze should register a hit, combo = %d", w.combo.Count)
	}

	w.advance(6 * time.Second)
	if w.state.TimeLeft != 177 {
		t.Errorf("TimeLeft = %d at 8s, want 177", w.state.TimeLeft)
	}
}

func TestEffectSounds(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetRegular)
	w.placeAndActivate(t, types.TargetBomb)
	w.placeAndActivate(t, types.TargetScoreMultiplier)

	want := []game.Sound{game.SoundHit, game.SoundBomb, game.SoundPowerUp}
	if len(w.presenter.sounds) != len(want) {
		t.Fatalf("sounds = %v, want %v", w.presenter.sounds, want)
	}
	for i := range want {
		if w.presenter.sounds[i] != want[i] {
			t.Errorf("sounds[%d] = %v, want %v", i, w.presenter.sounds[i], want[i])
		}
	}
}

func TestInputPointerHitTest(t *testing.T) {
	w := newWorld(1)
	id, _ := w.spawn.Place(types.TargetRegular)
	view := w.presenter.rendered[0]

	if _, ok := w.input.Pointer(view.X-5, view.Y-5); ok {
		t.Fatal("click outside target should miss")
	}
	hit, ok := w.input.Pointer(view.X+view.Size/2, view.Y+view.Size/2)
	if !ok || hit != id {
		t.Fatalf("Pointer() = %d/%v, want %d", hit, ok, id)
	}
	w.effects.Update()
	if w.state.Score != 1 {
		t.Errorf("score = %d, want 1", w.state.Score)
	}
}
