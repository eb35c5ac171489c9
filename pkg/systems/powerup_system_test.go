package systems

import (
	"testing"
	"time"

	"github.com/decker502/clicktarget/pkg/types"
)

func TestScoreMultiplierWindow(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetScoreMultiplier)

	if w.combo.Multiplier != 2 {
		t.Fatalf("multiplier = %d, want 2", w.combo.Multiplier)
	}
	// 道具本身不算命中
	if w.combo.Count != 0 {
		t.Errorf("combo = %d, want 0", w.combo.Count)
	}

	w.advance(4999 * time.Millisecond)
	if w.combo.Multiplier != 2 {
		t.Fatalf("multiplier = %d before expiry, want 2", w.combo.Multiplier)
	}
	w.advance(time.Millisecond)
	if w.combo.Multiplier != 1 {
		t.Errorf("multiplier = %d after expiry, want 1", w.combo.Multiplier)
	}
}

func TestPowerUpRetriggerKeepsRestore(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetScoreMultiplier)
	w.advance(3 * time.Second)
	w.placeAndActivate(t, types.TargetScoreMultiplier)

	if w.combo.Multiplier != 4 {
		t.Fatalf("multiplier = %d after retrigger, want 4", w.combo.Multiplier)
	}
	if got := w.powerUps.Remaining(types.TargetScoreMultiplier); got != 5*time.Second {
		t.Errorf("Remaining() = %v, want 5s", got)
	}

	// 第一次激活原定 5s 的到期已取消
	w.advance(2 * time.Second)
	if w.combo.Multiplier != 4 {
		t.Fatalf("multiplier = %d at 5s, want 4", w.combo.Multiplier)
	}
	w.advance(3 * time.Second)
	if w.combo.Multiplier != 1 {
		t.Errorf("multiplier = %d at 8s, want 1 (value before first activation)", w.combo.Multiplier)
	}
}

// 重叠窗口各自恢复自己捕获的倍率
func TestPowerUpOverlappingWindowsClobber(t *testing.T) {
	w := newWorld(1)

	w.placeAndActivate(t, types.TargetScoreMultiplier) // 1 → 2，恢复值 1
	w.advance(time.Second)
	w.placeAndActivate(t, types.TargetPrecisionMode) // 2 → 4，恢复值 2

	if w.combo.Multiplier != 4 {
		t.Fatalf("multiplier = %d, want 4", w.combo.Multiplier)
	}

	w.advance(4 * time.Second) // 5s：ScoreMultiplier 到期
	if w.combo.Multiplier != 1 {
		t.Fatalf("multiplier = %d at 5s, want 1", w.combo.Multiplier)
	}
	if !w.powerUps.PrecisionActive() {
		t.Fatal("precision should still be active at 5s")
	}

	w.advance(time.Second) // 6s：PrecisionMode 到期，恢复为 2
	if w.combo.Multiplier != 2 {
		t.Errorf("multiplier = %d at 6s, want 2", w.combo.Multiplier)
	}
	if w.powerUps.PrecisionActive() {
		t.Error("precision should have expired")
	}
	if len(w.presenter.precision) != 2 || !w.presenter.precision[0] || w.presenter.precision[1] {
		t.Errorf("precision notifications = %v, want [true false]", w.presenter.precision)
	}
}

// 命中后倍率按连击重新计算，覆盖道具翻倍
func TestPowerUpOverwrittenByHit(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetScoreMultiplier)
	w.placeAndActivate(t, types.TargetRegular)

	if w.combo.Multiplier != 1 || w.state.Score != 1 {
		t.Errorf("multiplier=%d score=%d, want 1/1", w.combo.Multiplier, w.state.Score)
	}
}

func TestPowerUpReset(t *testing.T) {
	w := newWorld(1)
	w.placeAndActivate(t, types.TargetScoreMultiplier)
	w.placeAndActivate(t, types.TargetPrecisionMode)

	w.powerUps.Reset()
	if w.powerUps.IsActive(types.TargetScoreMultiplier) || w.powerUps.PrecisionActive() {
		t.Error("Reset() should close all windows")
	}
	if w.sched.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", w.sched.Pending())
	}
	if last := w.presenter.precision[len(w.presenter.precision)-1]; last {
		t.Error("Reset() should turn precision display off")
	}
}
