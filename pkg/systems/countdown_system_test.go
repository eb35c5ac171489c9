package systems

import (
	"testing"
	"time"
)

func TestCountdownTicks(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()

	w.advance(999 * time.Millisecond)
	if w.state.TimeLeft != 180 {
		t.Fatalf("TimeLeft = %d before first second, want 180", w.state.TimeLeft)
	}
	w.advance(time.Millisecond)
	if w.state.TimeLeft != 179 || w.presenter.timeLeft != 179 {
		t.Fatalf("TimeLeft = %d (display %d), want 179", w.state.TimeLeft, w.presenter.timeLeft)
	}

	w.advance(89 * time.Second)
	if w.state.TimeLeft != 90 {
		t.Fatalf("TimeLeft = %d at 90s, want 90", w.state.TimeLeft)
	}
	// 进度 0.5：1500 → 200 的中点
	if w.timing.SpawnInterval != 850*time.Millisecond {
		t.Errorf("SpawnInterval = %v at half time, want 850ms", w.timing.SpawnInterval)
	}
	if w.timing.TargetDuration != 1250*time.Millisecond {
		t.Errorf("TargetDuration = %v at half time, want 1.25s", w.timing.TargetDuration)
	}
}

func TestCountdownTimeUp(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()

	w.advance(180 * time.Second)
	if w.state.TimeLeft != 0 {
		t.Fatalf("TimeLeft = %d, want 0", w.state.TimeLeft)
	}
	if w.timeUp != 1 {
		t.Fatalf("onTimeUp called %d times, want 1", w.timeUp)
	}
	if w.timing.SpawnInterval != w.timing.FinalSpawnInterval || w.timing.TargetDuration != w.timing.FinalTargetDuration {
		t.Errorf("final timing = %v/%v", w.timing.SpawnInterval, w.timing.TargetDuration)
	}

	w.advance(10 * time.Second)
	if w.timeUp != 1 || w.state.TimeLeft != 0 {
		t.Errorf("countdown kept running after time up: calls=%d timeLeft=%d", w.timeUp, w.state.TimeLeft)
	}
}

func TestCountdownFreezeExact(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()

	w.advance(3500 * time.Millisecond)
	if w.state.TimeLeft != 177 {
		t.Fatalf("TimeLeft = %d at 3.5s, want 177", w.state.TimeLeft)
	}
	beforeInterval, beforeDuration := w.timing.SpawnInterval, w.timing.TargetDuration

	w.countdown.Freeze(5 * time.Second)
	if !w.countdown.IsFrozen() {
		t.Fatal("IsFrozen() should be true")
	}
	if w.timing.SpawnInterval != w.timing.InitialSpawnInterval || w.timing.TargetDuration != w.timing.InitialTargetDuration {
		t.Errorf("frozen timing = %v/%v, want initial", w.timing.SpawnInterval, w.timing.TargetDuration)
	}

	// 原本 4.0s 的 tick 恰好推迟 5000ms，到 9.0s
	w.advance(5499 * time.Millisecond)
	if w.state.TimeLeft != 177 {
		t.Fatalf("TimeLeft = %d at 8.999s, want 177", w.state.TimeLeft)
	}
	if w.countdown.IsFrozen() {
		t.Fatal("should be unfrozen after 5s")
	}
	if w.timing.SpawnInterval != beforeInterval || w.timing.TargetDuration != beforeDuration {
		t.Errorf("restored timing = %v/%v, want %v/%v", w.timing.SpawnInterval, w.timing.TargetDuration, beforeInterval, beforeDuration)
	}

	w.advance(time.Millisecond)
	if w.state.TimeLeft != 176 {
		t.Fatalf("TimeLeft = %d at 9.0s, want 176", w.state.TimeLeft)
	}
	// 冻结时间不计入进度：4 个活跃秒
	if got := w.countdown.Progress(); got != 4.0/180 {
		t.Errorf("Progress() = %v, want %v", got, 4.0/180)
	}
}

func TestCountdownRefreezeReschedules(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()
	w.advance(3500 * time.Millisecond)

	w.countdown.Freeze(5 * time.Second)
	w.advance(2500 * time.Millisecond) // 6.0s
	w.countdown.Freeze(5 * time.Second)

	// 第一次冻结原定 8.5s 解冻，不再生效
	w.advance(4999 * time.Millisecond) // 10.999s
	if !w.countdown.IsFrozen() {
		t.Fatal("refreeze should push unfreeze to 11.0s")
	}
	w.advance(time.Millisecond)
	if w.countdown.IsFrozen() {
		t.Fatal("should unfreeze at 11.0s")
	}

	w.advance(499 * time.Millisecond)
	if w.state.TimeLeft != 177 {
		t.Fatalf("TimeLeft = %d at 11.499s, want 177", w.state.TimeLeft)
	}
	w.advance(time.Millisecond)
	if w.state.TimeLeft != 176 {
		t.Fatalf("TimeLeft = %d at 11.5s, want 176", w.state.TimeLeft)
	}
}

func TestCountdownStopCancelsFreeze(t *testing.T) {
	w := newWorld(1)
	w.countdown.Start()
	w.advance(time.Second)
	w.countdown.Freeze(5 * time.Second)

	w.countdown.Stop()
	if w.sched.Pending() != 0 {
		t.Errorf("Pending() = %d after Stop, want 0", w.sched.Pending())
	}

	// 停止后冻结请求被忽略
	w.countdown.Unfreeze()
	w.countdown.Freeze(time.Second)
	if w.sched.Pending() != 0 {
		t.Errorf("Freeze() after Stop scheduled callbacks")
	}
}
