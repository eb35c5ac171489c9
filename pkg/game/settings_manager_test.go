package game

import "testing"

// TestNewSettingsManagerNilGdata 测试降级模式
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	settings := sm.GetSettings()
	if !settings.SoundEnabled || settings.SoundVolume != 0.6 {
		t.Errorf("expected defaults, got %+v", settings)
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsLoadSave 测试设置持久化
func TestSettingsLoadSave(t *testing.T) {
	gdataManager := openTestGdata(t, "test_clicktarget_settings")

	sm := NewSettingsManager(gdataManager)
	sm.SetSoundVolume(0.25)
	if sm.ToggleSound() {
		t.Fatal("ToggleSound() should disable sound first")
	}
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(gdataManager)
	got := reloaded.GetSettings()
	if got.SoundVolume != 0.25 || got.SoundEnabled || !got.Fullscreen {
		t.Errorf("reloaded settings = %+v", got)
	}
}

// TestSettingsSaveOnlyWhenDirty 测试未修改时不写盘
func TestSettingsSaveOnlyWhenDirty(t *testing.T) {
	gdataManager := openTestGdata(t, "test_clicktarget_prefs_dirty")

	sm := NewSettingsManager(gdataManager)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		t.Error("Save() without changes should not write")
	}

	sm.SetFullscreen(false)
	sm.SetSoundVolume(0.6)
	if sm.Dirty() {
		t.Error("setting unchanged values should not mark dirty")
	}

	sm.SetFullscreen(true)
	if !sm.Dirty() {
		t.Fatal("SetFullscreen(true) should mark dirty")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if sm.Dirty() || !gdataManager.ObjectPropExists(prefsObject, prefsProperty) {
		t.Error("Save() should write and clear dirty flag")
	}
}

// TestSettingsCorruptData 测试损坏的偏好回退到默认值
func TestSettingsCorruptData(t *testing.T) {
	gdataManager := openTestGdata(t, "test_clicktarget_prefs_corrupt")
	if err := gdataManager.SaveObjectProp(prefsObject, prefsProperty, []byte("soundVolume: [")); err != nil {
		t.Fatalf("failed to seed corrupt data: %v", err)
	}

	sm := NewSettingsManager(gdataManager)
	if got := sm.GetSettings(); *got != *DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", got)
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		input, want float64
	}{
		{-0.5, 0.0},
		{0.0, 0.0},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 1.0},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.input); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
