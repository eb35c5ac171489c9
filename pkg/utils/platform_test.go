//go:build !mobile

package utils

import "testing"

func TestIsMobile_Emulate(t *testing.T) {
	t.Setenv("CLICKTARGET_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should be false on desktop by default")
	}

	t.Setenv("CLICKTARGET_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should be true when emulation is enabled")
	}
}
