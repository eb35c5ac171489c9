//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前准备最高分存储目录
// gdata 在 Android 上不会创建 saves 子目录
func EnsureStorageDir() error {
	root := GetStoragePath()
	if root == "" {
		return fmt.Errorf("cannot resolve android package name")
	}

	dir := filepath.Join(root, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	probe, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// GetStoragePath 返回 /data/data/{package}
// 包名取自 /proc/self/cmdline 的第一段
func GetStoragePath() string {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	pkg, _, _ := bytes.Cut(raw, []byte{0})
	pkg = bytes.TrimSpace(pkg)
	if len(pkg) == 0 {
		return ""
	}
	return filepath.Join(androidDataRoot, string(pkg))
}
