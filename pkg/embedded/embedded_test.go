package embedded

import (
	"testing"
	"testing/fstest"
)

func resetEmbedded() {
	dataFS = nil
	initialized = false
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	resetEmbedded()
	defer resetEmbedded()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	resetEmbedded()

	_, err := ReadFile("data/game.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFile 测试读取嵌入文件及前缀校验
func TestReadFile(t *testing.T) {
	resetEmbedded()
	defer resetEmbedded()

	Init(fstest.MapFS{
		"data/game.yaml": &fstest.MapFile{Data: []byte("sessionSeconds: 60\n")},
	})

	data, err := ReadFile("./data/game.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "sessionSeconds: 60\n" {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := ReadFile("assets/logo.png"); err == nil {
		t.Error("Expected error for unknown prefix")
	}

	if !Exists("data/game.yaml") {
		t.Error("Exists(data/game.yaml) = false, want true")
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists(data/missing.yaml) = true, want false")
	}
}
