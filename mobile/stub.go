//go:build !mobile

// Package mobile 只在 -tags mobile 时导出 ebitenmobile 绑定
package mobile

// Dummy 让普通构建（go build ./...）也能编译本包
func Dummy() {}
