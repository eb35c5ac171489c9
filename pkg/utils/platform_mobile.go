//go:build mobile

package utils

// IsMobile 使用 -tags mobile 编译时恒为 true
func IsMobile() bool {
	return true
}
