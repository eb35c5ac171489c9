//go:build !android

package utils

// EnsureStorageDir 桌面平台由 gdata 自行创建目录
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath 桌面平台交给 gdata 决定，返回空字符串
func GetStoragePath() string {
	return ""
}
