//go:build !mobile

// Package mobile 的桌面端占位
//
// 绑定代码只在 -tags mobile 时编译；普通 go build ./... 时这里保证包不为空。
package mobile

// Dummy 与移动端同名的空函数
func Dummy() {}
