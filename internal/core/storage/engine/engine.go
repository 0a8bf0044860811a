// Package engine 定义存储引擎的内部接口
package engine

import (
	"github.com/dep2p/go-realminvite/pkg/interfaces"
)

// InternalEngine 内部存储引擎接口
//
// 在公共接口之上增加前缀遍历和生命周期管理。
type InternalEngine interface {
	interfaces.Engine

	// NewPrefixIterator 创建前缀迭代器
	NewPrefixIterator(prefix []byte) Iterator

	// Start 启动后台任务（GC 等）
	Start() error

	// Sync 同步数据到磁盘
	Sync() error
}

// Iterator 键值迭代器
//
// 使用方式:
//
//	it := eng.NewPrefixIterator(prefix)
//	defer it.Close()
//	for it.First(); it.Valid(); it.Next() { ... }
type Iterator interface {
	// First 移动到第一个键值对
	First() bool

	// Next 移动到下一个键值对
	Next() bool

	// Valid 是否指向有效位置
	Valid() bool

	// Key 返回当前键（副本）
	Key() []byte

	// Value 返回当前值（副本）
	Value() []byte

	// Close 关闭迭代器
	Close()

	// Error 返回迭代过程中的错误
	Error() error
}
