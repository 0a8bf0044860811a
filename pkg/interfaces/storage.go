package interfaces

// Engine 存储引擎公共接口
//
// 遥测持久化通过此接口访问底层 KV 存储。
type Engine interface {
	// Get 获取指定键的值
	Get(key []byte) ([]byte, error)

	// Put 设置键值对
	Put(key, value []byte) error

	// Delete 删除指定键
	Delete(key []byte) error

	// Has 检查键是否存在
	Has(key []byte) (bool, error)

	// Close 关闭引擎
	Close() error
}
