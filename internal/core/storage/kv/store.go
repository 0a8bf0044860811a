// Package kv 提供带前缀隔离的 KV 存储抽象层
//
// Store 在底层存储引擎之上提供命名空间隔离，每个组件使用不同的前缀：
//   - t/ - 节点连接遥测
//
// 使用示例:
//
//	eng, _ := badger.New(engine.DefaultConfig(dir))
//	telemetry := kv.New(eng, []byte("t/"))
//	telemetry.PutJSON([]byte(peerID), record) // 实际键: t/<peerID>
package kv

import (
	"encoding/json"
	"fmt"

	"github.com/dep2p/go-realminvite/internal/core/storage/engine"
)

// Store 带前缀隔离的 KV 存储
type Store struct {
	engine engine.InternalEngine
	prefix []byte
}

// New 创建新的 KVStore
func New(eng engine.InternalEngine, prefix []byte) *Store {
	return &Store{
		engine: eng,
		prefix: append([]byte(nil), prefix...),
	}
}

// prefixKey 为键添加前缀
func (s *Store) prefixKey(key []byte) []byte {
	prefixed := make([]byte, len(s.prefix)+len(key))
	copy(prefixed, s.prefix)
	copy(prefixed[len(s.prefix):], key)
	return prefixed
}

// stripPrefix 从键中移除前缀
func (s *Store) stripPrefix(key []byte) []byte {
	if len(key) < len(s.prefix) {
		return key
	}
	return key[len(s.prefix):]
}

// Get 获取指定键的值
func (s *Store) Get(key []byte) ([]byte, error) {
	return s.engine.Get(s.prefixKey(key))
}

// Put 设置键值对
func (s *Store) Put(key, value []byte) error {
	return s.engine.Put(s.prefixKey(key), value)
}

// Delete 删除指定键
func (s *Store) Delete(key []byte) error {
	return s.engine.Delete(s.prefixKey(key))
}

// Has 检查键是否存在
func (s *Store) Has(key []byte) (bool, error) {
	return s.engine.Has(s.prefixKey(key))
}

// GetJSON 获取并反序列化 JSON 值
func (s *Store) GetJSON(key []byte, v interface{}) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrCorrupted, err)
	}
	return nil
}

// PutJSON 序列化并存储 JSON 值
func (s *Store) PutJSON(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, data)
}

// ForEach 遍历命名空间内所有键值对
//
// 回调收到的键已去除命名空间前缀；返回错误时停止遍历。
func (s *Store) ForEach(fn func(key, value []byte) error) error {
	it := s.engine.NewPrefixIterator(s.prefix)
	defer it.Close()

	for it.First(); it.Valid(); it.Next() {
		value := it.Value()
		if err := it.Error(); err != nil {
			return err
		}
		if err := fn(s.stripPrefix(it.Key()), value); err != nil {
			return err
		}
	}
	return it.Error()
}

// Prefix 返回命名空间前缀
func (s *Store) Prefix() []byte {
	return append([]byte(nil), s.prefix...)
}
