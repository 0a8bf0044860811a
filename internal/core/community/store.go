// Package community 提供社区/身份存储的实现
//
// 社区状态的持久化不在本模块范围内，这里只提供两种只读来源：
//   - MemStore: 内存中的值，由上层在状态变化时更新
//   - FileStore: 每次读取时加载 JSON 文件（CLI 使用）
package community

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/dep2p/go-realminvite/internal/util/logger"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

var log = logger.Logger("community")

// ErrEmptyPath 未指定文件路径
var ErrEmptyPath = errors.New("community: empty file path")

// ============================================================================
//                              MemStore
// ============================================================================

// MemStore 内存社区存储
type MemStore struct {
	mu sync.RWMutex
	c  types.Community
}

var _ interfaces.CommunityStore = (*MemStore)(nil)

// NewMemStore 创建内存社区存储
func NewMemStore(c types.Community) *MemStore {
	return &MemStore{c: clone(c)}
}

// Community 返回当前社区的副本
func (s *MemStore) Community() (types.Community, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.c), nil
}

// Update 原地修改社区
func (s *MemStore) Update(fn func(*types.Community)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.c)
}

// Set 替换社区
func (s *MemStore) Set(c types.Community) {
	s.mu.Lock()
	s.c = clone(c)
	s.mu.Unlock()
}

func clone(c types.Community) types.Community {
	c.PeerAddresses = slices.Clone(c.PeerAddresses)
	return c
}

// ============================================================================
//                              FileStore
// ============================================================================

// FileStore 基于 JSON 文件的社区存储
//
// 每次调用 Community 都重新读取文件，外部修改立即可见。
type FileStore struct {
	path string
}

var _ interfaces.CommunityStore = (*FileStore)(nil)

// NewFileStore 创建文件社区存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Community 读取并解析文件
func (s *FileStore) Community() (types.Community, error) {
	return Load(s.path)
}

// Load 从 JSON 文件加载社区
func Load(path string) (types.Community, error) {
	if path == "" {
		return types.Community{}, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Community{}, fmt.Errorf("read community file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return types.Community{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug("已加载社区文件", "path", path, "peers", len(c.PeerAddresses))
	return c, nil
}

// Parse 解析 JSON 格式的社区
func Parse(data []byte) (types.Community, error) {
	var c types.Community
	if err := json.Unmarshal(data, &c); err != nil {
		return types.Community{}, fmt.Errorf("parse community: %w", err)
	}
	return c, nil
}

// Save 将社区写入 JSON 文件
func Save(path string, c types.Community) error {
	if path == "" {
		return ErrEmptyPath
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
