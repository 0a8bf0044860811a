package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-realminvite/internal/core/storage/engine"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	eng, err := New(engine.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, eng.Start())
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

// TestEngine_PutGet 测试基本读写
func TestEngine_PutGet(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Put([]byte("k1"), []byte("v1")))

	value, err := eng.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), value)

	ok, err := eng.Has([]byte("k1"))
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestEngine_NotFound 测试键不存在
func TestEngine_NotFound(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Get([]byte("missing"))
	assert.True(t, engine.IsNotFound(err))

	ok, err := eng.Has([]byte("missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestEngine_Delete 测试删除
func TestEngine_Delete(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Put([]byte("k"), []byte("v")))
	require.NoError(t, eng.Delete([]byte("k")))

	_, err := eng.Get([]byte("k"))
	assert.ErrorIs(t, err, engine.ErrNotFound)
}

// TestEngine_EmptyKey 测试空键
func TestEngine_EmptyKey(t *testing.T) {
	eng := newTestEngine(t)

	assert.ErrorIs(t, eng.Put(nil, []byte("v")), engine.ErrEmptyKey)
	_, err := eng.Get(nil)
	assert.ErrorIs(t, err, engine.ErrEmptyKey)
}

// TestEngine_PrefixIterator 测试前缀遍历
func TestEngine_PrefixIterator(t *testing.T) {
	eng := newTestEngine(t)

	require.NoError(t, eng.Put([]byte("t/a"), []byte("1")))
	require.NoError(t, eng.Put([]byte("t/b"), []byte("2")))
	require.NoError(t, eng.Put([]byte("x/c"), []byte("3")))

	it := eng.NewPrefixIterator([]byte("t/"))
	defer it.Close()

	var keys []string
	for it.First(); it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"t/a", "t/b"}, keys)
}

// TestEngine_Closed 测试关闭后操作
func TestEngine_Closed(t *testing.T) {
	eng, err := New(engine.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, eng.Close())
	require.NoError(t, eng.Close())

	assert.ErrorIs(t, eng.Put([]byte("k"), []byte("v")), engine.ErrClosed)
	_, err = eng.Get([]byte("k"))
	assert.True(t, engine.IsClosed(err))
}

// TestNew_InvalidConfig 测试无效配置
func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)

	_, err = New(engine.DefaultConfig(""))
	assert.ErrorIs(t, err, engine.ErrInvalidConfig)
}
