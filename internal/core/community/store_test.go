package community

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-realminvite/pkg/types"
)

func sample() types.Community {
	return types.Community{
		Name:                 "Rockets",
		PeerAddresses:        []string{"/dns4/a.onion/tcp/80/ws/p2p/QmA", "/dns4/b.onion/tcp/80/ws/p2p/QmB"},
		LocalAddress:         "/dns4/b.onion/tcp/80/ws/p2p/QmB",
		PSK:                  "Iz7fpYyEhHcS6RFXJTOQfcRnccKvAizqB2a0ItRPMeU=",
		OwnerOrbitDBIdentity: "owner",
		InviteSeed:           "5GpnEVMTEx3Fy9JK",
	}
}

// TestMemStore_Copies 测试读取返回副本
func TestMemStore_Copies(t *testing.T) {
	c := sample()
	s := NewMemStore(c)

	c.PeerAddresses[0] = "mutated"
	got, err := s.Community()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	got.PeerAddresses[1] = "mutated"
	again, _ := s.Community()
	assert.Equal(t, sample().PeerAddresses, again.PeerAddresses)
}

// TestMemStore_Update 测试更新
func TestMemStore_Update(t *testing.T) {
	s := NewMemStore(types.Community{})
	s.Update(func(c *types.Community) { c.PSK = "psk" })

	got, _ := s.Community()
	assert.Equal(t, "psk", got.PSK)

	s.Set(sample())
	got, _ = s.Community()
	assert.Equal(t, "Rockets", got.Name)
}

// TestFileStore_RoundTrip 测试保存与加载
func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "community.json")
	require.NoError(t, Save(path, sample()))

	s := NewFileStore(path)
	got, err := s.Community()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	// 外部修改立即可见
	updated := sample()
	updated.Name = "Rockets Team"
	require.NoError(t, Save(path, updated))
	got, err = s.Community()
	require.NoError(t, err)
	assert.Equal(t, "Rockets Team", got.Name)
}

// TestFileStore_Errors 测试读取失败
func TestFileStore_Errors(t *testing.T) {
	_, err := NewFileStore("").Community()
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

// TestParse_FieldNames 测试 JSON 字段名
func TestParse_FieldNames(t *testing.T) {
	c, err := Parse([]byte(`{"name":"R","peerAddresses":["x"],"localAddress":"x","psk":"p","ownerOrbitDbIdentity":"o","inviteSeed":"s"}`))
	require.NoError(t, err)
	assert.Equal(t, types.Community{
		Name:                 "R",
		PeerAddresses:        []string{"x"},
		LocalAddress:         "x",
		PSK:                  "p",
		OwnerOrbitDBIdentity: "o",
		InviteSeed:           "s",
	}, c)
}
