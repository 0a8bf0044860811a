package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-realminvite/pkg/types"
)

func readyCommunity() types.Community {
	return types.Community{
		Name:                 testName,
		PeerAddresses:        testAddrs(5),
		LocalAddress:         testAddr(5),
		PSK:                  testPSK,
		OwnerOrbitDBIdentity: testOwner,
		InviteSeed:           testSeed,
	}
}

func newTestBuilder() *Builder {
	return NewBuilder(NewEncoder(newTestRegistry()), testBaseURL, DefaultMaxPeers)
}

// TestBuilder_InvitationURL 测试构建并解析邀请链接
func TestBuilder_InvitationURL(t *testing.T) {
	b := newTestBuilder()
	snap := telemetry(map[int][2]int64{
		0: {1000, 50},
		1: {900, 500},
		2: {500, 200},
		3: {100, 100},
	})
	c := readyCommunity()
	c.PeerAddresses = []string{testAddr(4), testAddr(2), testAddr(0), testAddr(3), testAddr(1)}

	raw := b.InvitationURL(c, snap, types.SchemaV2)
	require.NotEmpty(t, raw)

	p, _, err := newTestDecoder().DecodeAuto(raw)
	require.NoError(t, err)
	assert.Equal(t, []types.InvitationPair{testPair(0), testPair(1), testPair(2)}, p.Pairs)
	assert.Equal(t, &types.AuthData{CommunityName: testName, Seed: testSeed}, p.AuthData)

	raw = b.InvitationURL(c, snap, types.SchemaV1)
	p, _, err = newTestDecoder().Decode(raw, types.SchemaV1)
	require.NoError(t, err)
	assert.Nil(t, p.AuthData)
}

// TestBuilder_OpaquePeerIDs 测试节点 ID 不是 multihash 时仍能构建链接
func TestBuilder_OpaquePeerIDs(t *testing.T) {
	c := readyCommunity()
	c.PeerAddresses = []string{opaqueAddr(0), opaqueAddr(1)}
	snap := types.TelemetrySnapshot{
		opaquePeerIDs[1]: {PeerID: opaquePeerIDs[1], LastSeen: 1000},
	}

	raw := newTestBuilder().InvitationURL(c, snap, types.SchemaV2)
	require.NotEmpty(t, raw)

	p, _, err := newTestDecoder().DecodeAuto(raw)
	require.NoError(t, err)
	assert.Equal(t, []types.InvitationPair{
		{PeerID: opaquePeerIDs[1], OnionAddress: testOnions[1]},
		{PeerID: opaquePeerIDs[0], OnionAddress: testOnions[0]},
	}, p.Pairs)
}

// TestBuilder_NotReady 测试数据未就绪时返回空字符串
func TestBuilder_NotReady(t *testing.T) {
	b := newTestBuilder()

	cases := []struct {
		name    string
		mutate  func(*types.Community)
		version types.SchemaVersion
	}{
		{"no psk", func(c *types.Community) { c.PSK = "" }, types.SchemaV1},
		{"no owner", func(c *types.Community) { c.OwnerOrbitDBIdentity = "" }, types.SchemaV1},
		{"no peers", func(c *types.Community) { c.PeerAddresses = nil }, types.SchemaV1},
		{"only self", func(c *types.Community) { c.PeerAddresses = []string{c.LocalAddress} }, types.SchemaV1},
		{"unusable peers", func(c *types.Community) { c.PeerAddresses = []string{"garbage"} }, types.SchemaV1},
		{"no community name", func(c *types.Community) { c.Name = "" }, types.SchemaV2},
		{"no seed", func(c *types.Community) { c.InviteSeed = "" }, types.SchemaV2},
		{"invalid psk", func(c *types.Community) { c.PSK = "short" }, types.SchemaV1},
		{"unknown version", func(*types.Community) {}, types.SchemaUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := readyCommunity()
			tc.mutate(&c)
			assert.Empty(t, b.InvitationURL(c, nil, tc.version))
		})
	}
}

// TestBuilder_V1IgnoresAuthData 测试 V1 不需要社区名称与种子
func TestBuilder_V1IgnoresAuthData(t *testing.T) {
	c := readyCommunity()
	c.Name = ""
	c.InviteSeed = ""

	assert.NotEmpty(t, newTestBuilder().InvitationURL(c, nil, types.SchemaV1))
}

// TestBuilder_MaxPeers 测试嵌入节点数上限
func TestBuilder_MaxPeers(t *testing.T) {
	b := NewBuilder(NewEncoder(newTestRegistry()), testBaseURL, 1)

	p, ok := b.Payload(readyCommunity(), nil, types.SchemaV1)
	require.True(t, ok)
	assert.Equal(t, []types.InvitationPair{testPair(0)}, p.Pairs)
}
