package invite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-realminvite/pkg/types"
)

func telemetry(entries map[int][2]int64) types.TelemetrySnapshot {
	snap := types.TelemetrySnapshot{}
	for i, e := range entries {
		snap[testPeerIDs[i]] = types.PeerTelemetry{
			PeerID:             testPeerIDs[i],
			LastSeen:           e[0],
			ConnectionDuration: e[1],
		}
	}
	return snap
}

// TestPeerIDFromAddr 测试从 multiaddr 读取 PeerID
func TestPeerIDFromAddr(t *testing.T) {
	id, err := PeerIDFromAddr(testAddr(0))
	require.NoError(t, err)
	assert.Equal(t, testPeerIDs[0], id)

	_, err = PeerIDFromAddr("not-a-multiaddr")
	assert.Error(t, err)

	_, err = PeerIDFromAddr("/dns4/" + testOnions[0] + ".onion/tcp/80/ws")
	assert.Error(t, err)
}

// TestPairFromAddr 测试地址转换为节点对
func TestPairFromAddr(t *testing.T) {
	pair, err := PairFromAddr(testAddr(3))
	require.NoError(t, err)
	assert.Equal(t, testPair(3), pair)

	_, err = PairFromAddr("/dns4/example.com/tcp/80/ws/p2p/" + testPeerIDs[0])
	assert.Error(t, err, "not an onion host")

	_, err = PairFromAddr("/dns4/short.onion/tcp/80/ws/p2p/" + testPeerIDs[0])
	assert.Error(t, err, "onion address too short")
}

// TestPairFromAddr_OpaquePeerID 测试非 multihash 的节点 ID
func TestPairFromAddr_OpaquePeerID(t *testing.T) {
	for i, id := range opaquePeerIDs {
		require.NoError(t, ValidatePeerID(id))

		got, err := PeerIDFromAddr(opaqueAddr(i))
		require.NoError(t, err)
		assert.Equal(t, id, got)

		pair, err := PairFromAddr(opaqueAddr(i))
		require.NoError(t, err)
		assert.Equal(t, types.InvitationPair{PeerID: id, OnionAddress: testOnions[i]}, pair)
	}

	_, err := PairFromAddr("/dns4/" + testOnions[0] + ".onion/tcp/80/ws/p2p/" + strings.Repeat("0", 45))
	assert.Error(t, err, "peer id too short")

	_, err = PeerIDFromAddr("/dns4/" + testOnions[0] + ".onion/tcp")
	assert.Error(t, err, "dangling protocol")
}

// TestRankPeers_OpaquePeerID 测试非 multihash 节点 ID 仍按遥测排序并可排除本地节点
func TestRankPeers_OpaquePeerID(t *testing.T) {
	a, b := opaqueAddr(0), opaqueAddr(1)
	snap := types.TelemetrySnapshot{
		opaquePeerIDs[0]: {PeerID: opaquePeerIDs[0], LastSeen: 10},
		opaquePeerIDs[1]: {PeerID: opaquePeerIDs[1], LastSeen: 1000},
	}

	assert.Equal(t, []string{b, a}, RankPeers([]string{a, b}, "", snap))

	// 本地节点以另一个地址出现时按 PeerID 排除
	local := "/dns4/" + testOnions[2] + ".onion/tcp/443/ws/p2p/" + opaquePeerIDs[1]
	assert.Equal(t, []string{a}, RankPeers([]string{a, b}, local, snap))
}

// TestRankPeers_Example 测试排序示例
//
// A(1000,50) B(900,500) C(500,200) D(100,100) E(无遥测) 排序为 [A,B,C,D,E]。
func TestRankPeers_Example(t *testing.T) {
	a, b, c, d, e := testAddr(0), testAddr(1), testAddr(2), testAddr(3), testAddr(4)
	snap := telemetry(map[int][2]int64{
		0: {1000, 50},
		1: {900, 500},
		2: {500, 200},
		3: {100, 100},
	})

	ranked := RankPeers([]string{e, c, a, d, b}, "", snap)
	assert.Equal(t, []string{a, b, c, d, e}, ranked)

	pairs := PairsFromAddrs(ranked, DefaultMaxPeers)
	assert.Equal(t, []types.InvitationPair{testPair(0), testPair(1), testPair(2)}, pairs)
}

// TestRankPeers_DurationBreaksTies 测试 LastSeen 相同时按连接时长排序
func TestRankPeers_DurationBreaksTies(t *testing.T) {
	snap := telemetry(map[int][2]int64{
		0: {500, 10},
		1: {500, 90},
		2: {500, 90},
	})

	ranked := RankPeers([]string{testAddr(0), testAddr(2), testAddr(1)}, "", snap)
	// 完全相同时保持原始位置
	assert.Equal(t, []string{testAddr(2), testAddr(1), testAddr(0)}, ranked)
}

// TestRankPeers_UntelemeteredKeepOrder 测试无遥测节点保持原始相对顺序
func TestRankPeers_UntelemeteredKeepOrder(t *testing.T) {
	snap := telemetry(map[int][2]int64{5: {1, 1}})
	addrs := []string{testAddr(3), "garbage", testAddr(0), testAddr(5), testAddr(4)}

	ranked := RankPeers(addrs, "", snap)
	assert.Equal(t, []string{testAddr(5), testAddr(3), "garbage", testAddr(0), testAddr(4)}, ranked)

	// 无法解析的地址在转换时被跳过，由后续地址补位
	pairs := PairsFromAddrs(ranked, 3)
	assert.Equal(t, []types.InvitationPair{testPair(5), testPair(3), testPair(0)}, pairs)
}

// TestRankPeers_SelfExclusion 测试本地节点从不出现在结果中
func TestRankPeers_SelfExclusion(t *testing.T) {
	local := testAddr(2)
	snap := telemetry(map[int][2]int64{
		0: {10, 1},
		2: {99999, 99999},
	})
	// 同一 PeerID 的另一个地址
	alias := "/dns4/" + testOnions[5] + ".onion/tcp/443/ws/p2p/" + testPeerIDs[2]

	ranked := RankPeers([]string{local, testAddr(0), alias, testAddr(1), local}, local, snap)
	assert.Equal(t, []string{testAddr(0), testAddr(1)}, ranked)

	// 没有遥测时同样排除
	ranked = RankPeers([]string{testAddr(1), local}, local, nil)
	assert.Equal(t, []string{testAddr(1)}, ranked)
}

// TestRankPeers_Edges 测试空输入与重复地址
func TestRankPeers_Edges(t *testing.T) {
	assert.Empty(t, RankPeers(nil, "", nil))
	assert.Empty(t, RankPeers([]string{testAddr(0)}, testAddr(0), nil))

	ranked := RankPeers([]string{testAddr(1), "", testAddr(1), testAddr(0)}, "", nil)
	assert.Equal(t, []string{testAddr(1), testAddr(0)}, ranked)
}

// TestRankPeers_DoesNotMutateInput 测试不修改输入
func TestRankPeers_DoesNotMutateInput(t *testing.T) {
	addrs := testAddrs(4)
	orig := append([]string(nil), addrs...)
	snap := telemetry(map[int][2]int64{3: {9, 9}, 1: {5, 5}})

	_ = RankPeers(addrs, "", snap)
	assert.Equal(t, orig, addrs)
	assert.Len(t, snap, 2)
}

// TestPairsFromAddrs_Limit 测试数量上限
func TestPairsFromAddrs_Limit(t *testing.T) {
	assert.Len(t, PairsFromAddrs(testAddrs(6), 2), 2)
	assert.Len(t, PairsFromAddrs(testAddrs(6), 0), DefaultMaxPeers)
	assert.Len(t, PairsFromAddrs(testAddrs(2), 5), 2)
	assert.Empty(t, PairsFromAddrs(nil, 3))
}
