package invite

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	ma "github.com/multiformats/go-multiaddr"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// DefaultMaxPeers 链接中默认嵌入的节点数
const DefaultMaxPeers = 3

const onionSuffix = ".onion"

// ============================================================================
//                              地址解析
// ============================================================================

// addrParts 节点地址中与邀请相关的组件
type addrParts struct {
	peerID string
	host   string
}

// parseAddr 读取地址中的 p2p 与 dns 组件
//
// 优先按 multiaddr 解析；p2p 组件不是合法 multihash 时（例如任意 46 位
// 字母数字 ID）退回到按 "/" 逐段读取。
func parseAddr(addr string) (addrParts, error) {
	if m, err := ma.NewMultiaddr(addr); err == nil {
		var parts addrParts
		parts.peerID, _ = m.ValueForProtocol(ma.P_P2P)
		for _, code := range []int{ma.P_DNS4, ma.P_DNS6, ma.P_DNS} {
			if host, err := m.ValueForProtocol(code); err == nil {
				parts.host = host
				break
			}
		}
		return parts, nil
	}
	return splitAddr(addr)
}

// valuelessProtocols 不携带值的地址协议
var valuelessProtocols = map[string]bool{
	"ws": true, "wss": true, "tls": true, "noise": true, "http": true, "https": true,
	"quic": true, "quic-v1": true, "webtransport": true, "webrtc": true, "p2p-circuit": true,
}

// splitAddr 按 "/<协议>[/<值>]" 逐段读取地址
func splitAddr(addr string) (addrParts, error) {
	if !strings.HasPrefix(addr, "/") {
		return addrParts{}, fmt.Errorf("address %q must begin with /", addr)
	}
	segs := strings.Split(strings.TrimPrefix(addr, "/"), "/")
	var parts addrParts
	for i := 0; i < len(segs); i++ {
		name := segs[i]
		if name == "" {
			return addrParts{}, fmt.Errorf("address %q has an empty component", addr)
		}
		if valuelessProtocols[name] {
			continue
		}
		if i+1 >= len(segs) {
			return addrParts{}, fmt.Errorf("address %q: protocol %s has no value", addr, name)
		}
		i++
		switch name {
		case "p2p", "ipfs":
			parts.peerID = segs[i]
		case "dns4", "dns6", "dns":
			if parts.host == "" {
				parts.host = segs[i]
			}
		}
	}
	return parts, nil
}

// PeerIDFromAddr 从节点地址中读取 PeerID
//
// 地址格式：/dns4/<onion>.onion/tcp/<port>/ws/p2p/<peerId>
func PeerIDFromAddr(addr string) (string, error) {
	parts, err := parseAddr(addr)
	if err != nil {
		return "", fmt.Errorf("parse address %q: %w", addr, err)
	}
	if parts.peerID == "" {
		return "", fmt.Errorf("address %q has no peer id", addr)
	}
	return parts.peerID, nil
}

// PairFromAddr 将节点地址转换为节点对
func PairFromAddr(addr string) (types.InvitationPair, error) {
	parts, err := parseAddr(addr)
	if err != nil {
		return types.InvitationPair{}, fmt.Errorf("parse address %q: %w", addr, err)
	}
	if parts.peerID == "" {
		return types.InvitationPair{}, fmt.Errorf("address %q has no peer id", addr)
	}
	if !strings.HasSuffix(parts.host, onionSuffix) {
		return types.InvitationPair{}, fmt.Errorf("address %q is not an onion address", addr)
	}

	pair := types.InvitationPair{
		PeerID:       parts.peerID,
		OnionAddress: strings.TrimSuffix(parts.host, onionSuffix),
	}
	if err := ValidatePair(pair); err != nil {
		return types.InvitationPair{}, err
	}
	return pair, nil
}

// ============================================================================
//                              排序
// ============================================================================

type rankedAddr struct {
	addr      string
	index     int
	telemetry types.PeerTelemetry
}

// compareRanked 有遥测节点的排序比较器
//
// LastSeen 降序，其次 ConnectionDuration 降序，最后按原始位置。
func compareRanked(a, b rankedAddr) int {
	if c := cmp.Compare(b.telemetry.LastSeen, a.telemetry.LastSeen); c != 0 {
		return c
	}
	if c := cmp.Compare(b.telemetry.ConnectionDuration, a.telemetry.ConnectionDuration); c != 0 {
		return c
	}
	return cmp.Compare(a.index, b.index)
}

// RankPeers 按连接质量排序节点地址
//
// 有遥测的节点在前（按 compareRanked 排序），无遥测或无法解析的节点
// 保持原始相对顺序追加在后。本地地址（以及带有本地 PeerID 的地址）被排除，
// 重复地址只保留第一次出现。
func RankPeers(addrs []string, local string, snap types.TelemetrySnapshot) []string {
	localID := ""
	if local != "" {
		localID, _ = PeerIDFromAddr(local)
	}

	seen := make(map[string]struct{}, len(addrs))
	var withTelemetry, without []rankedAddr
	for i, addr := range addrs {
		if addr == "" || addr == local {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}

		entry := rankedAddr{addr: addr, index: i}
		id, err := PeerIDFromAddr(addr)
		if err != nil {
			log.Debug("无法解析节点地址", "addr", addr, "error", err)
			without = append(without, entry)
			continue
		}
		if localID != "" && id == localID {
			continue
		}
		if t, ok := snap.Lookup(id); ok {
			entry.telemetry = t
			withTelemetry = append(withTelemetry, entry)
			continue
		}
		without = append(without, entry)
	}

	slices.SortStableFunc(withTelemetry, compareRanked)

	out := make([]string, 0, len(withTelemetry)+len(without))
	for _, e := range withTelemetry {
		out = append(out, e.addr)
	}
	for _, e := range without {
		out = append(out, e.addr)
	}
	return out
}

// PairsFromAddrs 取排序结果中前 limit 个有效地址转换为节点对
//
// 无法转换的地址被跳过，由其后的地址补位。
func PairsFromAddrs(ranked []string, limit int) []types.InvitationPair {
	if limit <= 0 {
		limit = DefaultMaxPeers
	}
	pairs := make([]types.InvitationPair, 0, limit)
	for _, addr := range ranked {
		if len(pairs) == limit {
			break
		}
		pair, err := PairFromAddr(addr)
		if err != nil {
			log.Debug("跳过无效节点地址", "addr", addr, "error", err)
			continue
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
