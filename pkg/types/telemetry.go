package types

import "time"

// ============================================================================
//                              节点连接遥测
// ============================================================================

// PeerTelemetry 本地观测到的节点连接统计
//
// 由网络层维护，本系统只读使用。
type PeerTelemetry struct {
	// PeerID 节点 ID
	PeerID string `json:"peerId"`

	// LastSeen 最后一次连接的时间（Unix 秒）
	LastSeen int64 `json:"lastSeen"`

	// ConnectionDuration 累计连接时长（秒）
	ConnectionDuration int64 `json:"connectionDuration"`
}

// LastSeenTime 返回最后一次连接的时间
func (t PeerTelemetry) LastSeenTime() time.Time {
	return time.Unix(t.LastSeen, 0)
}

// TelemetrySnapshot 某一时刻的遥测快照（按 PeerID 索引）
//
// 快照是不可变的副本，排序时作为参数注入，从不在内部访问共享状态。
type TelemetrySnapshot map[string]PeerTelemetry

// Lookup 查找指定节点的遥测数据
func (s TelemetrySnapshot) Lookup(peerID string) (PeerTelemetry, bool) {
	if s == nil {
		return PeerTelemetry{}, false
	}
	t, ok := s[peerID]
	return t, ok
}

// Clone 返回快照的副本
func (s TelemetrySnapshot) Clone() TelemetrySnapshot {
	out := make(TelemetrySnapshot, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
