package interfaces

import (
	"context"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// TelemetryProvider 节点连接遥测提供者
//
// 排序只需要一个不可变快照。
type TelemetryProvider interface {
	// Snapshot 返回当前遥测的不可变副本
	Snapshot() types.TelemetrySnapshot
}

// TelemetryRecorder 由网络层调用，在连接建立/断开时更新遥测
type TelemetryRecorder interface {
	TelemetryProvider

	// Connected 记录与节点建立连接
	Connected(peerID string)

	// Disconnected 记录与节点断开连接
	Disconnected(peerID string)

	// Forget 删除节点的遥测数据
	Forget(peerID string)

	// Start 启动（从存储加载历史数据）
	Start(ctx context.Context) error

	// Stop 停止（持久化当前数据）
	Stop(ctx context.Context) error
}
