package interfaces

import "github.com/dep2p/go-realminvite/pkg/types"

// InvitationService 邀请链接服务
//
// 所有方法都是纯函数，可被并发调用而无需协调。
type InvitationService interface {
	// InvitationURL 根据社区当前状态构建邀请链接
	//
	// 任何必需数据尚未就绪时返回空字符串，而不是错误。
	InvitationURL(version types.SchemaVersion) string

	// Parse 解析邀请链接，根据是否携带 authData 自动选择版本
	Parse(rawURL string) (*types.InvitationPayload, *types.DecodeDiagnostics, error)

	// ParseVersion 按指定版本解析邀请链接
	ParseVersion(rawURL string, version types.SchemaVersion) (*types.InvitationPayload, *types.DecodeDiagnostics, error)

	// RankedPeers 返回按连接质量排序后的节点地址
	RankedPeers() ([]string, error)
}
