package realminvite

import "github.com/dep2p/go-realminvite/pkg/types"

// 常用类型别名
type (
	// InvitationPayload 邀请载荷
	InvitationPayload = types.InvitationPayload

	// InvitationPair 引导节点对
	InvitationPair = types.InvitationPair

	// AuthData V2 认证数据
	AuthData = types.AuthData

	// DecodeDiagnostics 解码诊断
	DecodeDiagnostics = types.DecodeDiagnostics

	// SchemaVersion 链接 schema 版本
	SchemaVersion = types.SchemaVersion

	// Community 社区原始值
	Community = types.Community

	// PSKValidator PSK 格式谓词
	PSKValidator = types.PSKValidator
)

// 链接版本
const (
	SchemaV1 = types.SchemaV1
	SchemaV2 = types.SchemaV2
)
