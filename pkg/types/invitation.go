package types

import (
	"fmt"
	"strings"
)

// ============================================================================
//                              SchemaVersion
// ============================================================================

// SchemaVersion 邀请链接的 schema 版本
//
// 新旧客户端可能在同一网络中共存，因此解码端需要同时支持多个版本。
type SchemaVersion int

const (
	// SchemaUnknown 未知版本
	SchemaUnknown SchemaVersion = iota
	// SchemaV1 第一版：psk + ownerOrbitDbIdentity + 节点对
	SchemaV1
	// SchemaV2 第二版：在 V1 基础上增加嵌套的 authData
	SchemaV2
)

// String 返回版本的字符串表示
func (v SchemaVersion) String() string {
	switch v {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	default:
		return "unknown"
	}
}

// ParseSchemaVersion 解析版本字符串
//
// 接受 "v1"/"1"/"v2"/"2"（大小写不敏感）。
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return SchemaV1, nil
	case "v2", "2":
		return SchemaV2, nil
	default:
		return SchemaUnknown, fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, s)
	}
}

// ============================================================================
//                              InvitationPair
// ============================================================================

// InvitationPair 引导节点对
//
// 链接中每个未命名的查询参数都是一个候选节点对：
// 键为 PeerID，值为 onion 地址（不含 .onion 后缀）。
type InvitationPair struct {
	// PeerID 节点 ID（46 位字母数字）
	PeerID string `json:"peerId"`

	// OnionAddress 隐藏服务地址（56 位小写字母数字）
	OnionAddress string `json:"onionAddress"`
}

// String 返回节点对的字符串表示
func (p InvitationPair) String() string {
	return p.PeerID + "=" + p.OnionAddress
}

// ============================================================================
//                              InvitationPayload
// ============================================================================

// AuthData V2 长期邀请的认证数据
//
// 在链接中作为独立编码的嵌套子载荷出现（base64url 编码的 c=..&s=..）。
type AuthData struct {
	// CommunityName 社区名称
	CommunityName string `json:"communityName"`

	// Seed 长期邀请种子（16 位字母数字）
	Seed string `json:"seed"`
}

// InvitationPayload 邀请载荷
//
// 每次编码/解码调用临时构造，不做持久化。
type InvitationPayload struct {
	// Version schema 版本（结构性元数据，不参与字段校验）
	Version SchemaVersion `json:"version"`

	// PSK 预共享密钥（对本系统不透明）
	PSK string `json:"psk"`

	// OwnerOrbitDBIdentity 社区所有者的 OrbitDB 身份
	OwnerOrbitDBIdentity string `json:"ownerOrbitDbIdentity"`

	// Pairs 引导节点对（非空、有序）
	Pairs []InvitationPair `json:"pairs"`

	// AuthData V2 认证数据
	//
	// V1 载荷为 nil；V2 链接中可选字段被丢弃时也为 nil。
	AuthData *AuthData `json:"authData,omitempty"`
}

// HasAuthData 是否携带认证数据
func (p *InvitationPayload) HasAuthData() bool {
	return p != nil && p.AuthData != nil
}

// ============================================================================
//                              解码诊断
// ============================================================================

// DroppedField 解码过程中被静默丢弃的数据
type DroppedField struct {
	// Path 字段所在的嵌套路径（顶层为空，例如 "authData"）
	Path string `json:"path,omitempty"`

	// Key 查询参数键
	Key string `json:"key"`

	// Value 原始值
	Value string `json:"value"`

	// Reason 丢弃原因
	Reason string `json:"reason"`
}

// DecodeDiagnostics 解码诊断信息
//
// 可选字段校验失败、畸形节点对不会导致解码失败，而是记录在这里，
// 以便调用方观察宽松降级的发生。
type DecodeDiagnostics struct {
	// ParseID 本次解析的关联 ID（与日志中的 parse_id 一致）
	ParseID string `json:"parseId"`

	// Dropped 被丢弃的字段和节点对
	Dropped []DroppedField `json:"dropped,omitempty"`

	// Ignored 嵌套子载荷中未被 schema 消费的键
	Ignored []string `json:"ignored,omitempty"`
}

// Clean 是否没有任何降级
func (d *DecodeDiagnostics) Clean() bool {
	return d == nil || (len(d.Dropped) == 0 && len(d.Ignored) == 0)
}
