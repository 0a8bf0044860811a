// Package types 定义 realminvite 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - invitation.go - InvitationPair, InvitationPayload, AuthData, SchemaVersion
//   - telemetry.go  - PeerTelemetry, TelemetrySnapshot
//   - community.go  - Community（社区/身份存储提供的原始值）
//   - psk.go        - PSK 校验谓词
//   - errors.go     - 公共错误定义与结构化错误
package types
