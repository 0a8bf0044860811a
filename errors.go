package realminvite

import (
	"errors"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// 生命周期错误
var (
	// ErrNotStarted 未启动
	ErrNotStarted = errors.New("app not started")

	// ErrAlreadyStarted 已启动
	ErrAlreadyStarted = errors.New("app already started")

	// ErrClosed 已关闭
	ErrClosed = errors.New("app closed")
)

// 邀请链接错误（重导出 pkg/types）
var (
	// ErrInvalidInvitation 所有致命解码错误都包装此错误
	ErrInvalidInvitation = types.ErrInvalidInvitation

	// ErrInvalidField 必需字段格式无效
	ErrInvalidField = types.ErrInvalidField

	// ErrMissingField 缺少必需字段
	ErrMissingField = types.ErrMissingField

	// ErrNoValidPeers 没有有效的节点对
	ErrNoValidPeers = types.ErrNoValidPeers

	// ErrUnknownSchemaVersion 未知的 schema 版本
	ErrUnknownSchemaVersion = types.ErrUnknownSchemaVersion
)
