package types

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              邀请链接错误
// ============================================================================

var (
	// ErrInvalidInvitation 无效的邀请链接
	//
	// 所有致命解码错误都包装此错误，UI 层只需展示一条通用提示。
	ErrInvalidInvitation = errors.New("invalid invitation link")

	// ErrInvalidField 字段格式无效
	ErrInvalidField = errors.New("invalid field format")

	// ErrMissingField 缺少必需字段
	ErrMissingField = errors.New("missing required field")

	// ErrNoValidPeers 没有有效的节点对
	ErrNoValidPeers = fmt.Errorf("%w: no valid peers", ErrInvalidInvitation)

	// ErrNestingTooDeep 嵌套层级过深
	ErrNestingTooDeep = fmt.Errorf("%w: nesting too deep", ErrInvalidInvitation)

	// ErrMalformedQuery 查询串无法解析
	ErrMalformedQuery = fmt.Errorf("%w: malformed query", ErrInvalidInvitation)

	// ErrUnknownSchemaVersion 未知的 schema 版本
	ErrUnknownSchemaVersion = errors.New("unknown schema version")
)

// ============================================================================
//                              PSK 相关错误
// ============================================================================

var (
	// ErrEmptyPSK 空 PSK
	ErrEmptyPSK = errors.New("empty PSK")

	// ErrInvalidPSKLength PSK 长度无效
	ErrInvalidPSKLength = errors.New("invalid PSK length")
)

// ============================================================================
//                              结构化错误
// ============================================================================

// FieldFormatError 字段格式错误
//
// 必需字段的原始值未通过校验时返回，携带出错的键和原始值。
type FieldFormatError struct {
	// Key 查询参数键
	Key string

	// Value 原始值
	Value string

	// Reason 失败原因
	Reason string
}

// Error 实现 error 接口
func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("%s: key %q: %s", ErrInvalidField, e.Key, e.Reason)
}

// Unwrap 返回通用的无效邀请错误
func (e *FieldFormatError) Unwrap() []error {
	return []error{ErrInvalidField, ErrInvalidInvitation}
}

// NewFieldFormatError 创建字段格式错误
func NewFieldFormatError(key, value, reason string) *FieldFormatError {
	return &FieldFormatError{Key: key, Value: value, Reason: reason}
}

// MissingFieldError 缺少必需字段
type MissingFieldError struct {
	// Key 缺失的查询参数键
	Key string
}

// Error 实现 error 接口
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: key %q", ErrMissingField, e.Key)
}

// Unwrap 返回通用的无效邀请错误
func (e *MissingFieldError) Unwrap() []error {
	return []error{ErrMissingField, ErrInvalidInvitation}
}
