package types

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ============================================================================
//                              PSK 校验谓词
// ============================================================================

// DefaultPSKSize 默认 PSK 字节长度
const DefaultPSKSize = 32

// PSKValidator PSK 格式校验谓词
//
// 本系统从不检查 PSK 的字节内容，只询问外部谓词其格式是否有效。
type PSKValidator func(psk string) bool

// NewPSKValidator 创建基于 base64 长度检查的默认谓词
//
// PSK 以标准 base64 编码传递，解码后必须恰好为 size 字节。
func NewPSKValidator(size int) PSKValidator {
	if size <= 0 {
		size = DefaultPSKSize
	}
	return func(psk string) bool {
		return CheckPSK(psk, size) == nil
	}
}

// CheckPSK 检查 PSK 的编码与长度
func CheckPSK(psk string, size int) error {
	psk = strings.TrimSpace(psk)
	if psk == "" {
		return ErrEmptyPSK
	}
	raw, err := base64.StdEncoding.DecodeString(psk)
	if err != nil {
		return fmt.Errorf("decode psk: %w", err)
	}
	if len(raw) != size {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPSKLength, len(raw), size)
	}
	return nil
}
