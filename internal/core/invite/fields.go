package invite

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// ============================================================================
//                              字段名
// ============================================================================

// 载荷字段名（Fragment 的键）
const (
	FieldPSK           = "psk"
	FieldOwnerIdentity = "ownerOrbitDbIdentity"
	FieldAuthData      = "authData"
	FieldCommunityName = "communityName"
	FieldSeed          = "seed"
)

// 查询参数键
const (
	KeyPSK           = "k"
	KeyOwnerIdentity = "o"
	KeyAuthData      = "a"
	KeyCommunityName = "c"
	KeySeed          = "s"
)

// ============================================================================
//                              校验函数类型
// ============================================================================

// Fragment 校验得到的载荷片段，按字段名索引
//
// 普通字段的值为 string，嵌套字段的值为子 Fragment。
type Fragment map[string]any

// ProcessFunc 将原始值转换为待递归校验的字符串
type ProcessFunc func(value string) (string, error)

// ValidateFunc 校验原始值并返回片段
//
// 嵌套字段的片段值是 process 的输出（子查询串），由解码引擎继续递归。
type ValidateFunc func(value string, process ProcessFunc) (Fragment, error)

// WrapFunc 编码端的 process 逆操作
type WrapFunc func(query string) string

var (
	onionAddressRe  = regexp.MustCompile(`^[a-z0-9]{56}$`)
	peerIDRe        = regexp.MustCompile(`^[A-Za-z0-9]{46}$`)
	seedRe          = regexp.MustCompile(`^[A-Za-z0-9]{16}$`)
	communityNameRe = regexp.MustCompile(`^[-A-Za-z0-9 ]+$`)
	authDataRe      = regexp.MustCompile(`^[A-Za-z0-9_-]+={0,2}$`)
)

var (
	errEmpty     = errors.New("empty value")
	errCharset   = errors.New("unexpected characters")
	errBadFormat = errors.New("bad format")
	errBadPSK    = errors.New("psk rejected by validator")
)

// ============================================================================
//                              顶层字段
// ============================================================================

// validatePSK 返回委托给外部谓词的 PSK 校验函数
func validatePSK(valid types.PSKValidator) ValidateFunc {
	return func(value string, _ ProcessFunc) (Fragment, error) {
		if value == "" {
			return nil, errEmpty
		}
		if valid == nil || !valid(value) {
			return nil, errBadPSK
		}
		return Fragment{FieldPSK: value}, nil
	}
}

// validateOwnerIdentity 只检查存在性
func validateOwnerIdentity(value string, _ ProcessFunc) (Fragment, error) {
	if value == "" {
		return nil, errEmpty
	}
	return Fragment{FieldOwnerIdentity: value}, nil
}

// validateAuthData 检查字符集，再经 process 解出嵌套查询串
func validateAuthData(value string, process ProcessFunc) (Fragment, error) {
	if !authDataRe.MatchString(value) {
		return nil, errCharset
	}
	if process == nil {
		return Fragment{FieldAuthData: value}, nil
	}
	query, err := process(value)
	if err != nil {
		return nil, err
	}
	return Fragment{FieldAuthData: query}, nil
}

// decodeAuthData base64url 解码（padding 可选）
func decodeAuthData(value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(value, "="))
	if err != nil {
		return "", errBadFormat
	}
	return string(raw), nil
}

// encodeAuthData 无 padding 的 base64url 编码
func encodeAuthData(query string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(query))
}

// ============================================================================
//                              authData 子字段
// ============================================================================

func validateCommunityName(value string, _ ProcessFunc) (Fragment, error) {
	if !communityNameRe.MatchString(value) {
		return nil, errCharset
	}
	return Fragment{FieldCommunityName: value}, nil
}

func validateSeed(value string, _ ProcessFunc) (Fragment, error) {
	if !seedRe.MatchString(value) {
		return nil, errBadFormat
	}
	return Fragment{FieldSeed: value}, nil
}

// ============================================================================
//                              节点对
// ============================================================================

// ValidatePeerID 检查节点 ID（46 位字母数字）
func ValidatePeerID(peerID string) error {
	if !peerIDRe.MatchString(peerID) {
		return types.NewFieldFormatError(peerID, peerID, "peer id must be 46 alphanumeric characters")
	}
	return nil
}

// ValidateOnionAddress 检查 onion 地址（56 位小写字母数字，不含 .onion 后缀）
//
// 在查询串中 onion 地址是以 peerID 为键的值，错误以 peerID 作为键报告。
func ValidateOnionAddress(peerID, addr string) error {
	if !onionAddressRe.MatchString(addr) {
		return types.NewFieldFormatError(peerID, addr, "onion address must be 56 lowercase alphanumeric characters")
	}
	return nil
}

// ValidatePair 检查节点对
func ValidatePair(p types.InvitationPair) error {
	if err := ValidatePeerID(p.PeerID); err != nil {
		return err
	}
	return ValidateOnionAddress(p.PeerID, p.OnionAddress)
}
