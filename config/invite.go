package config

import (
	"fmt"
	"net/url"

	"github.com/dep2p/go-realminvite/pkg/types"
)

// InviteConfig 邀请链接配置
type InviteConfig struct {
	// BaseURL 生成链接时使用的前缀（scheme/host 由调用方决定）
	// 默认值: "https://tryquiet.org/join"
	BaseURL string `json:"base_url"`

	// DefaultVersion 构建链接时使用的 schema 版本
	// 默认值: "v2"
	DefaultVersion string `json:"default_version"`

	// MaxPeers 链接中嵌入的最大节点数（限制链接/二维码大小）
	// 默认值: 3
	MaxPeers int `json:"max_peers"`

	// MaxNestingDepth 嵌套子载荷的最大递归深度
	// 默认值: 4
	MaxNestingDepth int `json:"max_nesting_depth"`

	// PSKBytes 默认 PSK 谓词要求的解码后字节数
	// 默认值: 32
	PSKBytes int `json:"psk_bytes"`
}

// DefaultInviteConfig 返回默认邀请链接配置
func DefaultInviteConfig() InviteConfig {
	return InviteConfig{
		BaseURL:         "https://tryquiet.org/join",
		DefaultVersion:  "v2",
		MaxPeers:        3,
		MaxNestingDepth: 4,
		PSKBytes:        types.DefaultPSKSize,
	}
}

// Validate 验证邀请链接配置
func (c *InviteConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("invite: base_url cannot be empty")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invite: invalid base_url: %w", err)
	}
	if _, err := types.ParseSchemaVersion(c.DefaultVersion); err != nil {
		return fmt.Errorf("invite: %w", err)
	}
	if c.MaxPeers <= 0 {
		return fmt.Errorf("invite: max_peers must be positive")
	}
	if c.MaxNestingDepth <= 0 {
		return fmt.Errorf("invite: max_nesting_depth must be positive")
	}
	if c.PSKBytes <= 0 {
		return fmt.Errorf("invite: psk_bytes must be positive")
	}
	return nil
}

// Version 返回解析后的默认 schema 版本
func (c *InviteConfig) Version() types.SchemaVersion {
	v, err := types.ParseSchemaVersion(c.DefaultVersion)
	if err != nil {
		return types.SchemaV2
	}
	return v
}
