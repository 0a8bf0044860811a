// Package config 提供统一的配置管理
//
// 主 Config 结构体嵌入所有子配置，每个子配置在独立文件中定义，
// 支持从 JSON 加载和保存。
//
// 使用示例：
//
//	cfg := config.NewConfig()
//	cfg.Invite.BaseURL = "quiet://"
//	cfg.Storage.DataDir = "/var/lib/realminvite"
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Config 是 realminvite 的完整配置结构
//
//   - Invite: 邀请链接编解码
//   - Telemetry: 节点连接遥测
//   - Storage: 数据目录
type Config struct {
	// Invite 邀请链接配置
	Invite InviteConfig `json:"invite"`

	// Telemetry 遥测配置
	Telemetry TelemetryConfig `json:"telemetry"`

	// Storage 存储配置
	Storage StorageConfig `json:"storage"`
}

// NewConfig 创建默认配置
func NewConfig() *Config {
	return &Config{
		Invite:    DefaultInviteConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Storage:   DefaultStorageConfig(),
	}
}

// Validate 验证配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Invite.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	// 未启用持久化时不需要数据目录
	if c.Telemetry.EnablePersistence {
		if err := c.Storage.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FromJSON 从 JSON 加载配置
//
// 未出现的字段保留默认值。
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为带缩进的 JSON
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
