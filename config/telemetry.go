package config

import (
	"fmt"
	"time"
)

// TelemetryConfig 节点连接遥测配置
type TelemetryConfig struct {
	// EnablePersistence 是否将遥测持久化到 BadgerDB
	// 默认值: true
	EnablePersistence bool `json:"enable_persistence"`

	// PersistInterval 周期性持久化间隔（0 表示只在停止时持久化）
	// 默认值: 30s
	PersistInterval Duration `json:"persist_interval"`
}

// DefaultTelemetryConfig 返回默认遥测配置
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		EnablePersistence: true,
		PersistInterval:   Duration(30 * time.Second),
	}
}

// Validate 验证遥测配置
func (c *TelemetryConfig) Validate() error {
	if c.PersistInterval < 0 {
		return fmt.Errorf("telemetry: persist_interval cannot be negative")
	}
	return nil
}
