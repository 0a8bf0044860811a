package storage

import (
	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/core/storage/engine"
)

// ConfigFromUnified 从统一配置创建引擎配置
//
// 数据库位于 ${DataDir}/telemetry.db。
func ConfigFromUnified(cfg *config.Config) *engine.Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return engine.DefaultConfig(cfg.Storage.DBPath())
}
