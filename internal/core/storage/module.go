package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/core/storage/engine"
	"github.com/dep2p/go-realminvite/internal/core/storage/engine/badger"
	"github.com/dep2p/go-realminvite/internal/core/storage/kv"
	"github.com/dep2p/go-realminvite/internal/util/logger"
)

var log = logger.Logger("core/storage")

// Params Storage 模块依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// Result Storage 模块提供的结果
type Result struct {
	fx.Out

	Engine engine.InternalEngine
}

// Module 返回 Storage Fx 模块
//
// 提供:
//   - engine.InternalEngine: 存储引擎实例
//
// 生命周期:
//   - OnStart: 启动引擎（GC 等后台任务）
//   - OnStop: 关闭引擎
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideStorage),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideStorage 提供存储引擎
func ProvideStorage(p Params) (Result, error) {
	eng, err := NewEngine(ConfigFromUnified(p.UnifiedCfg))
	if err != nil {
		return Result{}, err
	}
	return Result{Engine: eng}, nil
}

func registerLifecycle(lc fx.Lifecycle, eng engine.InternalEngine) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if err := eng.Start(); err != nil {
				log.Error("存储引擎启动失败", "error", err)
				return err
			}
			log.Debug("存储引擎已启动")
			return nil
		},
		OnStop: func(_ context.Context) error {
			if err := eng.Close(); err != nil {
				log.Warn("存储引擎关闭失败", "error", err)
				return err
			}
			log.Debug("存储引擎已关闭")
			return nil
		},
	})
}

// NewEngine 根据配置创建存储引擎
func NewEngine(cfg *engine.Config) (engine.InternalEngine, error) {
	log.Debug("创建存储引擎", "path", cfg.Path)
	eng, err := badger.New(cfg)
	if err != nil {
		log.Error("创建存储引擎失败", "error", err)
		return nil, err
	}
	return eng, nil
}

// NewKVStore 创建带前缀的 KVStore
func NewKVStore(eng engine.InternalEngine, prefix []byte) *kv.Store {
	return kv.New(eng, prefix)
}

// InternalEngine 是 engine.InternalEngine 的类型别名
type InternalEngine = engine.InternalEngine

// KVStore 是 kv.Store 的类型别名
type KVStore = kv.Store
