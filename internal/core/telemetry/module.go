package telemetry

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/core/storage/engine"
	"github.com/dep2p/go-realminvite/internal/core/storage/kv"
	"github.com/dep2p/go-realminvite/internal/util/logger"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
)

// 包级别日志实例
var log = logger.Logger("telemetry")

// ============================================================================
//                              模块输入输出
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置
	Config *config.Config

	// Engine 存储引擎（可选，未启用持久化时不提供）
	Engine engine.InternalEngine `optional:"true"`

	// Clock 时间源（可选，测试中注入 mock）
	Clock clock.Clock `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Recorder interfaces.TelemetryRecorder
	Provider interfaces.TelemetryProvider
}

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) ModuleOutput {
	opts := []Option{WithClock(input.Clock)}
	if input.Engine != nil && input.Config.Telemetry.EnablePersistence {
		opts = append(opts, WithStore(
			kv.New(input.Engine, KeyPrefix),
			input.Config.Telemetry.PersistInterval.Duration(),
		))
	}

	tracker := NewTracker(opts...)
	return ModuleOutput{
		Recorder: tracker,
		Provider: tracker,
	}
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("telemetry",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

func registerLifecycle(lc fx.Lifecycle, recorder interfaces.TelemetryRecorder) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Debug("遥测模块启动")
			return recorder.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Debug("遥测模块停止")
			return recorder.Stop(ctx)
		},
	})
}
