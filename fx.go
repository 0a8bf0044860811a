package realminvite

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-realminvite/internal/core/invite"
	"github.com/dep2p/go-realminvite/internal/core/storage"
	"github.com/dep2p/go-realminvite/internal/core/telemetry"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

// appInjectParams App 组件注入参数
type appInjectParams struct {
	fx.In

	Service  *invite.Service
	Recorder interfaces.TelemetryRecorder
}

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. Storage: 仅在启用遥测持久化时加载
//  2. Telemetry: 连接遥测（可选依赖 Storage）
//  3. Invite: 编解码与链接构建（依赖 Telemetry、社区存储）
func buildFxApp(o *options, app *App) (*fx.App, error) {
	if err := o.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(o.config),
	}

	if valid := o.pskValidator; valid != nil {
		modules = append(modules, fx.Provide(func() types.PSKValidator { return valid }))
	}
	if store := o.store; store != nil {
		modules = append(modules, fx.Provide(func() interfaces.CommunityStore { return store }))
	}

	// Storage 必须先于 Telemetry 注册生命周期：停止时遥测先写回，引擎后关闭
	if o.config.Telemetry.EnablePersistence {
		modules = append(modules, storage.Module())
	}
	modules = append(modules,
		telemetry.Module(),
		invite.Module(),
	)

	modules = append(modules, o.fxOptions...)

	modules = append(modules,
		fx.Invoke(func(p appInjectParams) {
			app.service = p.Service
			app.recorder = p.Recorder
		}),
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	fxApp := fx.New(modules...)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}
	return fxApp, nil
}
