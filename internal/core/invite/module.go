package invite

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/util/logger"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

// 包级别日志实例
var log = logger.Logger("invite")

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	Config *config.Config

	// PSKValidator PSK 格式谓词（可选，默认检查 base64 与字节长度）
	PSKValidator types.PSKValidator `optional:"true"`

	// Store 社区存储（可选）
	Store interfaces.CommunityStore `optional:"true"`

	// Telemetry 遥测提供者（可选）
	Telemetry interfaces.TelemetryProvider `optional:"true"`
}

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Service           *Service
	InvitationService interfaces.InvitationService
}

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) ModuleOutput {
	cfg := input.Config.Invite

	valid := input.PSKValidator
	if valid == nil {
		valid = types.NewPSKValidator(cfg.PSKBytes)
	}

	svc := NewService(ServiceConfig{
		BaseURL:      cfg.BaseURL,
		MaxPeers:     cfg.MaxPeers,
		MaxDepth:     cfg.MaxNestingDepth,
		PSKValidator: valid,
	}, input.Store, input.Telemetry)

	return ModuleOutput{
		Service:           svc,
		InvitationService: svc,
	}
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("invite",
		fx.Provide(ProvideServices),
	)
}
