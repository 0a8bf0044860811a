package realminvite

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/core/invite"
	"github.com/dep2p/go-realminvite/internal/util/logger"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

var log = logger.Logger("realminvite")

// Version 当前版本
const Version = "v0.1.0"

// BuildInfo 构建信息（通过 ldflags 注入）
var (
	// GitCommit Git 提交哈希
	GitCommit string

	// BuildDate 构建日期
	BuildDate string
)

// VersionInfo 返回完整版本信息字符串
func VersionInfo() string {
	info := "realminvite " + Version
	if GitCommit != "" {
		info += " (" + GitCommit[:min(8, len(GitCommit))] + ")"
	}
	if BuildDate != "" {
		info += " built " + BuildDate
	}
	return info
}

// stopTimeout Close 时停止 Fx 应用的超时
const stopTimeout = 10 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              App
// ════════════════════════════════════════════════════════════════════════════

// App 邀请链接应用
//
// 编解码方法是纯函数，无需 Start 即可使用；Start 负责加载持久化的遥测。
type App struct {
	mu      sync.Mutex
	app     *fx.App
	config  *config.Config
	started bool
	closed  bool

	service  *invite.Service
	recorder interfaces.TelemetryRecorder
}

var _ interfaces.InvitationService = (*App)(nil)

// New 创建应用
//
// 示例：
//
//	app, err := realminvite.New(
//	    realminvite.WithCommunityFile("community.json"),
//	    realminvite.WithPersistence(false),
//	)
func New(opts ...Option) (*App, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	a := &App{config: o.resolve()}
	fxApp, err := buildFxApp(o, a)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	a.app = fxApp
	return a, nil
}

// Start 启动应用（加载遥测、启动周期持久化）
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.started {
		return ErrAlreadyStarted
	}
	if err := a.app.Start(ctx); err != nil {
		log.Error("启动失败", "error", err)
		return fmt.Errorf("start: %w", err)
	}
	a.started = true
	log.Info("已启动", "version", Version)
	return nil
}

// Stop 停止应用并写回遥测
//
// 遥测与存储引擎不可重启，停止后应用即关闭。
func (a *App) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if !a.started {
		return ErrNotStarted
	}
	return a.shutdown(ctx)
}

// Close 关闭应用并释放资源
//
// 可重复调用。
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	// Fx 只对已执行 OnStart 的钩子调用 OnStop，
	// 未启动时先启动一次，以关闭 New 阶段打开的存储引擎
	if !a.started {
		if err := a.app.Start(ctx); err != nil {
			a.closed = true
			return fmt.Errorf("close: %w", err)
		}
		a.started = true
	}
	return a.shutdown(ctx)
}

func (a *App) shutdown(ctx context.Context) error {
	a.started = false
	a.closed = true
	if err := a.app.Stop(ctx); err != nil {
		log.Error("停止失败", "error", err)
		return fmt.Errorf("stop: %w", err)
	}
	log.Info("已停止")
	return nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              邀请链接
// ════════════════════════════════════════════════════════════════════════════

// InvitationURL 根据社区当前状态构建邀请链接
//
// 数据未就绪时返回空字符串。
func (a *App) InvitationURL(version types.SchemaVersion) string {
	return a.service.InvitationURL(version)
}

// DefaultInvitationURL 使用配置的默认版本构建邀请链接
func (a *App) DefaultInvitationURL() string {
	return a.service.InvitationURL(a.config.Invite.Version())
}

// Parse 解析邀请链接，根据是否携带 authData 自动选择版本
func (a *App) Parse(rawURL string) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	return a.service.Parse(rawURL)
}

// ParseVersion 按指定版本解析邀请链接
func (a *App) ParseVersion(rawURL string, version types.SchemaVersion) (*types.InvitationPayload, *types.DecodeDiagnostics, error) {
	return a.service.ParseVersion(rawURL, version)
}

// RankedPeers 返回按连接质量排序后的节点地址
func (a *App) RankedPeers() ([]string, error) {
	return a.service.RankedPeers()
}

// Encode 将载荷编码为链接（使用配置的前缀）
func (a *App) Encode(p *types.InvitationPayload) (string, error) {
	return a.service.Encode(a.config.Invite.BaseURL, p)
}

// Telemetry 返回遥测记录器，由网络层上报连接事件
func (a *App) Telemetry() interfaces.TelemetryRecorder {
	return a.recorder
}

// Config 返回当前配置
func (a *App) Config() *config.Config {
	return a.config
}
