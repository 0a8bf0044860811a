package realminvite

import (
	"fmt"

	"go.uber.org/fx"

	"github.com/dep2p/go-realminvite/config"
	"github.com/dep2p/go-realminvite/internal/core/community"
	"github.com/dep2p/go-realminvite/pkg/interfaces"
	"github.com/dep2p/go-realminvite/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	config *config.Config
	// overrides 在整体配置确定后依次应用，与选项顺序无关
	overrides    []func(*config.Config)
	pskValidator types.PSKValidator
	store        interfaces.CommunityStore
	fxOptions    []fx.Option
}

func newOptions() *options {
	return &options{config: config.NewConfig()}
}

// override 记录单项配置修改
func (o *options) override(fn func(*config.Config)) {
	o.overrides = append(o.overrides, fn)
}

// resolve 在 WithConfig/WithConfigJSON 替换后的配置上应用单项修改
func (o *options) resolve() *config.Config {
	for _, fn := range o.overrides {
		fn(o.config)
	}
	o.overrides = nil
	return o.config
}

// WithConfig 使用完整配置替换默认配置
//
// WithBaseURL、WithMaxPeers 等单项选项无论先后都在其之上生效。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is nil")
		}
		o.config = cfg
		return nil
	}
}

// WithConfigJSON 从 JSON 加载配置
func WithConfigJSON(data []byte) Option {
	return func(o *options) error {
		cfg, err := config.FromJSON(data)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithBaseURL 设置生成链接的前缀
func WithBaseURL(base string) Option {
	return func(o *options) error {
		o.override(func(c *config.Config) { c.Invite.BaseURL = base })
		return nil
	}
}

// WithMaxPeers 设置链接中嵌入的最大节点数
func WithMaxPeers(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("max peers must be positive: %d", n)
		}
		o.override(func(c *config.Config) { c.Invite.MaxPeers = n })
		return nil
	}
}

// WithDataDir 设置数据目录
func WithDataDir(dir string) Option {
	return func(o *options) error {
		o.override(func(c *config.Config) { c.Storage.DataDir = dir })
		return nil
	}
}

// WithPersistence 启用或禁用遥测持久化
func WithPersistence(enable bool) Option {
	return func(o *options) error {
		o.override(func(c *config.Config) { c.Telemetry.EnablePersistence = enable })
		return nil
	}
}

// WithPSKValidator 注入 PSK 格式谓词
func WithPSKValidator(valid types.PSKValidator) Option {
	return func(o *options) error {
		o.pskValidator = valid
		return nil
	}
}

// WithCommunityStore 注入社区存储
func WithCommunityStore(store interfaces.CommunityStore) Option {
	return func(o *options) error {
		o.store = store
		return nil
	}
}

// WithCommunity 使用固定的社区值
func WithCommunity(c types.Community) Option {
	return WithCommunityStore(community.NewMemStore(c))
}

// WithCommunityFile 每次构建链接时从 JSON 文件读取社区
func WithCommunityFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return community.ErrEmptyPath
		}
		o.store = community.NewFileStore(path)
		return nil
	}
}

// WithFxOption 追加自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, opts...)
		return nil
	}
}
