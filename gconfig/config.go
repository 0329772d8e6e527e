package gconfig

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config 是一个配置加载器，封装了 viper 的功能。
// 配置来源优先级: 显式设置的命令行参数 > 环境变量 > 参数默认值 > SetDefault。
type Config struct {
	v    *viper.Viper
	opts *Options
	mu   sync.RWMutex
}

// DecoderOption 是一个用于在 Unmarshal 时配置解码器行为的声明式结构体。
type DecoderOption struct {
	// TagName 指定用于 unmarshal 的结构体标签名。
	TagName          string
	WeaklyTypedInput *bool // 是否开启弱类型转换 (e.g., string to int)。使用指针以区分 "未设置" 和 "设置为 false"。
	ErrorUnused      *bool // 如果为 true，当目标结构体中没有对应的字段时会报错。
	// DecodeHooks 是一组自定义解码钩子，用于处理复杂或自定义的类型转换。
	DecodeHooks []mapstructure.DecodeHookFunc
}

// DecoderOptionFunc 是一个用于修改 DecoderOption 的函数。
type DecoderOptionFunc func(*DecoderOption)

// Unmarshaler 定义了一个可以将配置解析到结构体中的接口。
type Unmarshaler interface {
	Unmarshal(rawVal interface{}, opts ...DecoderOptionFunc) error
}

// Options 保存了创建 viper 实例所需的所有配置。
type Options struct {
	// 环境变量配置
	EnvPrefix   string
	EnvReplacer *strings.Replacer

	// DecoderOption 是在 New() 时设置的默认解码器选项。
	DecoderOption *DecoderOption
}

// Option 是一个用于修改 Options 的函数。
type Option func(*Options)

// WithEnvPrefix 设置环境变量前缀。
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) {
		o.EnvPrefix = prefix
	}
}

// WithEnvReplacer 设置配置键到环境变量名的替换规则。
func WithEnvReplacer(r *strings.Replacer) Option {
	return func(o *Options) {
		o.EnvReplacer = r
	}
}

// WithDecoderOptions 设置默认的解码器选项。
func WithDecoderOptions(opts ...DecoderOptionFunc) Option {
	return func(o *Options) {
		if o.DecoderOption == nil {
			o.DecoderOption = &DecoderOption{}
		}
		for _, opt := range opts {
			opt(o.DecoderOption)
		}
	}
}

// WithTagName 返回一个设置了 TagName 的 DecoderOptionFunc。
func WithTagName(tagName string) DecoderOptionFunc {
	return func(opt *DecoderOption) {
		opt.TagName = tagName
	}
}

// WithWeaklyTypedInput 返回一个设置了弱类型转换开关的 DecoderOptionFunc。
func WithWeaklyTypedInput(enabled bool) DecoderOptionFunc {
	return func(opt *DecoderOption) {
		opt.WeaklyTypedInput = &enabled
	}
}

// WithErrorUnused 返回一个设置了 "ErrorUnused" 开关的 DecoderOptionFunc。
func WithErrorUnused(enabled bool) DecoderOptionFunc {
	return func(opt *DecoderOption) {
		opt.ErrorUnused = &enabled
	}
}

// WithDecodeHooks 返回一个设置了自定义解码钩子的 DecoderOptionFunc。
func WithDecodeHooks(hooks ...mapstructure.DecodeHookFunc) DecoderOptionFunc {
	return func(opt *DecoderOption) {
		opt.DecodeHooks = append(opt.DecodeHooks, hooks...)
	}
}

// New 根据提供的选项创建一个配置好的 *Config 实例。
func New(opts ...Option) (*Config, error) {
	options := &Options{
		EnvPrefix:   "APP",
		EnvReplacer: strings.NewReplacer(".", "_", "-", "_"),
		// 默认使用 "json" 标签，并能把字符串解析为 time.Duration
		DecoderOption: &DecoderOption{
			TagName: "json",
			DecodeHooks: []mapstructure.DecodeHookFunc{
				mapstructure.StringToTimeDurationHookFunc(),
			},
		},
	}
	for _, opt := range opts {
		opt(options)
	}

	v := viper.New()
	v.SetEnvPrefix(options.EnvPrefix)
	if options.EnvReplacer != nil {
		v.SetEnvKeyReplacer(options.EnvReplacer)
	}
	v.AutomaticEnv()

	return &Config{v: v, opts: options}, nil
}

// BindFlags 将命令行参数绑定为配置键，键名与参数名相同。
func (c *Config) BindFlags(fs *pflag.FlagSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.v.BindPFlags(fs); err != nil {
		return fmt.Errorf("gconfig: bind flags: %w", err)
	}
	return nil
}

// Unmarshal 将配置解析到 target 结构体中。
func (c *Config) Unmarshal(target interface{}, opts ...DecoderOptionFunc) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// 从全局选项克隆一份解码器选项
	finalOpt := &DecoderOption{}
	if c.opts.DecoderOption != nil {
		*finalOpt = *c.opts.DecoderOption
		finalOpt.DecodeHooks = append([]mapstructure.DecodeHookFunc(nil), c.opts.DecoderOption.DecodeHooks...)
	}

	// 应用所有传入的 Unmarshal 选项
	for _, opt := range opts {
		opt(finalOpt)
	}

	if err := c.v.Unmarshal(target, buildViperDecoderOptions(finalOpt)...); err != nil {
		return fmt.Errorf("gconfig: unmarshal: %w", err)
	}
	return nil
}

// buildViperDecoderOptions 将声明式的 DecoderOption 转换为 viper 需要的函数式选项。
func buildViperDecoderOptions(opt *DecoderOption) []viper.DecoderConfigOption {
	if opt == nil {
		return nil
	}
	return []viper.DecoderConfigOption{func(cfg *mapstructure.DecoderConfig) {
		if opt.TagName != "" {
			cfg.TagName = opt.TagName
		}
		if opt.WeaklyTypedInput != nil {
			cfg.WeaklyTypedInput = *opt.WeaklyTypedInput
		}
		if opt.ErrorUnused != nil {
			cfg.ErrorUnused = *opt.ErrorUnused
		}
		if len(opt.DecodeHooks) > 0 {
			cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(opt.DecodeHooks...)
		}
	}}
}

// SetDefault 设置配置项的默认值。
func (c *Config) SetDefault(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.SetDefault(key, value)
}

// Set 显式设置配置项，优先级最高。
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v.Set(key, value)
}

// GetString 获取一个字符串类型的配置项。
func (c *Config) GetString(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetString(key)
}

// IsSet 判断配置项是否由任一来源提供。
func (c *Config) IsSet(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.IsSet(key)
}

// AllSettings 返回所有配置项的 map。
func (c *Config) AllSettings() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.AllSettings()
}
