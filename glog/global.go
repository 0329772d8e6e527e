package glog

import (
	"sync"
)

var (
	global GLogger
	// pkg 与 global 共享 core，额外跳过包级函数这一层调用栈。
	pkg GLogger
	mu  sync.RWMutex
)

func init() {
	logger, err := newZapLogger(DefaultConfig())
	if err != nil {
		panic("glog: failed to initialize global logger: " + err.Error())
	}
	setGlobal(logger)
}

// setGlobal 调用方需持有 mu。
func setGlobal(l GLogger) {
	global = l
	pkg = l
	if zl, ok := l.(*zapLogger); ok {
		pkg = zl.withCallerSkip(1)
	}
}

// Configure 使用函数式选项来原子性地重新配置全局日志记录器。
func Configure(opts ...Option) error {
	mu.Lock()
	defer mu.Unlock()

	// 从当前的全局 logger 实例中获取配置
	currentConfig := global.Config()
	if currentConfig == nil {
		currentConfig = DefaultConfig()
	}

	newCfg := currentConfig.clone()
	for _, opt := range opts {
		opt(newCfg)
	}

	newLogger, err := New(newCfg)
	if err != nil {
		return err
	}

	setGlobal(newLogger)
	return nil
}

// Reset 将全局日志记录器恢复为默认配置。
func Reset() error {
	logger, err := New(DefaultConfig())
	if err != nil {
		return err
	}
	mu.Lock()
	setGlobal(logger)
	mu.Unlock()
	return nil
}

// Default 返回立即可用的默认全局日志记录器。
func Default() GLogger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func pkgLogger() GLogger {
	mu.RLock()
	defer mu.RUnlock()
	return pkg
}

// New 根据提供的配置创建一个新的 GLogger 实例。
func New(c *Config) (GLogger, error) {
	return newZapLogger(c)
}

// SetLevel 动态地改变全局日志记录器的级别。
func SetLevel(level Level) {
	Default().SetLevel(level)
}

func With(args ...interface{}) GLogger            { return Default().With(args...) }
func Debug(msg string, args ...interface{})       { pkgLogger().Debug(msg, args...) }
func Info(msg string, args ...interface{})        { pkgLogger().Info(msg, args...) }
func Warn(msg string, args ...interface{})        { pkgLogger().Warn(msg, args...) }
func Error(msg string, args ...interface{})       { pkgLogger().Error(msg, args...) }
func Debugf(template string, args ...interface{}) { pkgLogger().Debugf(template, args...) }
func Infof(template string, args ...interface{})  { pkgLogger().Infof(template, args...) }
func Warnf(template string, args ...interface{})  { pkgLogger().Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { pkgLogger().Errorf(template, args...) }
func Sync() error                                 { return Default().Sync() }
