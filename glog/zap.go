package glog

import (
	"fmt"
	"io"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger 基于 zap 实现 GLogger。
type zapLogger struct {
	zapLogger *zap.Logger
	level     zap.AtomicLevel
	config    *Config
}

func newZapLogger(config *Config) (GLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config = config.clone()

	writers, err := buildWriters(config)
	if err != nil {
		return nil, err
	}

	// 使用多个writer
	var coreWriter io.Writer
	if len(writers) == 1 {
		coreWriter = writers[0]
	} else {
		coreWriter = io.MultiWriter(writers...)
	}

	level := zap.NewAtomicLevelAt(zapcore.Level(config.Level))
	core := zapcore.NewCore(buildEncoder(config), zapcore.AddSync(coreWriter), level)

	l := zap.New(core, buildOptions(config)...)
	if len(config.InitialFields) > 0 {
		l = l.With(initialFields(config.InitialFields)...)
	}

	return &zapLogger{
		zapLogger: l,
		level:     level,
		config:    config,
	}, nil
}

func (l *zapLogger) With(args ...interface{}) GLogger {
	newLogger := *l
	newLogger.zapLogger = l.zapLogger.With(toFields(args)...)
	return &newLogger
}

func (l *zapLogger) Debug(msg string, args ...interface{}) {
	l.zapLogger.Debug(msg, toFields(args)...)
}

func (l *zapLogger) Info(msg string, args ...interface{}) {
	l.zapLogger.Info(msg, toFields(args)...)
}

func (l *zapLogger) Warn(msg string, args ...interface{}) {
	l.zapLogger.Warn(msg, toFields(args)...)
}

func (l *zapLogger) Error(msg string, args ...interface{}) {
	l.zapLogger.Error(msg, toFields(args)...)
}

// Debugf 使用格式化字符串记录 debug 级别日志
func (l *zapLogger) Debugf(format string, args ...interface{}) {
	if l.zapLogger.Core().Enabled(zapcore.DebugLevel) {
		l.zapLogger.Debug(fmt.Sprintf(format, args...))
	}
}

// Infof 使用格式化字符串记录 info 级别日志
func (l *zapLogger) Infof(format string, args ...interface{}) {
	if l.zapLogger.Core().Enabled(zapcore.InfoLevel) {
		l.zapLogger.Info(fmt.Sprintf(format, args...))
	}
}

// Warnf 使用格式化字符串记录 warn 级别日志
func (l *zapLogger) Warnf(format string, args ...interface{}) {
	if l.zapLogger.Core().Enabled(zapcore.WarnLevel) {
		l.zapLogger.Warn(fmt.Sprintf(format, args...))
	}
}

// Errorf 使用格式化字符串记录 error 级别日志
func (l *zapLogger) Errorf(format string, args ...interface{}) {
	if l.zapLogger.Core().Enabled(zapcore.ErrorLevel) {
		l.zapLogger.Error(fmt.Sprintf(format, args...))
	}
}

// withCallerSkip 返回额外跳过 skip 层调用栈的副本，供包级函数使用。
func (l *zapLogger) withCallerSkip(skip int) *zapLogger {
	c := *l
	c.zapLogger = l.zapLogger.WithOptions(zap.AddCallerSkip(skip))
	return &c
}

func (l *zapLogger) SetLevel(level Level) {
	l.level.SetLevel(zapcore.Level(level))
	l.config.Level = level
}

func (l *zapLogger) Config() *Config {
	return l.config
}

func (l *zapLogger) Sync() error {
	return l.zapLogger.Sync()
}

// toFields 把键值对参数转换为 zap 字段，参数不合法时只记录一个 error 字段。
func toFields(args []interface{}) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	if len(args)%2 != 0 {
		return []zap.Field{zap.Error(ErrInvalidKeyValuePairs)}
	}
	fields := make([]zap.Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			return []zap.Field{zap.Error(ErrKeyNotString)}
		}
		fields = append(fields, zap.Any(key, args[i+1]))
	}
	return fields
}

func initialFields(m map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Any(k, m[k]))
	}
	return fields
}

func buildEncoder(config *Config) zapcore.Encoder {
	keys := config.EncoderConfig
	if keys == nil {
		keys = DefaultConfig().EncoderConfig
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        keys.TimeKey,
		LevelKey:       keys.LevelKey,
		NameKey:        "logger",
		CallerKey:      keys.CallerKey,
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     keys.MessageKey,
		StacktraceKey:  keys.StacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if config.TimeFormat != "" {
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(config.TimeFormat)
	}

	if config.Encoding == JSONEncoding {
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func buildOptions(config *Config) []zap.Option {
	var opts []zap.Option

	if !config.DisableCaller {
		// 跳过 zapLogger 包装层
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	if !config.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(zap.ErrorLevel))
	}

	return opts
}
