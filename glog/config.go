package glog

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig 定义了日志轮转的配置。
type RotationConfig struct {
	MaxSize    int // MB
	MaxAge     int // days
	MaxBackups int
	LocalTime  bool
	Compress   bool
}

// EncoderConfig 定义了结构化日志中各个字段的键名。
type EncoderConfig struct {
	MessageKey    string `json:"message_key"`
	LevelKey      string `json:"level_key"`
	TimeKey       string `json:"time_key"`
	CallerKey     string `json:"caller_key"`
	StacktraceKey string `json:"stacktrace_key"`
}

// Config 是一个通用的日志配置结构体。
type Config struct {
	Level             Level
	Encoding          Encoding
	InitialFields     map[string]interface{}
	EnableStdout      bool
	EnableStderr      bool
	FilePaths         []string
	Writers           []io.Writer
	EncoderConfig     *EncoderConfig
	RotationConfig    *RotationConfig
	DisableCaller     bool
	DisableStacktrace bool
	TimeFormat        string
}

// DefaultConfig 返回一个被完全初始化的默认日志配置。
// 默认输出到标准输出，配置文件路径后对文件启用轮转。
func DefaultConfig() *Config {
	return &Config{
		Level:             InfoLevel,
		Encoding:          ConsoleEncoding,
		EnableStdout:      true,
		FilePaths:         nil,
		DisableCaller:     false,
		DisableStacktrace: false,
		InitialFields:     make(map[string]interface{}),
		TimeFormat:        "2006-01-02 15:04:05.000",
		RotationConfig: &RotationConfig{
			MaxSize:    100,
			MaxAge:     30,
			MaxBackups: 7,
			Compress:   true,
			LocalTime:  true,
		},
		EncoderConfig: &EncoderConfig{
			MessageKey:    "msg",
			LevelKey:      "lvl",
			TimeKey:       "ts",
			CallerKey:     "caller",
			StacktraceKey: "stack",
		},
	}
}

// clone 返回配置的深拷贝。
func (c *Config) clone() *Config {
	cp := *c
	if c.RotationConfig != nil {
		rotation := *c.RotationConfig
		cp.RotationConfig = &rotation
	}
	if c.EncoderConfig != nil {
		enc := *c.EncoderConfig
		cp.EncoderConfig = &enc
	}
	if c.InitialFields != nil {
		cp.InitialFields = make(map[string]interface{}, len(c.InitialFields))
		for k, v := range c.InitialFields {
			cp.InitialFields[k] = v
		}
	}
	cp.FilePaths = append([]string(nil), c.FilePaths...)
	cp.Writers = append([]io.Writer(nil), c.Writers...)
	return &cp
}

// buildWriters 根据配置构建 io.Writer。
func buildWriters(config *Config) ([]io.Writer, error) {
	writers := make([]io.Writer, 0, len(config.Writers)+len(config.FilePaths)+2)

	if config.EnableStdout {
		writers = append(writers, os.Stdout)
	}
	if config.EnableStderr {
		writers = append(writers, os.Stderr)
	}
	writers = append(writers, config.Writers...)

	// 如果启用了文件日志但没有配置轮转，则提供一个默认的轮转配置
	rotationConfig := config.RotationConfig
	if len(config.FilePaths) > 0 && rotationConfig == nil {
		rotationConfig = &RotationConfig{
			MaxSize:    100, // 100 MB
			MaxAge:     30,  // 30 days
			MaxBackups: 7,
			Compress:   true,
			LocalTime:  true,
		}
	}

	for _, path := range config.FilePaths {
		writers = append(writers, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    rotationConfig.MaxSize,
			MaxAge:     rotationConfig.MaxAge,
			MaxBackups: rotationConfig.MaxBackups,
			LocalTime:  rotationConfig.LocalTime,
			Compress:   rotationConfig.Compress,
		})
	}

	// 没有任何输出时退回到标准输出
	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	return writers, nil
}
