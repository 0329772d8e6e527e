package glog

// Level 日志级别，数值与 zapcore.Level 一致。
type Level int8

const (
	DebugLevel Level = iota - 1
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Encoding 日志编码格式。
type Encoding string

const (
	JSONEncoding    Encoding = "json"
	ConsoleEncoding Encoding = "console"
)

// ParseLevel 将字符串解析为日志级别，无法识别时返回 InfoLevel 和 false。
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel, true
	case "info", "INFO", "":
		return InfoLevel, true
	case "warn", "WARN", "warning":
		return WarnLevel, true
	case "error", "ERROR":
		return ErrorLevel, true
	}
	return InfoLevel, false
}
