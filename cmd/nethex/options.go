package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/sofiworker/nethex/gconfig"
	"github.com/sofiworker/nethex/glog"
	"github.com/sofiworker/nethex/gnet/capture"
	"github.com/sofiworker/nethex/gnet/hexframe"
	"github.com/sofiworker/nethex/gnet/rawcap"
)

const envPrefix = "NETHEX"

// options 命令行参数，同名环境变量 NETHEX_<FLAG> 也可提供，显式参数优先。
type options struct {
	Timeout   int           `json:"timeout"`
	Count     int           `json:"count"`
	List      bool          `json:"list"`
	Poll      time.Duration `json:"poll"`
	Width     int           `json:"width"`
	Promisc   bool          `json:"promisc"`
	Verbose   bool          `json:"verbose"`
	LogFile   string        `json:"log-file"`
	LogFormat string        `json:"log-format"`
	// 日志文件轮转，单位分别为 MB、个、天
	LogMaxSize    int `json:"log-max-size"`
	LogMaxBackups int `json:"log-max-backups"`
	LogMaxAge     int `json:"log-max-age"`

	Interface string `json:"-"`
	// HasPayload 为 true 时 Hex 来自第二个位置参数，即使为空也要解码。
	HasPayload bool   `json:"-"`
	Hex        string `json:"-"`
}

// usageError 参数错误，退出码为 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("nethex", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.IntP("timeout", "t", 0, "stop after this many seconds (0 or omitted = no deadline)")
	fs.IntP("count", "c", capture.Unbounded, "stop after receiving this many frames (-1 = unbounded)")
	fs.BoolP("list", "l", false, "list network interfaces and exit")
	fs.Duration("poll", rawcap.DefaultPollTimeout, "receive poll interval")
	fs.Int("width", hexframe.DefaultWidth, "bytes per hex dump row")
	fs.Bool("promisc", false, "enable promiscuous mode")
	fs.BoolP("verbose", "v", false, "enable debug logging")
	fs.String("log-file", "", "write logs to this file with rotation instead of stderr")
	fs.String("log-format", string(glog.ConsoleEncoding), "log format: console or json")
	fs.Int("log-max-size", 100, "rotate the log file after this many megabytes")
	fs.Int("log-max-backups", 7, "rotated log files to keep")
	fs.Int("log-max-age", 30, "days to keep rotated log files")
	return fs
}

// parseOptions 解析参数与环境变量。
func parseOptions(fs *pflag.FlagSet, args []string) (*options, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}
		return nil, usagef("%v", err)
	}

	cfg, err := gconfig.New(gconfig.WithEnvPrefix(envPrefix))
	if err != nil {
		return nil, err
	}
	if err := cfg.BindFlags(fs); err != nil {
		return nil, err
	}

	opts := &options{}
	if err := cfg.Unmarshal(opts); err != nil {
		return nil, usagef("%v", err)
	}

	pos := fs.Args()
	if !opts.List {
		switch len(pos) {
		case 1:
			opts.Interface = pos[0]
		case 2:
			opts.Interface, opts.Hex, opts.HasPayload = pos[0], pos[1], true
		default:
			return nil, usagef("expected <interface> [hexbytes], got %d arguments", len(pos))
		}
	}
	return opts, opts.validate()
}

func (o *options) validate() error {
	if o.Timeout < 0 {
		return usagef("timeout must not be negative: %d", o.Timeout)
	}
	if o.Width <= 0 {
		return usagef("width must be positive: %d", o.Width)
	}
	if o.LogMaxSize <= 0 || o.LogMaxBackups < 0 || o.LogMaxAge < 0 {
		return usagef("invalid log rotation: size=%d backups=%d age=%d", o.LogMaxSize, o.LogMaxBackups, o.LogMaxAge)
	}
	if o.Poll <= 0 {
		return usagef("poll must be positive: %s", o.Poll)
	}
	switch glog.Encoding(o.LogFormat) {
	case glog.ConsoleEncoding, glog.JSONEncoding:
	default:
		return usagef("unknown log format %q", o.LogFormat)
	}
	return nil
}

func (o *options) captureConfig(payload []byte) capture.Config {
	return capture.Config{
		Payload:  payload,
		Deadline: time.Duration(o.Timeout) * time.Second,
		Count:    o.Count,
	}
}

func (o *options) channelConfig() rawcap.Config {
	return rawcap.Config{
		PollTimeout: o.Poll,
		Promiscuous: o.Promisc,
	}
}

func (o *options) logOptions() []glog.Option {
	level := glog.InfoLevel
	if o.Verbose {
		level = glog.DebugLevel
	}
	opts := []glog.Option{
		glog.WithLevel(level),
		glog.WithEncoding(glog.Encoding(o.LogFormat)),
		glog.WithStdout(false),
		glog.WithDisableStacktrace(true),
	}
	if o.LogFile != "" {
		opts = append(opts,
			glog.WithOutputPaths(o.LogFile),
			glog.WithRotation(o.LogMaxSize, o.LogMaxAge, o.LogMaxBackups, true, true),
		)
	}
	return opts
}
