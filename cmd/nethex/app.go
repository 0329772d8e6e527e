package main

import (
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/spf13/pflag"

	"github.com/sofiworker/nethex/glog"
	"github.com/sofiworker/nethex/gnet/capture"
	"github.com/sofiworker/nethex/gnet/hexframe"
	"github.com/sofiworker/nethex/gnet/link"
	"github.com/sofiworker/nethex/gnet/netinfo"
	"github.com/sofiworker/nethex/gnet/rawcap"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	interfaces func() ([]netinfo.Interface, error)
	lookup     func(name string) (*link.Link, error)
	open       func(ifi net.Interface, cfg rawcap.Config) (rawcap.Channel, error)
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		interfaces: netinfo.Interfaces,
		lookup:     link.ByName,
		open:       rawcap.Open,
	}
}

// run 是进程唯一的出口映射：解析参数、执行并把错误转换为退出码。
func (a *app) run(args []string) int {
	fs := newFlagSet()
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: nethex [flags] <interface> [hexbytes]\n\nFlags:\n%s", fs.FlagUsages())
	}

	opts, err := parseOptions(fs, args)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return exitOK
	case err != nil:
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(a.stderr, "nethex: %v\n", err)
			fs.Usage()
			return exitUsage
		}
		fmt.Fprintf(a.stderr, "nethex: %v\n", err)
		return exitFatal
	}

	if err := a.configureLogging(opts); err != nil {
		fmt.Fprintf(a.stderr, "nethex: configure logging: %v\n", err)
		return exitFatal
	}
	defer func() { _ = glog.Sync() }()

	if err := a.execute(opts); err != nil {
		glog.Error("nethex failed", "err", err)
		return exitFatal
	}
	return exitOK
}

func (a *app) configureLogging(opts *options) error {
	if err := glog.Reset(); err != nil {
		return err
	}
	logOpts := opts.logOptions()
	if opts.LogFile == "" {
		logOpts = append(logOpts, glog.WithWriters(a.stderr))
	}
	return glog.Configure(logOpts...)
}

func (a *app) execute(opts *options) error {
	if opts.List {
		return a.list()
	}

	// 先解码载荷，解码失败时不打开通道
	var payload []byte
	if opts.HasPayload {
		b, err := hexframe.Decode(opts.Hex)
		if err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		payload = b
	}

	l, err := a.lookup(opts.Interface)
	if err != nil {
		return fmt.Errorf("resolve interface: %w", err)
	}
	if !l.Up {
		glog.Warn("interface is not up", "iface", l.Name, "state", l.OperState)
	}

	ch, err := a.open(l.Interface(), opts.channelConfig())
	if err != nil {
		return err
	}
	defer func() {
		st := ch.Stats()
		glog.Debug("channel closed", "iface", l.Name,
			"sent", st.FramesSent, "received", st.FramesReceived, "timeouts", st.Timeouts)
		_ = ch.Close()
	}()

	glog.Debug("channel opened", "iface", l.Name, "index", l.Index, "link_type", ch.LinkType().String(), "poll", opts.Poll.String())

	res, err := capture.Run(ch, opts.captureConfig(payload), capture.NewTextRenderer(a.stdout, opts.Width))
	if err != nil {
		return err
	}
	glog.Info("capture finished", "reason", res.Reason.String(), "received", res.Received, "elapsed", res.Elapsed.String())
	return nil
}

func (a *app) list() error {
	ifaces, err := a.interfaces()
	if err != nil {
		return fmt.Errorf("list interfaces: %w", err)
	}
	return netinfo.WriteListing(a.stdout, ifaces)
}
