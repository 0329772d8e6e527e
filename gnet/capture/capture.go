// Package capture 实现单网卡的发送/接收控制循环：可选地发送一次载荷，
// 然后在计数与截止时间约束下轮询接收并渲染每一帧。
package capture

import (
	"time"

	"github.com/sofiworker/nethex/glog"
	"github.com/sofiworker/nethex/gnet/hexframe"
	"github.com/sofiworker/nethex/gnet/rawcap"
)

// Unbounded 表示不限制接收数量，任意负数同义。
const Unbounded = -1

// Config 一次运行的配置，循环开始后只读。
type Config struct {
	// Payload 为 nil 时不发送。
	Payload []byte
	// Deadline 为 0 时不限制运行时间。
	Deadline time.Duration
	// Count 最多接收的帧数，0 表示不接收，负数表示不限。
	Count int
}

// Bounded 是否限制接收数量。
func (c Config) Bounded() bool { return c.Count >= 0 }

// State 循环的运行状态。
type State struct {
	Remaining int
	Start     time.Time
	Received  int
	Timeouts  int
}

// StopReason 循环正常结束的原因。
type StopReason int

const (
	// Running 尚未结束。
	Running StopReason = iota
	// CountExhausted 已接收到 Count 帧。
	CountExhausted
	// DeadlineExceeded 运行时间超过 Deadline。
	DeadlineExceeded
)

func (r StopReason) String() string {
	switch r {
	case CountExhausted:
		return "count exhausted"
	case DeadlineExceeded:
		return "deadline exceeded"
	default:
		return "running"
	}
}

// Done 判断循环是否应结束，无副作用。计数与截止时间独立判断，计数优先。
func Done(cfg Config, st State, elapsed time.Duration) (StopReason, bool) {
	if cfg.Bounded() && st.Remaining <= 0 {
		return CountExhausted, true
	}
	if cfg.Deadline > 0 && elapsed > cfg.Deadline {
		return DeadlineExceeded, true
	}
	return Running, false
}

// Result 运行结果。
type Result struct {
	Sent     bool
	Received int
	Timeouts int
	Elapsed  time.Duration
	Reason   StopReason
}

var now = time.Now

// Run 在 ch 上执行一次运行。正常结束返回结束原因，发送、接收或渲染失败立即返回错误。
// 计数不限且没有截止时间时，只有外部中断或致命错误会结束循环。
func Run(ch rawcap.Channel, cfg Config, r Renderer) (res Result, err error) {
	if cfg.Payload != nil {
		glog.Info("sending bytes", "len", len(cfg.Payload), "hex", hexframe.Encode(cfg.Payload))
		if serr := ch.Send(cfg.Payload); serr != nil {
			return res, &SendError{Len: len(cfg.Payload), Err: serr}
		}
		res.Sent = true
	}

	st := State{Remaining: cfg.Count, Start: now()}
	defer func() {
		res.Received = st.Received
		res.Timeouts = st.Timeouts
		res.Elapsed = now().Sub(st.Start)
	}()

	for {
		if reason, done := Done(cfg, st, now().Sub(st.Start)); done {
			res.Reason = reason
			glog.Debug("capture finished", "reason", reason.String(), "received", st.Received, "timeouts", st.Timeouts)
			return res, nil
		}

		frame, outcome, rerr := ch.Receive()
		switch outcome {
		case rawcap.Delivered:
			glog.Debug("frame received", "summary", hexframe.LazySummary{Data: frame.Data, LinkType: ch.LinkType()})
			if werr := r.Render(frame); werr != nil {
				return res, &RenderError{Err: werr}
			}
			st.Received++
			if cfg.Bounded() {
				st.Remaining--
			}
		case rawcap.TimedOut:
			st.Timeouts++
		default:
			return res, &ReceiveError{Received: st.Received, Err: rerr}
		}
	}
}
