//go:build linux

package rawcap

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestClassifyRecvError(t *testing.T) {
	cases := []struct {
		err  error
		want Outcome
	}{
		{nil, Delivered},
		{unix.EAGAIN, TimedOut},
		{unix.EWOULDBLOCK, TimedOut},
		{unix.EINTR, TimedOut},
		{fmt.Errorf("wrapped: %w", unix.EAGAIN), TimedOut},
		{unix.ENETDOWN, Failed},
		{unix.ENXIO, Failed},
		{errors.New("boom"), Failed},
	}
	for _, tc := range cases {
		if got := classifyRecvError(tc.err); got != tc.want {
			t.Fatalf("classifyRecvError(%v)=%s want %s", tc.err, got, tc.want)
		}
	}
}

func TestHtons(t *testing.T) {
	if got := htons(unix.ETH_P_ALL); got != 0x0300 {
		t.Fatalf("htons(ETH_P_ALL)=%#04x", got)
	}
	if got := htons(0x0806); got != 0x0608 {
		t.Fatalf("htons(0x0806)=%#04x", got)
	}
}

func TestClosedChannel(t *testing.T) {
	c := &linuxChannel{fd: -1, name: "test0", closed: true}
	if err := c.Send([]byte{1}); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("expected ErrChannelClosed, got %v", err)
	}
	if _, outcome, err := c.Receive(); outcome != Failed || !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("expected failed receive on closed channel, got %s %v", outcome, err)
	}
	if err := c.Close(); !errors.Is(err, ErrChannelClosed) {
		t.Fatalf("expected ErrChannelClosed on double close, got %v", err)
	}
}

func TestSendEmptyFrame(t *testing.T) {
	c := &linuxChannel{fd: -1, name: "test0"}
	if err := c.Send(nil); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
}

const testPoll = 20 * time.Millisecond

// openLoopback 在 lo 上打开通道，无权限或没有 lo 时跳过。
func openLoopback(t *testing.T, cfg Config) (Channel, *net.Interface) {
	t.Helper()
	lo, err := net.InterfaceByName("lo")
	if err != nil {
		t.Skipf("no loopback interface: %v", err)
	}
	ch, err := Open(*lo, cfg)
	if err != nil {
		t.Skipf("cannot open raw channel on lo (needs CAP_NET_RAW): %v", err)
	}
	t.Cleanup(func() { _ = ch.Close() })
	return ch, lo
}

// testFrame 构造以 marker 开头载荷的以太网帧，EtherType 为本地实验用 0x88b5。
func testFrame(marker string, size int) []byte {
	frame := make([]byte, size)
	copy(frame[0:6], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	copy(frame[6:12], []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01})
	frame[12], frame[13] = 0x88, 0xb5
	copy(frame[14:], marker)
	return frame
}

// waitFor 轮询直到收到以 prefix 开头的帧。
func waitFor(t *testing.T, ch Channel, prefix []byte) Frame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f, outcome, err := ch.Receive()
		if outcome == Failed {
			t.Fatalf("receive failed: %v", err)
		}
		if outcome == Delivered && bytes.HasPrefix(f.Data, prefix) {
			return f
		}
	}
	t.Fatalf("frame with prefix %x not received", prefix)
	return Frame{}
}

func TestLoopbackIdleReceiveTimesOut(t *testing.T) {
	ch, _ := openLoopback(t, Config{PollTimeout: testPoll})

	timedOut := false
	for i := 0; i < 50 && !timedOut; i++ {
		start := time.Now()
		_, outcome, err := ch.Receive()
		elapsed := time.Since(start)
		if outcome == Failed {
			t.Fatalf("receive failed: %v", err)
		}
		if elapsed > 5*testPoll {
			t.Fatalf("receive blocked %s, poll interval is %s", elapsed, testPoll)
		}
		if outcome == TimedOut {
			if err != nil {
				t.Fatalf("timeout must not carry an error: %v", err)
			}
			timedOut = true
		}
	}
	if !timedOut {
		t.Fatal("expected at least one timed-out receive on an idle loopback")
	}
	if ch.Stats().Timeouts == 0 {
		t.Fatal("timeouts not counted")
	}
}

func TestLoopbackSendReceive(t *testing.T) {
	ch, lo := openLoopback(t, Config{PollTimeout: testPoll})
	frame := testFrame("nethex-send-receive", 64)

	if err := ch.Send(frame); err != nil {
		t.Fatalf("send: %v", err)
	}
	f := waitFor(t, ch, frame[:33])

	if !bytes.Equal(f.Data, frame) {
		t.Fatalf("data mismatch:\n got %x\nwant %x", f.Data, frame)
	}
	if f.Info.Length != len(frame) || f.Info.CaptureLength != len(frame) {
		t.Fatalf("lengths: capture=%d orig=%d want %d", f.Info.CaptureLength, f.Info.Length, len(frame))
	}
	if f.Info.InterfaceIndex != lo.Index {
		t.Fatalf("interface index %d want %d", f.Info.InterfaceIndex, lo.Index)
	}
	if f.Info.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}

	st := ch.Stats()
	if st.FramesSent != 1 || st.BytesSent != uint64(len(frame)) || st.FramesReceived == 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestLoopbackSnapLenTruncates(t *testing.T) {
	const snap = 20
	ch, _ := openLoopback(t, Config{PollTimeout: testPoll, SnapLen: snap})
	frame := testFrame("nethex-trunc", 60)

	if err := ch.Send(frame); err != nil {
		t.Fatalf("send: %v", err)
	}
	f := waitFor(t, ch, frame[:snap])

	if len(f.Data) != snap || f.Info.CaptureLength != snap {
		t.Fatalf("captured %d bytes (info %d), want %d", len(f.Data), f.Info.CaptureLength, snap)
	}
	if f.Info.Length != len(frame) {
		t.Fatalf("original length %d want %d", f.Info.Length, len(frame))
	}
	if f.Info.CaptureLength >= f.Info.Length {
		t.Fatalf("expected truncation: capture=%d orig=%d", f.Info.CaptureLength, f.Info.Length)
	}
}
