//go:build linux

package rawcap

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/sys/unix"
)

type linuxChannel struct {
	fd      int
	name    string
	ifIndex int
	buf     []byte
	stats   Stats
	closed  bool
}

func openChannel(ifi net.Interface, cfg Config) (Channel, error) {
	proto := htons(unix.ETH_P_ALL)

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(proto))
	if err != nil {
		kind := KindOpen
		if errors.Is(err, unix.EAFNOSUPPORT) || errors.Is(err, unix.ESOCKTNOSUPPORT) {
			kind = KindUnsupported
		}
		return nil, &OpenError{Kind: kind, Interface: ifi.Name, Op: "socket", Err: err}
	}

	fail := func(op string, err error) (Channel, error) {
		_ = unix.Close(fd)
		return nil, &OpenError{Kind: KindOpen, Interface: ifi.Name, Op: op, Err: err}
	}

	if err := unix.Bind(fd, &unix.SockaddrLinklayer{Protocol: proto, Ifindex: ifi.Index}); err != nil {
		return fail("bind", err)
	}

	tv := unix.NsecToTimeval(cfg.PollTimeout.Nanoseconds())
	if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return fail("set receive timeout", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_RCVBUF, cfg.BufferSize); err != nil {
		return fail("set receive buffer", err)
	}
	if cfg.Promiscuous {
		mreq := unix.PacketMreq{Ifindex: int32(ifi.Index), Type: unix.PACKET_MR_PROMISC}
		if err := unix.SetsockoptPacketMreq(fd, unix.SOL_PACKET, unix.PACKET_ADD_MEMBERSHIP, &mreq); err != nil {
			return fail("enable promiscuous mode", err)
		}
	}

	return &linuxChannel{
		fd:      fd,
		name:    ifi.Name,
		ifIndex: ifi.Index,
		buf:     make([]byte, cfg.SnapLen),
	}, nil
}

func (c *linuxChannel) Send(frame []byte) error {
	if c.closed {
		return ErrChannelClosed
	}
	if len(frame) == 0 {
		return ErrEmptyFrame
	}
	n, err := unix.Write(c.fd, frame)
	if err != nil {
		return fmt.Errorf("rawcap: send on %s: %w", c.name, err)
	}
	if n != len(frame) {
		return fmt.Errorf("rawcap: send on %s: wrote %d of %d bytes: %w", c.name, n, len(frame), ErrShortWrite)
	}
	c.stats.FramesSent++
	c.stats.BytesSent += uint64(n)
	return nil
}

func (c *linuxChannel) Receive() (Frame, Outcome, error) {
	if c.closed {
		return Frame{}, Failed, ErrChannelClosed
	}

	// MSG_TRUNC 让内核返回帧的原始长度，即使超过缓冲区
	n, _, err := unix.Recvfrom(c.fd, c.buf, unix.MSG_TRUNC)
	if err != nil {
		if classifyRecvError(err) == TimedOut {
			c.stats.Timeouts++
			return Frame{}, TimedOut, nil
		}
		return Frame{}, Failed, fmt.Errorf("rawcap: receive on %s: %w", c.name, err)
	}

	captured := min(n, len(c.buf))
	data := make([]byte, captured)
	copy(data, c.buf[:captured])

	c.stats.FramesReceived++
	c.stats.BytesReceived += uint64(captured)

	return Frame{
		Data: data,
		Info: gopacket.CaptureInfo{
			Timestamp:      time.Now(),
			CaptureLength:  captured,
			Length:         n,
			InterfaceIndex: c.ifIndex,
		},
	}, Delivered, nil
}

func (c *linuxChannel) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

func (c *linuxChannel) Stats() Stats {
	return c.stats
}

func (c *linuxChannel) Close() error {
	if c.closed {
		return ErrChannelClosed
	}
	c.closed = true
	return unix.Close(c.fd)
}

// classifyRecvError 将 SO_RCVTIMEO 到期与信号中断视为超时，其余为致命错误。
func classifyRecvError(err error) Outcome {
	switch {
	case err == nil:
		return Delivered
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EWOULDBLOCK), errors.Is(err, unix.EINTR):
		return TimedOut
	default:
		return Failed
	}
}

func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
