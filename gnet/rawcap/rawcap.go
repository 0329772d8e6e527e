// Package rawcap 提供绑定到单个网卡的原始链路层收发通道。
package rawcap

import (
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	DefaultSnapLen     = 65535
	DefaultBufferSize  = 4 << 20 // 4 MiB
	DefaultPollTimeout = 10 * time.Millisecond
	// MinPollTimeout 更短的超时会被内核截断为 0，即永久阻塞。
	MinPollTimeout = time.Millisecond
)

// Config 通道配置。
type Config struct {
	// PollTimeout 单次接收的最长阻塞时间，与整体运行截止时间无关。
	PollTimeout time.Duration
	SnapLen     int
	BufferSize  int
	Promiscuous bool
}

// Outcome 单次接收的结果。
type Outcome int

const (
	// Delivered 收到一帧。
	Delivered Outcome = iota
	// TimedOut 轮询超时内没有帧到达，属于正常情况。
	TimedOut
	// Failed 其他 I/O 错误，属于致命错误。
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case TimedOut:
		return "timed-out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Frame 一个链路层帧，Data 由通道独占分配，调用方不应修改。
type Frame struct {
	Data []byte
	Info gopacket.CaptureInfo
}

// Stats 通道收发计数。
type Stats struct {
	FramesSent     uint64
	BytesSent      uint64
	FramesReceived uint64
	BytesReceived  uint64
	Timeouts       uint64
}

// Channel 单网卡的原始链路层通道，不可跨 goroutine 共享。
type Channel interface {
	// Send 将 frame 原样作为一帧发送，不重试。
	Send(frame []byte) error
	// Receive 最多阻塞 PollTimeout。超时返回 TimedOut 且 error 为 nil，
	// 其他错误返回 Failed 与原因。
	Receive() (Frame, Outcome, error)
	LinkType() layers.LinkType
	Stats() Stats
	Close() error
}

// Open 在指定网卡上打开链路层通道。
func Open(ifi net.Interface, cfg Config) (Channel, error) {
	cfg = normalizeConfig(cfg)
	if lt := linkTypeOf(ifi); lt != layers.LinkTypeEthernet {
		return nil, &OpenError{Kind: KindUnsupported, Interface: ifi.Name, Err: ErrUnsupported}
	}
	return openChannel(ifi, cfg)
}

func normalizeConfig(cfg Config) Config {
	if cfg.SnapLen <= 0 {
		cfg.SnapLen = DefaultSnapLen
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	} else if cfg.PollTimeout < MinPollTimeout {
		cfg.PollTimeout = MinPollTimeout
	}
	return cfg
}

// linkTypeOf 推断网卡的帧格式。点对点且没有硬件地址的网卡（如 tun）只提供网络层帧。
func linkTypeOf(ifi net.Interface) layers.LinkType {
	if ifi.Flags&net.FlagLoopback != 0 || len(ifi.HardwareAddr) > 0 {
		return layers.LinkTypeEthernet
	}
	if ifi.Flags&net.FlagPointToPoint != 0 {
		return layers.LinkTypeRaw
	}
	return layers.LinkTypeEthernet
}
