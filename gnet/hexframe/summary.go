package hexframe

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Summary 返回链路层头部的一行摘要，只解析以太网头，不解析上层协议。
func Summary(b []byte, lt layers.LinkType) string {
	if lt != layers.LinkTypeEthernet {
		return fmt.Sprintf("%s len=%d", lt, len(b))
	}
	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(b, gopacket.NilDecodeFeedback); err != nil {
		return fmt.Sprintf("truncated ethernet header len=%d", len(b))
	}
	return fmt.Sprintf("%s > %s %s len=%d", eth.SrcMAC, eth.DstMAC, eth.EthernetType, len(b))
}

// LazySummary 在 String 被调用时才解析头部，用于可能被丢弃的调试日志。
type LazySummary struct {
	Data     []byte
	LinkType layers.LinkType
}

func (s LazySummary) String() string {
	return Summary(s.Data, s.LinkType)
}
