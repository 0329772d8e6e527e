// Package netinfo 汇总网卡与其地址，并生成可读的网卡清单。
package netinfo

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/sofiworker/nethex/gnet/addr"
	"github.com/sofiworker/nethex/gnet/link"
)

// ListingHeader 网卡清单的首行。
const ListingHeader = "Detected Network Interfaces:"

// Interface 汇总网卡及其地址。
type Interface struct {
	Name         string
	Index        int
	MTU          int
	HardwareAddr net.HardwareAddr
	Flags        net.Flags
	Up           bool
	Loopback     bool
	Addresses    []*net.IPNet
}

var (
	listLinks = link.List
	listAddrs = addr.List
)

// Interfaces 返回当前主机的网卡信息，结合 link/addr，顺序与 link.List 一致。
func Interfaces() ([]Interface, error) {
	links, err := listLinks()
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}

	addrList, err := listAddrs("")
	if err != nil {
		return nil, fmt.Errorf("list addrs: %w", err)
	}
	addrByIf := groupAddrByIf(addrList)

	out := make([]Interface, 0, len(links))
	for _, l := range links {
		out = append(out, Interface{
			Name:         l.Name,
			Index:        l.Index,
			MTU:          l.MTU,
			HardwareAddr: l.HardwareAddr,
			Flags:        l.Flags,
			Up:           l.Up,
			Loopback:     l.Flags&net.FlagLoopback != 0,
			Addresses:    addrByIf[l.Index],
		})
	}
	return out, nil
}

// WriteListing 输出网卡清单：首行标题，每个网卡一行名称，其下每个地址缩进一行。
func WriteListing(w io.Writer, ifaces []Interface) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ListingHeader)
	for _, iface := range ifaces {
		fmt.Fprintln(bw, iface.Name)
		for _, a := range iface.Addresses {
			fmt.Fprintf(bw, "  IP: %s\n", a)
		}
	}
	return bw.Flush()
}

func groupAddrByIf(addrs []addr.Address) map[int][]*net.IPNet {
	m := make(map[int][]*net.IPNet, len(addrs))
	for _, a := range addrs {
		if a.IPNet == nil {
			continue
		}
		m[a.IfIndex] = append(m[a.IfIndex], a.IPNet)
	}
	return m
}
