//go:build linux

package addr

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

func list(iface string) ([]Address, error) {
	var links []netlink.Link
	if iface != "" {
		link, err := netlink.LinkByName(iface)
		if err != nil {
			return nil, fmt.Errorf("link by name: %w", err)
		}
		links = []netlink.Link{link}
	} else {
		all, err := netlink.LinkList()
		if err != nil {
			return nil, fmt.Errorf("link list: %w", err)
		}
		links = all
	}

	var out []Address
	for _, l := range links {
		addrs, err := netlink.AddrList(l, netlink.FAMILY_ALL)
		if err != nil {
			return nil, fmt.Errorf("addr list: %w", err)
		}
		for _, na := range addrs {
			out = append(out, fromNetlinkAddr(l.Attrs(), na))
		}
	}
	return out, nil
}

func fromNetlinkAddr(attrs *netlink.LinkAttrs, na netlink.Addr) Address {
	return Address{
		IfIndex: attrs.Index,
		IfName:  attrs.Name,
		IPNet:   na.IPNet,
		Peer:    na.Peer,
		Label:   na.Label,
		Scope:   na.Scope,
		Flags:   na.Flags,
	}
}
