//go:build !linux

package addr

import (
	"fmt"
	"net"
)

func list(iface string) ([]Address, error) {
	var ifaces []net.Interface
	if iface != "" {
		ifi, err := net.InterfaceByName(iface)
		if err != nil {
			return nil, fmt.Errorf("interface by name: %w", err)
		}
		ifaces = []net.Interface{*ifi}
	} else {
		all, err := net.Interfaces()
		if err != nil {
			return nil, fmt.Errorf("list interfaces: %w", err)
		}
		ifaces = all
	}

	var out []Address
	for _, ifi := range ifaces {
		addrs, err := ifi.Addrs()
		if err != nil {
			return nil, fmt.Errorf("addrs of %s: %w", ifi.Name, err)
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			out = append(out, Address{IfIndex: ifi.Index, IfName: ifi.Name, IPNet: ipnet})
		}
	}
	return out, nil
}
