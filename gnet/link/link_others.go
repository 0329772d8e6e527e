//go:build !linux

package link

import (
	"fmt"
	"net"
)

func listLinks() ([]Link, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("list interfaces: %w", err)
	}

	links := make([]Link, 0, len(ifaces))
	for _, iface := range ifaces {
		l := Link{
			Index:        iface.Index,
			Name:         iface.Name,
			MTU:          iface.MTU,
			HardwareAddr: iface.HardwareAddr,
			Flags:        iface.Flags,
			OperState:    "unknown",
			Up:           iface.Flags&net.FlagUp != 0,
		}
		switch {
		case iface.Flags&net.FlagLoopback != 0:
			l.EncapType = "loopback"
		case len(iface.HardwareAddr) > 0:
			l.EncapType = "ether"
		default:
			l.EncapType = "none"
		}
		links = append(links, l)
	}
	return links, nil
}
