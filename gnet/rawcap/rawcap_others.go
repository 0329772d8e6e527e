//go:build !linux

package rawcap

import (
	"net"
)

func openChannel(ifi net.Interface, cfg Config) (Channel, error) {
	return nil, &OpenError{Kind: KindUnsupported, Interface: ifi.Name, Err: ErrUnsupported}
}
