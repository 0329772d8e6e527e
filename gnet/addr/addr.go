package addr

import (
	"net"
)

// Address 描述接口上的一个 IP 地址。
type Address struct {
	IfIndex int
	IfName  string
	IPNet   *net.IPNet
	Peer    *net.IPNet
	Label   string
	Scope   int
	Flags   int
}

// List 列出指定网卡的地址（空字符串表示全部）。
func List(iface string) ([]Address, error) {
	addrs, err := list(iface)
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

// String 以 CIDR 形式返回地址。
func (a Address) String() string {
	if a.IPNet == nil {
		return ""
	}
	return a.IPNet.String()
}
