package link

import (
	"errors"
	"fmt"
	"net"
)

// ErrNotFound 表示按名称找不到网卡。
var ErrNotFound = errors.New("link: not found")

// Link 描述一个网卡（类似 ip link）。
type Link struct {
	Index        int
	Name         string
	MTU          int
	HardwareAddr net.HardwareAddr
	Flags        net.Flags
	OperState    string
	Up           bool
	// EncapType 为内核报告的链路封装类型，例如 ether、loopback、none。
	EncapType string
}

var listFn = listLinks

// List 返回当前所有网卡。
func List() ([]Link, error) {
	return listFn()
}

// ByName 在当前网卡快照中按名称精确匹配单个网卡。
func ByName(name string) (*Link, error) {
	if name == "" {
		return nil, fmt.Errorf("link: empty name")
	}
	links, err := List()
	if err != nil {
		return nil, err
	}
	for i := range links {
		if links[i].Name == name {
			return &links[i], nil
		}
	}
	return nil, fmt.Errorf("link %s: %w", name, ErrNotFound)
}

// IsUp 判断网卡是否处于 up。
func IsUp(l Link) bool {
	return l.Up
}

// Interface 转换为标准库的 net.Interface。
func (l Link) Interface() net.Interface {
	return net.Interface{
		Index:        l.Index,
		MTU:          l.MTU,
		Name:         l.Name,
		HardwareAddr: l.HardwareAddr,
		Flags:        l.Flags,
	}
}
