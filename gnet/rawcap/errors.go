package rawcap

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupported   = errors.New("rawcap: link-layer channel not supported")
	ErrChannelClosed = errors.New("rawcap: channel closed")
	ErrShortWrite    = errors.New("rawcap: short write")
	ErrEmptyFrame    = errors.New("rawcap: empty frame")
)

// OpenErrorKind 区分打开通道失败的原因。
type OpenErrorKind int

const (
	// KindOpen 权限不足、设备忙、网卡不存在等获取失败。
	KindOpen OpenErrorKind = iota
	// KindUnsupported 平台或网卡只提供非链路层通道。
	KindUnsupported
)

func (k OpenErrorKind) String() string {
	if k == KindUnsupported {
		return "unsupported"
	}
	return "open"
}

// OpenError 打开通道失败。
type OpenError struct {
	Kind      OpenErrorKind
	Interface string
	Op        string
	Err       error
}

func (e *OpenError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("rawcap: %s %s: %s: %v", e.Kind, e.Interface, e.Op, e.Err)
	}
	return fmt.Sprintf("rawcap: %s %s: %v", e.Kind, e.Interface, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, ErrUnsupported) 对 KindUnsupported 成立。
func (e *OpenError) Is(target error) bool {
	return target == ErrUnsupported && e.Kind == KindUnsupported
}
