package capture

import "fmt"

// SendError 发送载荷失败，此时尚未接收任何帧。
type SendError struct {
	Len int
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("capture: send %d bytes: %v", e.Len, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// ReceiveError 接收出现非超时错误。
type ReceiveError struct {
	Received int
	Err      error
}

func (e *ReceiveError) Error() string {
	return fmt.Sprintf("capture: receive after %d frames: %v", e.Received, e.Err)
}

func (e *ReceiveError) Unwrap() error { return e.Err }

// RenderError 输出帧失败。
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("capture: render frame: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
