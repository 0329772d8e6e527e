package capture

import (
	"io"

	"github.com/sofiworker/nethex/gnet/hexframe"
	"github.com/sofiworker/nethex/gnet/rawcap"
)

// FrameDelimiter 每帧输出前的分隔行。
const FrameDelimiter = "----- Recv Packet -----"

// Renderer 输出接收到的帧。
type Renderer interface {
	Render(frame rawcap.Frame) error
}

// RendererFunc 函数适配器。
type RendererFunc func(frame rawcap.Frame) error

func (f RendererFunc) Render(frame rawcap.Frame) error { return f(frame) }

// TextRenderer 以分隔行加十六进制视图输出帧。
type TextRenderer struct {
	w      io.Writer
	dumper hexframe.Dumper
}

// NewTextRenderer width <= 0 时使用 hexframe.DefaultWidth。
func NewTextRenderer(w io.Writer, width int) *TextRenderer {
	if width <= 0 {
		width = hexframe.DefaultWidth
	}
	return &TextRenderer{w: w, dumper: hexframe.Dumper{Width: width}}
}

func (t *TextRenderer) Render(frame rawcap.Frame) error {
	_, err := io.WriteString(t.w, FrameDelimiter+"\n"+t.dumper.Dump(frame.Data))
	return err
}
