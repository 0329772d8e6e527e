package hexframe

import (
	"fmt"
	"strings"
)

// DefaultWidth 默认每行字节数。
const DefaultWidth = 16

// Dumper 以固定宽度输出十六进制/ASCII 视图。
//
// 每行格式为: 8 位十六进制偏移、两个空格、Width 列十六进制字节（不足补空格）、
// 两个空格、以 '|' 包围并补齐到 Width 的 ASCII 列，不可打印字符显示为 '.'。
type Dumper struct {
	Width int
}

// Dump 使用 DefaultWidth 输出 b 的转储。
func Dump(b []byte) string {
	return Dumper{Width: DefaultWidth}.Dump(b)
}

// Dump 输出 b 的转储，空输入返回空字符串。
func (d Dumper) Dump(b []byte) string {
	width := d.Width
	if width <= 0 {
		width = DefaultWidth
	}

	var sb strings.Builder
	for off := 0; off < len(b); off += width {
		row := b[off:min(off+width, len(b))]

		fmt.Fprintf(&sb, "%08x ", off)
		for i := 0; i < width; i++ {
			if i < len(row) {
				fmt.Fprintf(&sb, " %02x", row[i])
			} else {
				sb.WriteString("   ")
			}
		}

		sb.WriteString("  |")
		for _, c := range row {
			sb.WriteByte(printable(c))
		}
		sb.WriteString(strings.Repeat(" ", width-len(row)))
		sb.WriteString("|\n")
	}
	return sb.String()
}

func printable(c byte) byte {
	if c < 0x20 || c > 0x7e {
		return '.'
	}
	return c
}
