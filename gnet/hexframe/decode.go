// Package hexframe 提供原始帧与十六进制文本之间的转换，以及用于终端查看的十六进制转储。
package hexframe

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOddLength 表示十六进制字符串长度为奇数。
	ErrOddLength = errors.New("hexframe: odd length hex string")
	// ErrEmpty 表示去掉分隔符后没有任何十六进制数字。
	ErrEmpty = errors.New("hexframe: empty hex string")
)

// InvalidByteError 描述十六进制字符串中的非法字符。
type InvalidByteError struct {
	Offset int
	Char   byte
}

func (e *InvalidByteError) Error() string {
	return fmt.Sprintf("hexframe: invalid hex character %q at offset %d", e.Char, e.Offset)
}

// Decode 将十六进制字符串解码为字节，大小写不敏感。
// 允许可选的 0x 前缀以及空白和 ':' 分隔符，例如 "11:EE:22:FF"。
func Decode(s string) ([]byte, error) {
	s = normalize(s)
	if s == "" {
		return nil, ErrEmpty
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return nil, &InvalidByteError{Offset: i, Char: s[i]}
		}
	}
	if len(s)%2 != 0 {
		return nil, ErrOddLength
	}
	return hex.DecodeString(s)
}

// Encode 返回小写的十六进制表示。
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
