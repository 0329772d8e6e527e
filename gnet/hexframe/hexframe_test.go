package hexframe

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		in   string
		want []byte
	}{
		{"11EE22FF", []byte{0x11, 0xEE, 0x22, 0xFF}},
		{"11ee22ff", []byte{0x11, 0xEE, 0x22, 0xFF}},
		{"0x11EE", []byte{0x11, 0xEE}},
		{"11:ee:22:ff", []byte{0x11, 0xEE, 0x22, 0xFF}},
		{" ff ff ff ff ff ff ", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tc := range cases {
		got, err := Decode(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, s := range []string{"11EE22FF", "deadBEEF0001", "00", "ffffffffffff000000000001"} {
		b, err := Decode(s)
		require.NoError(t, err)
		assert.True(t, strings.EqualFold(s, Encode(b)), "round trip of %s gave %s", s, Encode(b))
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode("11E")
	assert.True(t, errors.Is(err, ErrOddLength), "got %v", err)

	_, err = Decode("11EG")
	var invalid *InvalidByteError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, 3, invalid.Offset)
	assert.Equal(t, byte('G'), invalid.Char)

	_, err = Decode("zz")
	assert.True(t, errors.As(err, &invalid))

	_, err = Decode("  ")
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestDumpKnownBytes(t *testing.T) {
	got := Dump([]byte{0x11, 0xEE, 0x22, 0xFF})
	want := "00000000  11 ee 22 ff" + strings.Repeat("   ", 12) + "  |..\"." + strings.Repeat(" ", 12) + "|\n"
	assert.Equal(t, want, got)
	// 重复调用结果一致
	assert.Equal(t, got, Dump([]byte{0x11, 0xEE, 0x22, 0xFF}))
}

func TestDumpRows(t *testing.T) {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte('A' + i)
	}
	out := Dump(b)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "00000000  41 42 43"))
	assert.True(t, strings.HasSuffix(lines[0], "|ABCDEFGHIJKLMNOP|"))
	assert.True(t, strings.HasPrefix(lines[1], "00000010  51 52 53 54"))
	assert.Equal(t, len(lines[0]), len(lines[1]), "rows must have a fixed width")
}

func TestDumpWidth(t *testing.T) {
	out := Dumper{Width: 4}.Dump([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, "00000000  01 02 03 04  |....|\n00000004  05           |.   |\n", out)
	assert.Equal(t, "", Dump(nil))
	assert.Equal(t, Dump([]byte{9}), Dumper{}.Dump([]byte{9}), "zero width falls back to default")
}

func TestSummary(t *testing.T) {
	frame, err := Decode("ffffffffffff" + "020000000001" + "0806" + "0001")
	require.NoError(t, err)
	assert.Equal(t, "02:00:00:00:00:01 > ff:ff:ff:ff:ff:ff ARP len=16", Summary(frame, layers.LinkTypeEthernet))

	assert.Equal(t, "truncated ethernet header len=4", Summary([]byte{1, 2, 3, 4}, layers.LinkTypeEthernet))
	assert.Contains(t, Summary([]byte{0x45}, layers.LinkTypeRaw), "len=1")
}

func TestLazySummaryDefersDecoding(t *testing.T) {
	frame, err := Decode("ffffffffffff" + "020000000001" + "0806" + "0001")
	require.NoError(t, err)

	s := LazySummary{Data: frame, LinkType: layers.LinkTypeEthernet}
	frame[11] = 0x02
	assert.Equal(t, "02:00:00:00:00:02 > ff:ff:ff:ff:ff:ff ARP len=16", s.String())
	assert.Equal(t, Summary(frame, layers.LinkTypeEthernet), s.String())
}
