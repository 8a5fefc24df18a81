package wasm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModuleBytesStartsWithMagicAndVersion(t *testing.T) {
	m := New()
	got := m.Bytes()
	require.True(t, bytes.HasPrefix(got, append(magic[:], version[:]...)))
}

func TestModuleBytesEncodesSectionLength(t *testing.T) {
	m := New()
	payload := []byte{0x01, 0x02, 0x03}
	m.AddSection(SectionType, payload)

	got := m.Bytes()
	body := got[8:] // past magic+version
	require.Equal(t, byte(SectionType), body[0])
	length, n := DecodeULEB128(body[1:])
	require.Equal(t, uint64(len(payload)), length)
	require.Equal(t, payload, body[1+n:1+n+int(length)])
}

func TestULEB128RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40} {
		enc := AppendULEB128(nil, v)
		got, n := DecodeULEB128(enc)
		require.Equal(t, v, got)
		require.Equal(t, len(enc), n)
	}
}

func TestSLEB128NegativeEncodesNonEmpty(t *testing.T) {
	enc := AppendSLEB128(nil, -1)
	require.NotEmpty(t, enc)
}

func TestEncodeDataSectionCountsSegments(t *testing.T) {
	segs := []DataSegment{
		{MemoryIndex: 0, Offset: 1024, Bytes: []byte("hello")},
	}
	payload := EncodeDataSection(segs)
	count, n := DecodeULEB128(payload)
	require.Equal(t, uint64(1), count)
	require.Greater(t, len(payload), n)
}
