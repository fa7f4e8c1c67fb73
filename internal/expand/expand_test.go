package expand

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Expand Tests ---

// replayLike builds a buffer with the byte-class mix of a decoded replay:
// zero padding interleaved with printable slot text.
func replayLike(n int) []byte {
	out := make([]byte, n)
	copy(out, "reRS")
	for i := 16; i+8 < n; i += 32 {
		copy(out[i:], "PlayerOne")
	}
	return out
}

func deflate(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExpandPassthroughWithoutHeader(t *testing.T) {
	raw := replayLike(0x400)
	res := Expand(raw)
	assert.False(t, res.Compressed)
	assert.False(t, res.Expanded)
	assert.Equal(t, raw, res.Data)
	assert.Empty(t, res.Notes)
}

func TestExpandZlibAtOffsetZero(t *testing.T) {
	payload := replayLike(0x800)
	res := Expand(deflate(t, payload))
	assert.True(t, res.Compressed)
	assert.True(t, res.Expanded)
	assert.Equal(t, payload, res.Data)
}

func TestExpandZlibAfterProlog(t *testing.T) {
	payload := replayLike(0x800)
	prolog := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	res := Expand(append(prolog, deflate(t, payload)...))
	assert.True(t, res.Expanded)
	assert.Equal(t, payload, res.Data)
}

func TestExpandCorruptStreamFallsBackToRaw(t *testing.T) {
	// A recognized zlib header followed by garbage: every attempt must
	// fail and the raw bytes come back with a note.
	raw := append([]byte{0x78, 0x9C}, bytes.Repeat([]byte{0xAB, 0x13, 0x07}, 64)...)
	res := Expand(raw)
	assert.True(t, res.Compressed)
	assert.False(t, res.Expanded)
	assert.Equal(t, raw, res.Data)
	assert.NotEmpty(t, res.Notes)
}

func TestExpandRejectsImplausibleOutput(t *testing.T) {
	// Valid zlib stream whose payload is all 0xFF: decompression works
	// but the shape check rejects it, so the raw input comes back.
	raw := deflate(t, bytes.Repeat([]byte{0xFF}, 0x800))
	res := Expand(raw)
	assert.True(t, res.Compressed)
	assert.False(t, res.Expanded)
	assert.Equal(t, raw, res.Data)
}

func TestExpandTooSmallOutputRejected(t *testing.T) {
	raw := deflate(t, replayLike(16))
	res := Expand(raw)
	assert.False(t, res.Expanded)
}

func TestFindStreamHeaderOutsideWindow(t *testing.T) {
	buf := make([]byte, 256)
	copy(buf[128:], []byte{0x78, 0x9C})
	assert.Equal(t, -1, findStreamHeader(buf))
}
