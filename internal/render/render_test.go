package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repdec/internal/catalog"
	"repdec/internal/replay"
	"repdec/internal/testrep"
)

func decoded(t *testing.T) *replay.Result {
	t.Helper()
	buf := testrep.New().
		Human(0, "Alice", catalog.RaceTerran).
		Human(1, "Bob", catalog.RaceZerg).
		AdvanceFrames(24).
		Command(0x1F, 0, 0x07, 0x00).
		Bytes()
	res, err := replay.Decode(buf)
	require.NoError(t, err)
	return res
}

// --- Result Tests ---

func TestPlainResultOutput(t *testing.T) {
	res := decoded(t)
	out := New(false).Result("game1.rep", 1024, res)

	assert.Contains(t, out, "file=game1.rep")
	assert.Contains(t, out, `map="Lost Temple"`)
	assert.Contains(t, out, `player="Alice"`)
	assert.Contains(t, out, `player="Bob"`)
	assert.Contains(t, out, "commands=1")
}

func TestPrettyResultOutput(t *testing.T) {
	res := decoded(t)
	out := New(true).Result("game1.rep", 1024, res)

	assert.Contains(t, out, "game1.rep")
	assert.Contains(t, out, "Lost Temple")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "SCV")
}

func TestResultShowsExpansionForCompressedPayload(t *testing.T) {
	res := decoded(t)
	res.Stats.Compressed = true
	res.Stats.Expanded = true
	out := New(true).Result("x.rep", 10, res)

	assert.Contains(t, out, "expanded "+BoolIcon(true))
}

func TestResultShowsNotes(t *testing.T) {
	res := decoded(t)
	res.Stats.Notes = []string{"frame count recovered via rev2 layout"}
	out := New(true).Result("x.rep", 10, res)

	assert.Contains(t, out, "frame count recovered via rev2 layout")
}

// --- Writer Tests ---

func TestWriterFormatting(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.Header("decode history (%d)", 2)
	w.Item("first")
	w.SubItem("detail")
	w.Section("stats")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "DECODE HISTORY (2)\n"))
	assert.Contains(t, out, "  first\n")
	assert.Contains(t, out, "    detail\n")
	assert.Contains(t, out, "\nSTATS:\n")
}

func TestReliabilityIcon(t *testing.T) {
	assert.Equal(t, "●", ReliabilityIcon("high"))
	assert.Equal(t, "◐", ReliabilityIcon("medium"))
	assert.Equal(t, "○", ReliabilityIcon("low"))
	assert.Equal(t, "•", ReliabilityIcon("other"))
}

func TestBoolIcon(t *testing.T) {
	assert.Equal(t, "✓", BoolIcon(true))
	assert.Equal(t, "✗", BoolIcon(false))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lon...", Truncate("long string", 6))
	assert.Equal(t, "lo", Truncate("long", 2))
}
