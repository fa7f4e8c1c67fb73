package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repdec/internal/catalog"
)

var twoPlayers = map[uint8]int{0: 0, 1: 1}

// --- Frame Marker Tests ---

func TestTickMarkersAdvanceFrame(t *testing.T) {
	// 240 single-frame ticks and nothing else: frame 240, no commands.
	data := make([]byte, 240)
	out := Decode(data, twoPlayers)
	assert.Equal(t, uint32(240), out.EndFrame)
	assert.Empty(t, out.Commands)
	assert.False(t, out.Truncated)
}

func TestSkipMarkers(t *testing.T) {
	data := []byte{
		0x01, 10, // +10
		0x02, 0x00, 0x01, // +256
		0x03, 0x00, 0x00, 0x01, 0x00, // +65536
		0x00, // +1
	}
	out := Decode(data, twoPlayers)
	assert.Equal(t, uint32(10+256+65536+1), out.EndFrame)
}

func TestSkipMarkerTruncated(t *testing.T) {
	out := Decode([]byte{0x00, 0x00, 0x02, 0x05}, twoPlayers)
	assert.True(t, out.Truncated)
	assert.Equal(t, uint32(2), out.EndFrame)
}

// --- Command Record Tests ---

func TestTrainCommand(t *testing.T) {
	// Train (0x1F), slot 0, Marine (0x0000).
	out := Decode([]byte{0x1F, 0x00, 0x00, 0x00}, twoPlayers)
	require.Len(t, out.Commands, 1)

	cmd := out.Commands[0]
	assert.Equal(t, "Train", cmd.Name)
	assert.Equal(t, uint32(0), cmd.Frame)
	assert.Equal(t, 0, cmd.Player)
	assert.True(t, cmd.Effective)
	assert.True(t, cmd.Params.HasEntity)
	assert.Equal(t, uint16(0x0000), cmd.Params.Entity)
}

func TestBuildCommandParams(t *testing.T) {
	// Build (0x0C), slot 1, Supply Depot (0x006D) at (32, 48).
	out := Decode([]byte{0x0C, 0x01, 0x6D, 0x00, 32, 0x00, 48, 0x00}, twoPlayers)
	require.Len(t, out.Commands, 1)

	p := out.Commands[0].Params
	assert.Equal(t, uint16(0x6D), p.Entity)
	assert.Equal(t, uint16(32), p.X)
	assert.Equal(t, uint16(48), p.Y)
	assert.Equal(t, catalog.ActionBuild, out.Commands[0].Kind)
}

func TestCommandsCarryCurrentFrame(t *testing.T) {
	data := []byte{
		0x01, 100, // frame 100
		0x1F, 0x00, 0x29, 0x00, // Train Drone
		0x00,                   // frame 101
		0x1F, 0x01, 0x00, 0x00, // Train Marine
	}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 2)
	assert.Equal(t, uint32(100), out.Commands[0].Frame)
	assert.Equal(t, uint32(101), out.Commands[1].Frame)
}

func TestFrameMonotonicity(t *testing.T) {
	data := []byte{
		0x1F, 0x00, 0x00, 0x00,
		0x02, 0x10, 0x00,
		0x14, 0x01, 1, 0, 2, 0,
		0x00, 0x00,
		0x30, 0x00, 0x05,
	}
	out := Decode(data, twoPlayers)
	require.NotEmpty(t, out.Commands)
	last := uint32(0)
	for _, cmd := range out.Commands {
		assert.GreaterOrEqual(t, cmd.Frame, last)
		last = cmd.Frame
	}
}

func TestFrameSaturatesInsteadOfWrapping(t *testing.T) {
	// Two maximal 32-bit skips back to back would wrap the frame counter;
	// it must pin at the ceiling so later commands never go backwards.
	data := []byte{
		0x03, 0xFF, 0xFF, 0xFF, 0xFF,
		0x1F, 0x00, 0x00, 0x00, // Train at the ceiling
		0x03, 0xFF, 0xFF, 0xFF, 0xFF,
		0x1F, 0x00, 0x00, 0x00,
	}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 2)
	assert.Equal(t, uint32(math.MaxUint32), out.Commands[0].Frame)
	assert.Equal(t, uint32(math.MaxUint32), out.Commands[1].Frame)
	assert.GreaterOrEqual(t, out.Commands[1].Frame, out.Commands[0].Frame)
	assert.Equal(t, uint32(math.MaxUint32), out.EndFrame)
}

func TestTechAndUpgradeIDOffsets(t *testing.T) {
	data := []byte{
		0x30, 0x00, 0x05, // Research: Tank Siege Mode
		0x32, 0x00, 0x00, // Upgrade: Terran Infantry Armor
	}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 2)
	assert.Equal(t, catalog.TechIDBase+uint16(0x05), out.Commands[0].Params.Entity)
	assert.Equal(t, catalog.UpgradeIDBase+uint16(0x00), out.Commands[1].Params.Entity)
}

func TestSelectCommandVariableLength(t *testing.T) {
	// Select (0x09), slot 0, 3 unit tags.
	data := []byte{0x09, 0x00, 0x03, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, []uint16{1, 2, 3}, out.Commands[0].Params.UnitTags)
	assert.False(t, out.Commands[0].Effective)
}

func TestChatTerminatedByZero(t *testing.T) {
	data := append([]byte{0x5C, 0x00}, []byte("gg\x00")...)
	data = append(data, 0x00, 0x00) // two frame ticks after the terminator
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, "gg", out.Commands[0].Params.Message)
	assert.Equal(t, uint32(2), out.EndFrame)
}

func TestChatCappedAtMaxLen(t *testing.T) {
	msg := make([]byte, ChatMaxLen+20)
	for i := range msg {
		msg[i] = 'a'
	}
	data := append([]byte{0x5C, 0x01}, msg...)
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Len(t, out.Commands[0].Params.Message, ChatMaxLen)
}

// --- Recovery Tests ---

func TestUnknownOpcodeResynchronizes(t *testing.T) {
	// Unrecognized byte, then its follower looks like a slot id, then a
	// valid Train record: the decoder must still emit the Train.
	data := []byte{0xEE, 0x00, 0x1F, 0x00, 0x29, 0x00}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, "Train", out.Commands[0].Name)
	assert.Equal(t, 1, out.Unknown)
	assert.Equal(t, 1, out.Resyncs)
}

func TestUnknownOpcodeWithoutSlotFollower(t *testing.T) {
	// The byte after the unknown opcode is not a plausible slot id, so
	// only the opcode byte is skipped and the rest still decodes.
	data := []byte{0xEE, 0x1F, 0x00, 0x29, 0x00}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, 1, out.Unknown)
	assert.Equal(t, 0, out.Resyncs)
}

func TestOutOfRangeSlotDropped(t *testing.T) {
	data := []byte{
		0x1F, 0x0B, 0x00, 0x00, // slot 11: out of range
		0x1F, 0x00, 0x29, 0x00, // valid
	}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.Equal(t, 1, out.Dropped)
}

func TestUnrosteredSlotDropped(t *testing.T) {
	// Slot 5 is in range but absent from the roster map.
	data := []byte{0x1F, 0x05, 0x00, 0x00}
	out := Decode(data, twoPlayers)
	assert.Empty(t, out.Commands)
	assert.Equal(t, 1, out.Dropped)
}

func TestTruncatedRecordEndsLoopCleanly(t *testing.T) {
	data := []byte{
		0x1F, 0x00, 0x29, 0x00, // full record
		0x0C, 0x00, 0x6D, // Build cut off mid-params
	}
	out := Decode(data, twoPlayers)
	require.Len(t, out.Commands, 1)
	assert.True(t, out.Truncated)
}

func TestIterationCap(t *testing.T) {
	// More tick markers than the cap: the loop must stop, not spin.
	data := make([]byte, maxIterations+100)
	out := Decode(data, twoPlayers)
	assert.True(t, out.CapReached)
	assert.Equal(t, uint32(maxIterations), out.EndFrame)
}

func TestEmptyStream(t *testing.T) {
	out := Decode(nil, twoPlayers)
	assert.Empty(t, out.Commands)
	assert.Equal(t, uint32(0), out.EndFrame)
	assert.False(t, out.Truncated)
}
