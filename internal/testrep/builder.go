// Package testrep builds synthetic replay buffers for tests. The builder
// emits the rev1 fixed layout: signature at 0, frame count at 0x08, map
// name at 0x18, eight 32-byte player slots at 0x40, command section at
// 0x140.
package testrep

import "repdec/internal/catalog"

const (
	headerSize = 0x140
	playerBase = 0x40
	slotSize   = 32
)

// Slot is one player-table entry to encode.
type Slot struct {
	Index int
	Name  string
	Race  catalog.Race
	Team  uint8
	Color uint8
	Kind  uint8 // 0 empty, 1 computer, 2 human
}

// Builder accumulates header fields and raw command bytes.
type Builder struct {
	signature string
	frames    uint32
	mapName   string
	slots     []Slot
	commands  []byte
}

// New returns a builder with a five-minute two-player skeleton left empty.
func New() *Builder {
	return &Builder{
		signature: "reRS",
		frames:    24 * 60 * 5,
		mapName:   "Lost Temple",
	}
}

// Signature overrides the leading tag.
func (b *Builder) Signature(tag string) *Builder {
	b.signature = tag
	return b
}

// Frames sets the header frame count.
func (b *Builder) Frames(n uint32) *Builder {
	b.frames = n
	return b
}

// Map sets the map name.
func (b *Builder) Map(name string) *Builder {
	b.mapName = name
	return b
}

// Human adds a human player slot.
func (b *Builder) Human(index int, name string, race catalog.Race) *Builder {
	b.slots = append(b.slots, Slot{Index: index, Name: name, Race: race, Team: uint8(index), Color: uint8(index), Kind: 2})
	return b
}

// Computer adds a computer slot.
func (b *Builder) Computer(index int, name string, race catalog.Race) *Builder {
	b.slots = append(b.slots, Slot{Index: index, Name: name, Race: race, Kind: 1})
	return b
}

// Commands appends raw command-section bytes.
func (b *Builder) Commands(raw ...byte) *Builder {
	b.commands = append(b.commands, raw...)
	return b
}

// AdvanceFrames appends n single-frame advance markers.
func (b *Builder) AdvanceFrames(n int) *Builder {
	for i := 0; i < n; i++ {
		b.commands = append(b.commands, 0x00)
	}
	return b
}

// Command appends one opcode record: opcode, slot, then params.
func (b *Builder) Command(opcode byte, slot byte, params ...byte) *Builder {
	b.commands = append(b.commands, opcode, slot)
	b.commands = append(b.commands, params...)
	return b
}

// Bytes assembles the buffer.
func (b *Builder) Bytes() []byte {
	buf := make([]byte, headerSize, headerSize+len(b.commands))
	copy(buf, b.signature)
	putU16(buf, 0x04, 0x01A2) // engine version
	putU16(buf, 0x06, 0x0002) // game type
	putU32(buf, 0x08, b.frames)
	copy(buf[0x18:0x18+28], b.mapName)
	for _, s := range b.slots {
		off := playerBase + s.Index*slotSize
		copy(buf[off:off+24], s.Name)
		buf[off+24] = s.Kind
		buf[off+25] = uint8(s.Race)
		buf[off+26] = s.Team
		buf[off+27] = s.Color
	}
	return append(buf, b.commands...)
}

func putU16(buf []byte, off int, v uint16) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
}

func putU32(buf []byte, off int, v uint32) {
	buf[off] = byte(v)
	buf[off+1] = byte(v >> 8)
	buf[off+2] = byte(v >> 16)
	buf[off+3] = byte(v >> 24)
}
