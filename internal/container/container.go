// Package container decodes the replay file container: signature, header
// fields, and the player slot table. Apart from the signature check, which
// is the only fatal condition in the pipeline, decoding always produces a
// result; every recovery tier that fires is recorded as a note so callers
// can report reliability honestly.
package container

import (
	"bytes"
	"errors"
	"fmt"

	"repdec/internal/catalog"
	"repdec/internal/cursor"
	"repdec/internal/layout"
)

// ErrInvalidFormat indicates the leading signature tag matched none of the
// accepted values. No partial result is produced for this error.
var ErrInvalidFormat = errors.New("not a recognized replay file")

const (
	// MaxSlots is the fixed size of the player slot table.
	MaxSlots = 8

	// maxPlausibleFrames is the frame-count sanity ceiling (24 hours of
	// game time at the format's fixed tick rate).
	maxPlausibleFrames = 24 * 60 * 60 * 24

	// defaultFrames is the documented safe default when no plausible
	// frame count can be recovered. Zero yields zero-length analytics
	// rather than inflated ones.
	defaultFrames = 0

	// placeholderMap is used when no map-name candidate validates.
	placeholderMap = "(unknown map)"

	// scanStep and scanWindow bound the fallback scans over the header
	// region.
	headerWindow = 0x200
	mapScanLen   = 16
)

// signatures accepted at offset 0.
var signatures = []string{"reRS", "seRS"}

// Kind is the participant kind stored in a slot.
type Kind uint8

const (
	SlotEmpty    Kind = 0
	SlotComputer Kind = 1
	SlotHuman    Kind = 2
)

func (k Kind) String() string {
	switch k {
	case SlotComputer:
		return "computer"
	case SlotHuman:
		return "human"
	}
	return "empty"
}

// Header is the decoded fixed-layout file header.
type Header struct {
	Signature     string `json:"signature"`
	EngineVersion uint16 `json:"engine_version"`
	GameType      uint16 `json:"game_type"`
	Frames        uint32 `json:"frames"`
	MapName       string `json:"map_name"`
	LowConfidence bool   `json:"low_confidence"`
}

// Player is one recovered roster entry.
type Player struct {
	Slot  int          `json:"slot"`
	Name  string       `json:"name"`
	Race  catalog.Race `json:"race_code"`
	Team  uint8        `json:"team"`
	Color uint8        `json:"color"`
	Kind  Kind         `json:"-"`
}

// Decoded is the container decode result.
type Decoded struct {
	Header            Header
	Players           []Player
	CommandStart      int // byte offset where the command section begins
	Notes             []string
	RosterSynthesized bool
}

// revision is one known fixed-offset layout. Later game patches moved the
// header fields and the slot table; the lists below are tried in order.
type revision struct {
	name         string
	frameOff     int
	mapOff       int
	mapLen       int
	playerBase   int
	slotSize     int
	commandStart int
}

var revisions = []revision{
	{"rev1", 0x08, 0x18, 28, 0x40, 32, 0x140},
	{"rev2", 0x0C, 0x2C, 28, 0x68, 32, 0x168},
	{"rev3", 0x10, 0x45, 24, 0xA1, 36, 0x1C1},
}

// alternate slot sizes tried by the roster scan.
var scanSlotSizes = []int{32, 36}

// Decode parses the container portion of buf. It fails only when the
// signature does not match an accepted tag.
func Decode(buf []byte) (*Decoded, error) {
	c := cursor.New(buf)
	sig, err := c.ReadBytes(len(signatures[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: file shorter than signature", ErrInvalidFormat)
	}
	tag := string(sig)
	if !acceptedSignature(tag) {
		return nil, fmt.Errorf("%w: tag %q", ErrInvalidFormat, tag)
	}

	d := &Decoded{Header: Header{Signature: tag}}
	d.Header.EngineVersion = readU16At(buf, 0x04)
	d.Header.GameType = readU16At(buf, 0x06)

	d.decodeFrames(buf)
	d.decodeMapName(buf)
	d.decodePlayers(buf)

	if d.CommandStart > len(buf) {
		d.CommandStart = len(buf)
	}
	return d, nil
}

func acceptedSignature(tag string) bool {
	for _, s := range signatures {
		if tag == s {
			return true
		}
	}
	return false
}

func (d *Decoded) decodeFrames(buf []byte) {
	cands := make([]layout.Candidate[uint32], 0, len(revisions))
	for _, rev := range revisions {
		off := rev.frameOff
		cands = append(cands, layout.Candidate[uint32]{
			Name: rev.name,
			Extract: func() (uint32, bool) {
				if off+4 > len(buf) {
					return 0, false
				}
				return readU32At(buf, off), true
			},
		})
	}
	frames, source, ok := layout.Resolve(cands, func(f uint32) bool {
		return f > 0 && f <= maxPlausibleFrames
	})
	if !ok {
		d.Header.Frames = defaultFrames
		d.Header.LowConfidence = true
		d.note("header: no plausible frame count at known offsets, defaulted to %d", defaultFrames)
		return
	}
	d.Header.Frames = frames
	if source != revisions[0].name {
		d.note("header: frame count recovered via %s layout", source)
	}
}

func (d *Decoded) decodeMapName(buf []byte) {
	cands := make([]layout.Candidate[[]byte], 0, len(revisions)+1)
	for _, rev := range revisions {
		off, n := rev.mapOff, rev.mapLen
		cands = append(cands, layout.Candidate[[]byte]{
			Name: rev.name,
			Extract: func() ([]byte, bool) {
				if off+n > len(buf) {
					return nil, false
				}
				return trimZeros(buf[off : off+n]), true
			},
		})
	}
	// Last tier: bounded linear scan of the header window, scoring each
	// fixed-size candidate with the text validator.
	cands = append(cands, layout.Candidate[[]byte]{
		Name: "scan",
		Extract: func() ([]byte, bool) {
			limit := len(buf)
			if limit > headerWindow {
				limit = headerWindow
			}
			for off := 0x10; off+mapScanLen <= limit; off++ {
				w := bytes.TrimLeft(trimZeros(buf[off:off+mapScanLen]), "\x00")
				if layout.LooksLikeText(w) {
					return w, true
				}
			}
			return nil, false
		},
	})

	raw, source, ok := layout.Resolve(cands, layout.LooksLikeText)
	if !ok {
		d.Header.MapName = placeholderMap
		d.Header.LowConfidence = true
		d.note("header: map name not recovered, using placeholder")
		return
	}
	d.Header.MapName = cursor.CleanString(raw)
	if source != revisions[0].name {
		d.note("header: map name recovered via %s", source)
	}
}

func (d *Decoded) note(format string, args ...any) {
	d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
}

func trimZeros(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == 0 {
		b = b[:len(b)-1]
	}
	return b
}

func readU16At(buf []byte, off int) uint16 {
	if off+2 > len(buf) {
		return 0
	}
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func readU32At(buf []byte, off int) uint32 {
	if off+4 > len(buf) {
		return 0
	}
	return uint32(buf[off]) | uint32(buf[off+1])<<8 |
		uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
}
