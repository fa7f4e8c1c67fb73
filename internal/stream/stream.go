// Package stream decodes the frame-synchronized command section: a walk
// over frame-advance markers interleaved with opcode-tagged player command
// records. The decoder never aborts on malformed input; unknown opcodes
// trigger resynchronization, invalid slot ids drop the record, and an
// underrun or the iteration cap simply ends the walk with everything
// decoded so far.
package stream

import (
	"errors"
	"math"

	"repdec/internal/catalog"
	"repdec/internal/container"
	"repdec/internal/cursor"
)

const (
	// Frame-advance markers. 0x00 bumps the frame by one; the others
	// carry an 8-, 16-, or 32-bit skip count.
	markTick   = 0x00
	markSkip8  = 0x01
	markSkip16 = 0x02
	markSkip32 = 0x03

	// ChatMaxLen caps a chat record's message scan. The format's true
	// termination rule is unclear across revisions, so the cap is an
	// explicit parameter with its own tests rather than an implicit
	// assumption.
	ChatMaxLen = 80

	// maxIterations bounds the decode loop on adversarial input.
	maxIterations = 1 << 20
)

// Command is one decoded player action.
type Command struct {
	Frame     uint32             `json:"frame"`
	Slot      uint8              `json:"slot"`
	Player    int                `json:"player"` // index into the decode result's roster
	Opcode    byte               `json:"opcode"`
	Name      string             `json:"name"`
	Kind      catalog.ActionKind `json:"-"`
	Effective bool               `json:"effective"`
	Params    Params             `json:"params"`
}

// Output aggregates the decoded commands with loop bookkeeping for the
// parse statistics.
type Output struct {
	Commands   []Command
	EndFrame   uint32
	Unknown    int  // unknown opcode bytes encountered
	Resyncs    int  // successful resynchronizations after unknown opcodes
	Dropped    int  // records dropped for invalid or unrostered slot ids
	Truncated  bool // the stream ended mid-record
	CapReached bool
}

// Decode walks data emitting commands in encounter order. slotToPlayer
// maps raw slot ids to roster indexes; records for slots outside the map
// are dropped but decoding continues.
func Decode(data []byte, slotToPlayer map[uint8]int) Output {
	var out Output
	c := cursor.New(data)
	frame := uint32(0)

	for iter := 0; c.Remaining() > 0; iter++ {
		if iter >= maxIterations {
			out.CapReached = true
			break
		}
		b, err := c.ReadU8()
		if err != nil {
			break
		}
		switch b {
		case markTick:
			frame = advance(frame, 1)
		case markSkip8:
			n, err := c.ReadU8()
			if stop(&out, err) {
				break
			}
			frame = advance(frame, uint32(n))
		case markSkip16:
			n, err := c.ReadU16()
			if stop(&out, err) {
				break
			}
			frame = advance(frame, uint32(n))
		case markSkip32:
			n, err := c.ReadU32()
			if stop(&out, err) {
				break
			}
			frame = advance(frame, n)
		default:
			if !decodeRecord(c, b, frame, slotToPlayer, &out) {
				break
			}
		}
		if out.Truncated {
			break
		}
	}
	out.EndFrame = frame
	return out
}

// advance saturates the frame counter so skip markers can only ever move
// it forward, even when corrupt input would overflow uint32.
func advance(frame, skip uint32) uint32 {
	if skip > math.MaxUint32-frame {
		return math.MaxUint32
	}
	return frame + skip
}

// stop records a truncation when err is an underrun.
func stop(out *Output, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, cursor.ErrUnderrun) {
		out.Truncated = true
	}
	return true
}

// decodeRecord handles one opcode-tagged record. It returns false when the
// stream cannot continue.
func decodeRecord(c *cursor.Cursor, op byte, frame uint32, slotToPlayer map[uint8]int, out *Output) bool {
	desc, known := catalog.LookupOpcode(op)
	if !known {
		out.Unknown++
		// Resynchronize: consume the next byte as a tentative slot id
		// only when it is in slot range; otherwise retry from the very
		// next byte.
		if c.CanRead(1) && c.PeekU8() < container.MaxSlots {
			c.Skip(1)
			out.Resyncs++
		}
		return true
	}

	slot, err := c.ReadU8()
	if stop(out, err) {
		return false
	}
	params, ok := decodeParams(c, desc)
	if !ok {
		out.Truncated = true
		return false
	}

	player, rostered := slotToPlayer[slot]
	if slot >= container.MaxSlots || !rostered {
		out.Dropped++
		return true
	}
	out.Commands = append(out.Commands, Command{
		Frame:     frame,
		Slot:      slot,
		Player:    player,
		Opcode:    op,
		Name:      desc.Name,
		Kind:      desc.Kind,
		Effective: desc.Effective,
		Params:    params,
	})
	return true
}
