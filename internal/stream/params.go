package stream

import (
	"repdec/internal/catalog"
	"repdec/internal/cursor"
)

// Params holds the decoded, opcode-specific parameters. Fields are only
// meaningful for opcodes that set them; the Has* flags disambiguate
// legitimate zero values (entity id 0 and coordinate 0 are both real).
type Params struct {
	HasEntity bool   `json:"has_entity,omitempty"`
	Entity    uint16 `json:"entity,omitempty"`

	HasPoint bool   `json:"has_point,omitempty"`
	X        uint16 `json:"x,omitempty"`
	Y        uint16 `json:"y,omitempty"`

	HasTarget bool   `json:"has_target,omitempty"`
	Target    uint16 `json:"target,omitempty"`

	HasHotkey    bool  `json:"has_hotkey,omitempty"`
	HotkeyAction uint8 `json:"hotkey_action,omitempty"`
	HotkeyGroup  uint8 `json:"hotkey_group,omitempty"`

	UnitTags []uint16 `json:"unit_tags,omitempty"`
	Message  string   `json:"message,omitempty"`
	Raw      []byte   `json:"raw,omitempty"`
}

// decodeParams reads the parameter bytes for desc. ok is false when the
// buffer ran out mid-record.
func decodeParams(c *cursor.Cursor, desc catalog.Opcode) (Params, bool) {
	var p Params
	switch desc.Params {
	case catalog.ParamsNone:
		return p, true

	case catalog.ParamsRaw:
		raw, err := c.ReadBytes(desc.ParamLen)
		if err != nil {
			return p, false
		}
		p.Raw = raw
		return p, true

	case catalog.ParamsBuild:
		if !c.CanRead(6) {
			return p, false
		}
		p.Entity, _ = c.ReadU16()
		p.X, _ = c.ReadU16()
		p.Y, _ = c.ReadU16()
		p.HasEntity, p.HasPoint = true, true
		return p, true

	case catalog.ParamsEntity:
		id, err := c.ReadU16()
		if err != nil {
			return p, false
		}
		p.Entity, p.HasEntity = id, true
		return p, true

	case catalog.ParamsTech:
		id, err := c.ReadU8()
		if err != nil {
			return p, false
		}
		p.Entity, p.HasEntity = catalog.TechIDBase+uint16(id), true
		return p, true

	case catalog.ParamsUpgrade:
		id, err := c.ReadU8()
		if err != nil {
			return p, false
		}
		p.Entity, p.HasEntity = catalog.UpgradeIDBase+uint16(id), true
		return p, true

	case catalog.ParamsPoint:
		if !c.CanRead(4) {
			return p, false
		}
		p.X, _ = c.ReadU16()
		p.Y, _ = c.ReadU16()
		p.HasPoint = true
		return p, true

	case catalog.ParamsTargeted:
		if !c.CanRead(6) {
			return p, false
		}
		p.X, _ = c.ReadU16()
		p.Y, _ = c.ReadU16()
		p.Target, _ = c.ReadU16()
		p.HasPoint, p.HasTarget = true, true
		return p, true

	case catalog.ParamsSelect:
		count, err := c.ReadU8()
		if err != nil {
			return p, false
		}
		if !c.CanRead(int(count) * 2) {
			return p, false
		}
		p.UnitTags = make([]uint16, count)
		for i := range p.UnitTags {
			p.UnitTags[i], _ = c.ReadU16()
		}
		return p, true

	case catalog.ParamsHotkey:
		if !c.CanRead(2) {
			return p, false
		}
		p.HotkeyAction, _ = c.ReadU8()
		p.HotkeyGroup, _ = c.ReadU8()
		p.HasHotkey = true
		return p, true

	case catalog.ParamsChat:
		p.Message = readChat(c)
		return p, true
	}
	return p, true
}

// readChat consumes a zero-terminated message of at most ChatMaxLen bytes.
// The terminator is consumed when present; hitting the cap or the end of
// the buffer also ends the message.
func readChat(c *cursor.Cursor) string {
	raw := make([]byte, 0, ChatMaxLen)
	for len(raw) < ChatMaxLen {
		b, err := c.ReadU8()
		if err != nil {
			break
		}
		if b == 0 {
			break
		}
		raw = append(raw, b)
	}
	return cursor.CleanString(raw)
}
