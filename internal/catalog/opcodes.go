// Package catalog holds the static format tables: opcode descriptors,
// game-object descriptors, and race codes. The tables are package-level
// immutable data; lookups are pure functions and unknown ids simply return
// ok=false so callers treat absence as "unresolvable".
package catalog

// ActionKind classifies opcodes that contribute to a build order.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionBuild
	ActionTrain
	ActionMorph
	ActionResearch
	ActionUpgrade
)

func (k ActionKind) String() string {
	switch k {
	case ActionBuild:
		return "Build"
	case ActionTrain:
		return "Train"
	case ActionMorph:
		return "Morph"
	case ActionResearch:
		return "Research"
	case ActionUpgrade:
		return "Upgrade"
	}
	return "None"
}

// ParamKind selects the parameter decoder for an opcode.
type ParamKind int

const (
	ParamsNone ParamKind = iota
	ParamsRaw             // declared length, kept as opaque bytes
	ParamsBuild           // entity u16, x u16, y u16
	ParamsEntity          // entity u16
	ParamsTech            // tech u8
	ParamsUpgrade         // upgrade u8
	ParamsPoint           // x u16, y u16
	ParamsTargeted        // x u16, y u16, target u16
	ParamsSelect          // count u8, then count unit tags (u16 each)
	ParamsHotkey          // action u8, group u8
	ParamsChat            // zero-terminated message, capped
)

// VarLen marks opcodes whose parameter length is not fixed; the stream
// decoder derives it from the payload itself.
const VarLen = -1

// Opcode describes one command record type.
type Opcode struct {
	Name      string
	ParamLen  int // bytes following the player slot byte, or VarLen
	Effective bool
	Kind      ActionKind
	Params    ParamKind
}

var opcodes = map[byte]Opcode{
	0x09: {"Select", VarLen, false, ActionNone, ParamsSelect},
	0x0A: {"Shift Select", VarLen, false, ActionNone, ParamsSelect},
	0x0B: {"Shift Deselect", VarLen, false, ActionNone, ParamsSelect},
	0x0C: {"Build", 6, true, ActionBuild, ParamsBuild},
	0x0D: {"Vision", 2, false, ActionNone, ParamsRaw},
	0x0E: {"Alliance", 4, false, ActionNone, ParamsRaw},
	0x13: {"Hotkey", 2, true, ActionNone, ParamsHotkey},
	0x14: {"Move", 4, true, ActionNone, ParamsPoint},
	0x15: {"Action", 6, true, ActionNone, ParamsTargeted},
	0x18: {"Cancel", 0, false, ActionNone, ParamsNone},
	0x19: {"Cancel Hatch", 0, false, ActionNone, ParamsNone},
	0x1A: {"Stop", 1, true, ActionNone, ParamsRaw},
	0x1E: {"Return Cargo", 1, false, ActionNone, ParamsRaw},
	0x1F: {"Train", 2, true, ActionTrain, ParamsEntity},
	0x20: {"Cancel Train", 2, false, ActionNone, ParamsRaw},
	0x21: {"Cloak", 1, true, ActionNone, ParamsRaw},
	0x22: {"Decloak", 1, true, ActionNone, ParamsRaw},
	0x23: {"Unit Morph", 2, true, ActionMorph, ParamsEntity},
	0x25: {"Unsiege", 1, true, ActionNone, ParamsRaw},
	0x26: {"Siege", 1, true, ActionNone, ParamsRaw},
	0x27: {"Build Fighter", 0, true, ActionNone, ParamsNone},
	0x28: {"Unload All", 1, true, ActionNone, ParamsRaw},
	0x29: {"Unload", 2, true, ActionNone, ParamsRaw},
	0x2A: {"Merge Archon", 0, true, ActionNone, ParamsNone},
	0x2B: {"Hold Position", 1, true, ActionNone, ParamsRaw},
	0x2C: {"Burrow", 1, true, ActionNone, ParamsRaw},
	0x2D: {"Unburrow", 1, true, ActionNone, ParamsRaw},
	0x2E: {"Cancel Nuke", 0, false, ActionNone, ParamsNone},
	0x2F: {"Lift", 4, true, ActionNone, ParamsPoint},
	0x30: {"Research", 1, true, ActionResearch, ParamsTech},
	0x31: {"Cancel Research", 0, false, ActionNone, ParamsNone},
	0x32: {"Upgrade", 1, true, ActionUpgrade, ParamsUpgrade},
	0x33: {"Cancel Upgrade", 0, false, ActionNone, ParamsNone},
	0x35: {"Building Morph", 2, true, ActionMorph, ParamsEntity},
	0x36: {"Stim", 0, true, ActionNone, ParamsNone},
	0x57: {"Leave Game", 1, false, ActionNone, ParamsRaw},
	0x5C: {"Chat", VarLen, false, ActionNone, ParamsChat},
}

// LookupOpcode returns the descriptor for op.
func LookupOpcode(op byte) (Opcode, bool) {
	d, ok := opcodes[op]
	return d, ok
}
