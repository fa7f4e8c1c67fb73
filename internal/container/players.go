package container

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"repdec/internal/catalog"
	"repdec/internal/cursor"
	"repdec/internal/layout"
)

// rosterScanRange bounds the fallback scan for the slot table base.
const rosterScanRange = 0x400

type slotTable struct {
	players      []Player
	commandStart int
}

func (d *Decoded) decodePlayers(buf []byte) {
	cands := make([]layout.Candidate[slotTable], 0, len(revisions)+1)
	for _, rev := range revisions {
		base, size, end := rev.playerBase, rev.slotSize, rev.commandStart
		cands = append(cands, layout.Candidate[slotTable]{
			Name: rev.name,
			Extract: func() (slotTable, bool) {
				return parseSlots(buf, base, size, end)
			},
		})
	}
	cands = append(cands, layout.Candidate[slotTable]{
		Name:    "scan",
		Extract: func() (slotTable, bool) { return scanSlots(buf) },
	})

	table, source, ok := layout.Resolve(cands, func(t slotTable) bool {
		return len(t.players) > 0
	})
	if !ok {
		d.synthesizeRoster(buf)
		return
	}
	d.Players = table.players
	d.CommandStart = table.commandStart
	if source != revisions[0].name {
		d.note("players: slot table recovered via %s", source)
	}
}

// parseSlots reads MaxSlots fixed-size slots at base. The returned roster
// contains human slots; computer slots are kept only when no human slot
// validated, so analytics never run against an empty table when the game
// was played versus the AI.
func parseSlots(buf []byte, base, slotSize, commandStart int) (slotTable, bool) {
	if base+MaxSlots*slotSize > len(buf) {
		return slotTable{}, false
	}
	var humans, computers []Player
	nameLen := slotSize - 8
	for i := 0; i < MaxSlots; i++ {
		raw := buf[base+i*slotSize : base+(i+1)*slotSize]
		name := decodeName(raw[:nameLen])
		kind := Kind(raw[nameLen])
		race := raw[nameLen+1]
		if !layout.ValidPlayerName(name) || !catalog.ValidRaceCode(race) {
			continue
		}
		p := Player{
			Slot:  i,
			Name:  name,
			Race:  catalog.Race(race),
			Team:  raw[nameLen+2],
			Color: raw[nameLen+3],
			Kind:  kind,
		}
		switch kind {
		case SlotHuman:
			humans = append(humans, p)
		case SlotComputer:
			computers = append(computers, p)
		}
	}
	if len(humans) > 0 {
		return slotTable{players: humans, commandStart: commandStart}, true
	}
	if len(computers) > 0 {
		return slotTable{players: computers, commandStart: commandStart}, true
	}
	return slotTable{}, false
}

// scanSlots sweeps a wider range for a base offset that yields a valid
// table, trying each alternate slot size.
func scanSlots(buf []byte) (slotTable, bool) {
	limit := len(buf)
	if limit > rosterScanRange {
		limit = rosterScanRange
	}
	for _, size := range scanSlotSizes {
		for base := 0x10; base+MaxSlots*size <= limit; base += 4 {
			if t, ok := parseSlots(buf, base, size, base+MaxSlots*size); ok {
				return t, true
			}
		}
	}
	return slotTable{}, false
}

// synthesizeRoster installs two placeholder players so downstream stages
// always have a roster to attribute commands to.
func (d *Decoded) synthesizeRoster(buf []byte) {
	d.Players = []Player{
		{Slot: 0, Name: "Player 1", Race: catalog.RaceRandom, Kind: SlotHuman},
		{Slot: 1, Name: "Player 2", Race: catalog.RaceRandom, Team: 1, Color: 1, Kind: SlotHuman},
	}
	d.RosterSynthesized = true
	d.CommandStart = revisions[0].commandStart
	if d.CommandStart > len(buf) {
		d.CommandStart = len(buf)
	}
	d.note("players: no slot table recovered, synthesized placeholder roster")
}

// decodeName decodes a slot name permissively: strict UTF-8 first, then
// Windows-1252 for legacy encodings, then a byte-filtered ASCII fallback.
func decodeName(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	trimmed := raw
	if utf8.Valid(trimmed) {
		return cursorClean(trimmed)
	}
	if dec, err := charmap.Windows1252.NewDecoder().Bytes(trimmed); err == nil {
		return string(dec)
	}
	return cursor.CleanString(trimmed)
}

// cursorClean trims at the first zero byte but keeps valid multi-byte
// runes, unlike cursor.CleanString which is ASCII-only.
func cursorClean(b []byte) string {
	out := make([]rune, 0, len(b))
	for _, r := range string(b) {
		if r >= 0x20 && r != 0x7F {
			out = append(out, r)
		}
	}
	return string(out)
}
