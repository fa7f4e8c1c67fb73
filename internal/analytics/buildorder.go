package analytics

import (
	"repdec/internal/catalog"
	"repdec/internal/stream"
)

// Confidence tiers for entity resolution. Direct means the command carried
// the object id itself; sibling means a neighboring numeric parameter
// matched a catalog entry; inferred is the phase-and-race guess and must
// never be presented as certain.
const (
	ConfidenceDirect   = 100
	ConfidenceSibling  = 60
	ConfidenceInferred = 25
)

// BuildOrderEntry is one construction/training/research action with the
// supply state after it took effect.
type BuildOrderEntry struct {
	Frame      uint32 `json:"frame"`
	Clock      string `json:"clock"`
	Kind       string `json:"kind"`
	EntityID   uint16 `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Category   string `json:"category"`
	SupplyUsed int    `json:"supply_used"`
	SupplyMax  int    `json:"supply_max"`
	Confidence int    `json:"confidence"`
}

// buildOrder walks a single player's commands in order, resolving the
// acted-upon entity for every build-class action and threading the supply
// state through.
func buildOrder(race catalog.Race, cmds []stream.Command) ([]BuildOrderEntry, []SupplySnapshot) {
	track := newSupplyTrack(race)
	var entries []BuildOrderEntry

	for _, cmd := range cmds {
		if cmd.Kind == catalog.ActionNone {
			continue
		}
		id, ent, conf, ok := resolveEntity(race, cmd)
		if !ok {
			continue
		}
		track.apply(cmd.Frame, ent.Cost)
		entries = append(entries, BuildOrderEntry{
			Frame:      cmd.Frame,
			Clock:      GameClock(cmd.Frame),
			Kind:       cmd.Kind.String(),
			EntityID:   id,
			EntityName: ent.Name,
			Category:   ent.Category.String(),
			SupplyUsed: track.used,
			SupplyMax:  track.max,
			Confidence: conf,
		})
	}
	return entries, track.history
}

// resolveEntity recovers the object a build-class command acted upon. The
// direct parameter field wins; otherwise sibling numeric parameters are
// tried against the catalog; as a last resort the entity is inferred from
// game-time phase and race at low confidence.
func resolveEntity(race catalog.Race, cmd stream.Command) (uint16, catalog.Entity, int, bool) {
	if cmd.Params.HasEntity {
		if ent, ok := catalog.LookupEntity(cmd.Params.Entity); ok {
			return cmd.Params.Entity, ent, ConfidenceDirect, true
		}
	}
	for _, sibling := range siblingIDs(cmd.Params) {
		if ent, ok := catalog.LookupEntity(sibling); ok {
			return sibling, ent, ConfidenceSibling, true
		}
	}
	id := probableEntity(race, cmd.Frame)
	if ent, ok := catalog.LookupEntity(id); ok {
		return id, ent, ConfidenceInferred, true
	}
	return 0, catalog.Entity{}, 0, false
}

// siblingIDs lists numeric parameters that could plausibly hold an object
// id when the dedicated field is absent or unresolvable.
func siblingIDs(p stream.Params) []uint16 {
	var out []uint16
	if p.HasTarget {
		out = append(out, p.Target)
	}
	out = append(out, p.UnitTags...)
	return out
}

// probableEntity guesses what a player of the given race most likely
// queued at the given game time: workers early, supply in the midgame
// ramp, core military after that. Random race falls back to the Terran
// line, the most common default.
func probableEntity(race catalog.Race, frame uint32) uint16 {
	type line struct{ worker, supply, military uint16 }
	lines := map[catalog.Race]line{
		catalog.RaceTerran:  {0x07, 0x6D, 0x00}, // SCV, Supply Depot, Marine
		catalog.RaceZerg:    {0x29, 0x2A, 0x25}, // Drone, Overlord, Zergling
		catalog.RaceProtoss: {0x40, 0x9C, 0x41}, // Probe, Pylon, Zealot
	}
	l, ok := lines[race]
	if !ok {
		l = lines[catalog.RaceTerran]
	}
	switch {
	case frame < 3*60*FramesPerSecond:
		return l.worker
	case frame < 8*60*FramesPerSecond:
		return l.supply
	default:
		return l.military
	}
}
