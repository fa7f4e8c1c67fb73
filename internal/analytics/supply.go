package analytics

import "repdec/internal/catalog"

// supplyCap is the format's per-player population ceiling.
const supplyCap = 200

// SupplySnapshot is the supply state after one supply-affecting action.
type SupplySnapshot struct {
	Frame   uint32 `json:"frame"`
	Used    int    `json:"used"`
	Max     int    `json:"max"`
	Blocked bool   `json:"blocked"`
}

// supplyTrack threads used/max supply through a build order. The history
// starts with the race-specific opening snapshot at frame 0.
type supplyTrack struct {
	used    int
	max     int
	history []SupplySnapshot
}

func newSupplyTrack(race catalog.Race) *supplyTrack {
	used, max := catalog.StartingSupply(race)
	t := &supplyTrack{used: used, max: max}
	t.snapshot(0)
	return t
}

// apply updates the counters for one entity's cost and records a snapshot
// when anything changed.
func (t *supplyTrack) apply(frame uint32, cost catalog.Cost) {
	changed := false
	if cost.Supply > 0 {
		t.used += cost.Supply
		changed = true
	}
	if cost.SupplyProvided > 0 {
		t.max += cost.SupplyProvided
		if t.max > supplyCap {
			t.max = supplyCap
		}
		changed = true
	}
	if changed {
		t.snapshot(frame)
	}
}

func (t *supplyTrack) snapshot(frame uint32) {
	t.history = append(t.history, SupplySnapshot{
		Frame:   frame,
		Used:    t.used,
		Max:     t.max,
		Blocked: t.used >= t.max,
	})
}
