package catalog

// Race codes as stored in player slots.
type Race uint8

const (
	RaceZerg    Race = 0
	RaceTerran  Race = 1
	RaceProtoss Race = 2
	RaceRandom  Race = 6
)

func (r Race) String() string {
	switch r {
	case RaceZerg:
		return "Zerg"
	case RaceTerran:
		return "Terran"
	case RaceProtoss:
		return "Protoss"
	case RaceRandom:
		return "Random"
	}
	return "Unknown"
}

// ValidRaceCode reports whether code is one of the four slot race values.
func ValidRaceCode(code uint8) bool {
	switch Race(code) {
	case RaceZerg, RaceTerran, RaceProtoss, RaceRandom:
		return true
	}
	return false
}

// Category groups entities for the strategic summary.
type Category int

const (
	CategoryEconomy Category = iota
	CategoryMilitary
	CategoryTech
	CategorySupply
	CategoryDefense
)

func (c Category) String() string {
	switch c {
	case CategoryEconomy:
		return "economy"
	case CategoryMilitary:
		return "military"
	case CategoryTech:
		return "tech"
	case CategorySupply:
		return "supply"
	case CategoryDefense:
		return "defense"
	}
	return "unknown"
}

// Cost is an entity's resource price. SupplyProvided is nonzero for supply
// providers (depots, overlords, pylons, town halls).
type Cost struct {
	Minerals       int
	Gas            int
	Supply         int
	SupplyProvided int
}

// Entity describes one game object.
type Entity struct {
	Name     string
	Race     Race
	Category Category
	Cost     Cost
}

// Tech and upgrade records share the entity id space at fixed offsets so a
// single catalog lookup resolves every build-order action.
const (
	TechIDBase    = 0x0100
	UpgradeIDBase = 0x0200
)

var entities = map[uint16]Entity{
	// Terran units
	0x00: {"Marine", RaceTerran, CategoryMilitary, Cost{50, 0, 1, 0}},
	0x01: {"Ghost", RaceTerran, CategoryMilitary, Cost{25, 75, 1, 0}},
	0x02: {"Vulture", RaceTerran, CategoryMilitary, Cost{75, 0, 2, 0}},
	0x03: {"Goliath", RaceTerran, CategoryMilitary, Cost{100, 50, 2, 0}},
	0x05: {"Siege Tank", RaceTerran, CategoryMilitary, Cost{150, 100, 2, 0}},
	0x07: {"SCV", RaceTerran, CategoryEconomy, Cost{50, 0, 1, 0}},
	0x08: {"Wraith", RaceTerran, CategoryMilitary, Cost{150, 100, 2, 0}},
	0x09: {"Science Vessel", RaceTerran, CategoryTech, Cost{100, 225, 2, 0}},
	0x0B: {"Dropship", RaceTerran, CategoryMilitary, Cost{100, 100, 2, 0}},
	0x0C: {"Battlecruiser", RaceTerran, CategoryMilitary, Cost{400, 300, 6, 0}},
	0x20: {"Firebat", RaceTerran, CategoryMilitary, Cost{50, 25, 1, 0}},
	0x22: {"Medic", RaceTerran, CategoryMilitary, Cost{50, 25, 1, 0}},
	0x3A: {"Valkyrie", RaceTerran, CategoryMilitary, Cost{250, 125, 3, 0}},

	// Zerg units
	0x25: {"Zergling", RaceZerg, CategoryMilitary, Cost{50, 0, 1, 0}},
	0x26: {"Hydralisk", RaceZerg, CategoryMilitary, Cost{75, 25, 1, 0}},
	0x27: {"Ultralisk", RaceZerg, CategoryMilitary, Cost{200, 200, 4, 0}},
	0x29: {"Drone", RaceZerg, CategoryEconomy, Cost{50, 0, 1, 0}},
	0x2A: {"Overlord", RaceZerg, CategorySupply, Cost{100, 0, 0, 8}},
	0x2B: {"Mutalisk", RaceZerg, CategoryMilitary, Cost{100, 100, 2, 0}},
	0x2C: {"Guardian", RaceZerg, CategoryMilitary, Cost{50, 100, 2, 0}},
	0x2D: {"Queen", RaceZerg, CategoryTech, Cost{100, 100, 2, 0}},
	0x2E: {"Defiler", RaceZerg, CategoryTech, Cost{50, 150, 2, 0}},
	0x2F: {"Scourge", RaceZerg, CategoryMilitary, Cost{12, 38, 0, 0}},
	0x67: {"Lurker", RaceZerg, CategoryMilitary, Cost{50, 100, 2, 0}},

	// Protoss units
	0x3C: {"Corsair", RaceProtoss, CategoryMilitary, Cost{150, 100, 2, 0}},
	0x3D: {"Dark Templar", RaceProtoss, CategoryMilitary, Cost{125, 100, 2, 0}},
	0x40: {"Probe", RaceProtoss, CategoryEconomy, Cost{50, 0, 1, 0}},
	0x41: {"Zealot", RaceProtoss, CategoryMilitary, Cost{100, 0, 2, 0}},
	0x42: {"Dragoon", RaceProtoss, CategoryMilitary, Cost{125, 50, 2, 0}},
	0x43: {"High Templar", RaceProtoss, CategoryTech, Cost{50, 150, 2, 0}},
	0x45: {"Shuttle", RaceProtoss, CategoryMilitary, Cost{200, 0, 2, 0}},
	0x46: {"Scout", RaceProtoss, CategoryMilitary, Cost{275, 125, 3, 0}},
	0x47: {"Arbiter", RaceProtoss, CategoryTech, Cost{100, 350, 4, 0}},
	0x48: {"Carrier", RaceProtoss, CategoryMilitary, Cost{350, 250, 6, 0}},
	0x53: {"Reaver", RaceProtoss, CategoryMilitary, Cost{200, 100, 4, 0}},
	0x54: {"Observer", RaceProtoss, CategoryTech, Cost{25, 75, 1, 0}},

	// Terran buildings
	0x6A: {"Command Center", RaceTerran, CategoryEconomy, Cost{400, 0, 0, 10}},
	0x6B: {"Comsat Station", RaceTerran, CategoryTech, Cost{50, 50, 0, 0}},
	0x6C: {"Nuclear Silo", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	0x6D: {"Supply Depot", RaceTerran, CategorySupply, Cost{100, 0, 0, 8}},
	0x6E: {"Refinery", RaceTerran, CategoryEconomy, Cost{100, 0, 0, 0}},
	0x6F: {"Barracks", RaceTerran, CategoryMilitary, Cost{150, 0, 0, 0}},
	0x70: {"Academy", RaceTerran, CategoryTech, Cost{150, 0, 0, 0}},
	0x71: {"Factory", RaceTerran, CategoryMilitary, Cost{200, 100, 0, 0}},
	0x72: {"Starport", RaceTerran, CategoryMilitary, Cost{150, 100, 0, 0}},
	0x74: {"Science Facility", RaceTerran, CategoryTech, Cost{100, 150, 0, 0}},
	0x7A: {"Engineering Bay", RaceTerran, CategoryTech, Cost{125, 0, 0, 0}},
	0x7B: {"Armory", RaceTerran, CategoryTech, Cost{100, 50, 0, 0}},
	0x7C: {"Missile Turret", RaceTerran, CategoryDefense, Cost{75, 0, 0, 0}},
	0x7D: {"Bunker", RaceTerran, CategoryDefense, Cost{100, 0, 0, 0}},

	// Zerg buildings
	0x83: {"Hatchery", RaceZerg, CategoryEconomy, Cost{300, 0, 0, 1}},
	0x84: {"Lair", RaceZerg, CategoryTech, Cost{150, 100, 0, 0}},
	0x85: {"Hive", RaceZerg, CategoryTech, Cost{200, 150, 0, 0}},
	0x86: {"Nydus Canal", RaceZerg, CategoryTech, Cost{150, 0, 0, 0}},
	0x87: {"Hydralisk Den", RaceZerg, CategoryMilitary, Cost{100, 50, 0, 0}},
	0x88: {"Defiler Mound", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	0x89: {"Greater Spire", RaceZerg, CategoryMilitary, Cost{100, 150, 0, 0}},
	0x8A: {"Queen's Nest", RaceZerg, CategoryTech, Cost{150, 100, 0, 0}},
	0x8B: {"Evolution Chamber", RaceZerg, CategoryTech, Cost{75, 0, 0, 0}},
	0x8C: {"Ultralisk Cavern", RaceZerg, CategoryTech, Cost{150, 200, 0, 0}},
	0x8D: {"Spire", RaceZerg, CategoryMilitary, Cost{200, 150, 0, 0}},
	0x8E: {"Spawning Pool", RaceZerg, CategoryMilitary, Cost{200, 0, 0, 0}},
	0x8F: {"Creep Colony", RaceZerg, CategoryDefense, Cost{75, 0, 0, 0}},
	0x90: {"Spore Colony", RaceZerg, CategoryDefense, Cost{50, 0, 0, 0}},
	0x92: {"Sunken Colony", RaceZerg, CategoryDefense, Cost{50, 0, 0, 0}},
	0x95: {"Extractor", RaceZerg, CategoryEconomy, Cost{50, 0, 0, 0}},

	// Protoss buildings
	0x9A: {"Nexus", RaceProtoss, CategoryEconomy, Cost{400, 0, 0, 9}},
	0x9B: {"Robotics Facility", RaceProtoss, CategoryMilitary, Cost{200, 200, 0, 0}},
	0x9C: {"Pylon", RaceProtoss, CategorySupply, Cost{100, 0, 0, 8}},
	0x9D: {"Assimilator", RaceProtoss, CategoryEconomy, Cost{100, 0, 0, 0}},
	0x9F: {"Observatory", RaceProtoss, CategoryTech, Cost{50, 100, 0, 0}},
	0xA0: {"Gateway", RaceProtoss, CategoryMilitary, Cost{150, 0, 0, 0}},
	0xA2: {"Photon Cannon", RaceProtoss, CategoryDefense, Cost{150, 0, 0, 0}},
	0xA3: {"Citadel of Adun", RaceProtoss, CategoryTech, Cost{150, 100, 0, 0}},
	0xA4: {"Cybernetics Core", RaceProtoss, CategoryTech, Cost{200, 0, 0, 0}},
	0xA5: {"Templar Archives", RaceProtoss, CategoryTech, Cost{150, 200, 0, 0}},
	0xA6: {"Forge", RaceProtoss, CategoryTech, Cost{150, 0, 0, 0}},
	0xA7: {"Stargate", RaceProtoss, CategoryMilitary, Cost{150, 150, 0, 0}},
	0xA9: {"Fleet Beacon", RaceProtoss, CategoryTech, Cost{300, 200, 0, 0}},
	0xAA: {"Arbiter Tribunal", RaceProtoss, CategoryTech, Cost{200, 150, 0, 0}},
	0xAB: {"Robotics Support Bay", RaceProtoss, CategoryTech, Cost{150, 100, 0, 0}},
	0xAC: {"Shield Battery", RaceProtoss, CategoryDefense, Cost{100, 0, 0, 0}},

	// Research (tech id + TechIDBase)
	TechIDBase + 0x00: {"Stim Packs", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x01: {"Lockdown", RaceTerran, CategoryTech, Cost{200, 200, 0, 0}},
	TechIDBase + 0x03: {"Spider Mines", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x05: {"Tank Siege Mode", RaceTerran, CategoryTech, Cost{150, 150, 0, 0}},
	TechIDBase + 0x07: {"Irradiate", RaceTerran, CategoryTech, Cost{200, 200, 0, 0}},
	TechIDBase + 0x08: {"Yamato Gun", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x09: {"Cloaking Field", RaceTerran, CategoryTech, Cost{150, 150, 0, 0}},
	TechIDBase + 0x0A: {"Personnel Cloaking", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x0B: {"Burrowing", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x0F: {"Plague", RaceZerg, CategoryTech, Cost{200, 200, 0, 0}},
	TechIDBase + 0x10: {"Consume", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x11: {"Ensnare", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	TechIDBase + 0x13: {"Psionic Storm", RaceProtoss, CategoryTech, Cost{200, 200, 0, 0}},
	TechIDBase + 0x14: {"Hallucination", RaceProtoss, CategoryTech, Cost{150, 150, 0, 0}},
	TechIDBase + 0x15: {"Recall", RaceProtoss, CategoryTech, Cost{150, 150, 0, 0}},
	TechIDBase + 0x16: {"Stasis Field", RaceProtoss, CategoryTech, Cost{150, 150, 0, 0}},
	TechIDBase + 0x1E: {"Lurker Aspect", RaceZerg, CategoryTech, Cost{200, 200, 0, 0}},

	// Upgrades (upgrade id + UpgradeIDBase)
	UpgradeIDBase + 0x00: {"Terran Infantry Armor", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x01: {"Terran Vehicle Plating", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x02: {"Terran Ship Plating", RaceTerran, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x03: {"Zerg Carapace", RaceZerg, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x04: {"Zerg Flyer Carapace", RaceZerg, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x05: {"Protoss Ground Armor", RaceProtoss, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x07: {"Terran Infantry Weapons", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x08: {"Terran Vehicle Weapons", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x0A: {"Zerg Melee Attacks", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x0B: {"Zerg Missile Attacks", RaceZerg, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x0D: {"Protoss Ground Weapons", RaceProtoss, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x0F: {"Protoss Plasma Shields", RaceProtoss, CategoryTech, Cost{200, 200, 0, 0}},
	UpgradeIDBase + 0x10: {"U-238 Shells", RaceTerran, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x11: {"Ion Thrusters", RaceTerran, CategoryTech, Cost{100, 100, 0, 0}},
	UpgradeIDBase + 0x13: {"Pneumatized Carapace", RaceZerg, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x21: {"Leg Enhancements", RaceProtoss, CategoryTech, Cost{150, 150, 0, 0}},
	UpgradeIDBase + 0x31: {"Singularity Charge", RaceProtoss, CategoryTech, Cost{150, 150, 0, 0}},
}

// LookupEntity returns the descriptor for id. Tech and upgrade ids must be
// offset by TechIDBase / UpgradeIDBase before lookup.
func LookupEntity(id uint16) (Entity, bool) {
	e, ok := entities[id]
	return e, ok
}

// StartingSupply returns the race-specific frame-0 supply snapshot values
// (used, max). Random defaults to the lowest common start.
func StartingSupply(r Race) (used, max int) {
	switch r {
	case RaceTerran:
		return 4, 10
	case RaceZerg:
		return 4, 9
	case RaceProtoss:
		return 4, 9
	}
	return 4, 9
}
