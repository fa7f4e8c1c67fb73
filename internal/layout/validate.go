package layout

import "strings"

// reservedSlotNames are placeholder strings the game writes into unused or
// non-participant slots. A slot whose name matches one of these is not a
// player.
var reservedSlotNames = map[string]struct{}{
	"observer": {},
	"computer": {},
	"open":     {},
	"closed":   {},
}

// LooksLikeText reports whether raw plausibly holds human-readable text:
// printable ratio at least 0.7, at least one letter, and no run of four or
// more identical bytes. Used to score map-name candidates during scans.
func LooksLikeText(raw []byte) bool {
	if len(raw) == 0 {
		return false
	}
	printable := 0
	hasLetter := false
	run := 1
	for i, b := range raw {
		if b >= 0x20 && b < 0x7F {
			printable++
		}
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') {
			hasLetter = true
		}
		if i > 0 {
			if b == raw[i-1] {
				run++
				if run >= 4 {
					return false
				}
			} else {
				run = 1
			}
		}
	}
	return hasLetter && float64(printable)/float64(len(raw)) >= 0.7
}

// ValidPlayerName reports whether name is plausible for a participant slot:
// 2 to 24 printable characters and not a reserved slot keyword.
func ValidPlayerName(name string) bool {
	if len(name) < 2 || len(name) > 24 {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7F {
			return false
		}
	}
	_, reserved := reservedSlotNames[strings.ToLower(strings.TrimSpace(name))]
	return !reserved
}
