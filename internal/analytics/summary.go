package analytics

// classifyWindow is how many leading build-order entries feed the
// strategic read.
const classifyWindow = 12

// Strategy is a deliberately coarse classification of a player's opening.
// It is derived by thresholding, not by understanding the game, and
// consumers should treat it as a hint.
type Strategy struct {
	Opening       string   `json:"opening"`
	TechPath      []string `json:"tech_path,omitempty"`
	MilitaryRatio float64  `json:"military_ratio"`
}

func classify(entries []BuildOrderEntry) Strategy {
	window := entries
	if len(window) > classifyWindow {
		window = window[:classifyWindow]
	}
	if len(window) == 0 {
		return Strategy{Opening: "unknown"}
	}

	counts := map[string]int{}
	var techPath []string
	for _, e := range window {
		counts[e.Category]++
		if e.Category == "tech" && len(techPath) < 5 {
			techPath = append(techPath, e.EntityName)
		}
	}

	mil, eco, tech := counts["military"], counts["economy"], counts["tech"]
	var ratio float64
	if mil+eco > 0 {
		ratio = float64(mil) / float64(mil+eco)
	}

	opening := "balanced"
	switch {
	case eco*2 >= len(window):
		opening = "economic"
	case mil*2 >= len(window):
		opening = "aggressive"
	case tech*2 >= len(window):
		opening = "tech-focused"
	}

	return Strategy{Opening: opening, TechPath: techPath, MilitaryRatio: ratio}
}
