// Package analytics derives per-player summaries from decoded commands:
// action rates, a supply-tracked build order, and a coarse strategic read.
// Everything here is pure computation over the decode output; heuristic
// results carry explicit confidence scores instead of posing as facts.
package analytics

import (
	"fmt"

	"repdec/internal/container"
	"repdec/internal/stream"
)

// FramesPerSecond is the format's fixed simulation tick rate.
const FramesPerSecond = 24

// Summary is one player's derived analytics.
type Summary struct {
	Player           int               `json:"player"`
	Name             string            `json:"name"`
	Race             string            `json:"race"`
	Actions          int               `json:"actions"`
	EffectiveActions int               `json:"effective_actions"`
	APM              float64           `json:"apm"`
	EAPM             float64           `json:"eapm"`
	BuildOrder       []BuildOrderEntry `json:"build_order"`
	Supply           []SupplySnapshot  `json:"supply"`
	Strategy         Strategy          `json:"strategy"`
}

// Summarize computes a Summary per roster entry. commands must already be
// in frame order; frames is the header frame count.
func Summarize(players []container.Player, commands []stream.Command, frames uint32) []Summary {
	perPlayer := make([][]stream.Command, len(players))
	for _, cmd := range commands {
		if cmd.Player >= 0 && cmd.Player < len(players) {
			perPlayer[cmd.Player] = append(perPlayer[cmd.Player], cmd)
		}
	}

	minutes := GameMinutes(frames)
	out := make([]Summary, len(players))
	for i, p := range players {
		cmds := perPlayer[i]
		effective := 0
		for _, c := range cmds {
			if c.Effective {
				effective++
			}
		}
		s := Summary{
			Player:           i,
			Name:             p.Name,
			Race:             p.Race.String(),
			Actions:          len(cmds),
			EffectiveActions: effective,
			APM:              rate(len(cmds), minutes),
			EAPM:             rate(effective, minutes),
		}
		s.BuildOrder, s.Supply = buildOrder(p.Race, cmds)
		s.Strategy = classify(s.BuildOrder)
		out[i] = s
	}
	return out
}

// GameMinutes converts a frame count to wall-clock game minutes.
func GameMinutes(frames uint32) float64 {
	return float64(frames) / FramesPerSecond / 60
}

// rate divides actions by minutes, returning 0 for zero-length games.
func rate(actions int, minutes float64) float64 {
	if minutes <= 0 {
		return 0
	}
	return float64(actions) / minutes
}

// GameClock renders a frame as a m:ss game-time string.
func GameClock(frame uint32) string {
	secs := int(frame) / FramesPerSecond
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
