package store

import "repdec/internal/replay"

// NewEntry reduces a decode result to a history row.
func NewEntry(file string, res *replay.Result) *Entry {
	names := make([]string, 0, len(res.Players))
	apm := make(map[string]float64, len(res.Summaries))
	for _, p := range res.Players {
		names = append(names, p.Name)
	}
	for _, s := range res.Summaries {
		apm[s.Name] = s.APM
	}
	return &Entry{
		File:        file,
		MapName:     res.Header.MapName,
		Players:     names,
		Frames:      res.Header.Frames,
		Commands:    res.Stats.CommandCount,
		Reliability: res.Stats.Reliability,
		APM:         apm,
	}
}
