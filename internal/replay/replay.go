// Package replay is the pipeline façade: expansion, container decode,
// command-stream decode, and analytics wired into a single pure call.
// Decode holds no state and is safe for concurrent use; the only error it
// returns is the container's signature failure.
package replay

import (
	"repdec/internal/analytics"
	"repdec/internal/container"
	"repdec/internal/expand"
	"repdec/internal/stream"
)

// ErrInvalidFormat is re-exported so callers can classify failures without
// importing the container package.
var ErrInvalidFormat = container.ErrInvalidFormat

// Reliability tiers for a decode, derived from which recovery paths fired.
const (
	ReliabilityHigh   = "high"
	ReliabilityMedium = "medium"
	ReliabilityLow    = "low"
)

// ParseStats reports how cleanly the decode went.
type ParseStats struct {
	CommandCount    int      `json:"command_count"`
	EndFrame        uint32   `json:"end_frame"`
	UnknownOpcodes  int      `json:"unknown_opcodes"`
	Resyncs         int      `json:"resyncs"`
	DroppedCommands int      `json:"dropped_commands"`
	Truncated       bool     `json:"truncated"`
	Compressed      bool     `json:"compressed"`
	Expanded        bool     `json:"expanded"`
	Reliability     string   `json:"reliability"`
	Notes           []string `json:"notes,omitempty"`
}

// Result is the complete decode output.
type Result struct {
	Header    container.Header    `json:"header"`
	Players   []container.Player  `json:"players"`
	Commands  []stream.Command    `json:"commands"`
	Summaries []analytics.Summary `json:"summaries"`
	Stats     ParseStats          `json:"stats"`
}

// Decode runs the full pipeline over buf. buf is never modified. The only
// failure is an unrecognized signature; everything past that degrades into
// notes and a lowered reliability tier.
func Decode(buf []byte) (*Result, error) {
	exp := expand.Expand(buf)

	dec, err := container.Decode(exp.Data)
	if err != nil {
		return nil, err
	}

	slotToPlayer := make(map[uint8]int, len(dec.Players))
	for i, p := range dec.Players {
		slotToPlayer[uint8(p.Slot)] = i
	}

	var section []byte
	if dec.CommandStart < len(exp.Data) {
		section = exp.Data[dec.CommandStart:]
	}
	out := stream.Decode(section, slotToPlayer)

	// A zero header frame count is the documented unrecoverable default;
	// the stream's final frame is the best remaining estimate.
	frames := dec.Header.Frames
	if frames == 0 && out.EndFrame > 0 {
		frames = out.EndFrame
		dec.Notes = append(dec.Notes, "frame count taken from command stream")
	}

	res := &Result{
		Header:    dec.Header,
		Players:   dec.Players,
		Commands:  out.Commands,
		Summaries: analytics.Summarize(dec.Players, out.Commands, frames),
	}
	res.Stats = stats(exp, dec, out)
	return res, nil
}

// stats folds the recovery bookkeeping of every stage into one report.
func stats(exp expand.Result, dec *container.Decoded, out stream.Output) ParseStats {
	s := ParseStats{
		CommandCount:    len(out.Commands),
		EndFrame:        out.EndFrame,
		UnknownOpcodes:  out.Unknown,
		Resyncs:         out.Resyncs,
		DroppedCommands: out.Dropped,
		Truncated:       out.Truncated,
		Compressed:      exp.Compressed,
		Expanded:        exp.Expanded,
	}
	s.Notes = append(s.Notes, exp.Notes...)
	s.Notes = append(s.Notes, dec.Notes...)
	if out.CapReached {
		s.Notes = append(s.Notes, "command stream iteration cap reached")
	}
	s.Reliability = reliability(s, dec)
	return s
}

// reliability grades the decode. Low means a structural recovery fired
// (synthesized roster, unvalidated header fields, failed decompression);
// medium means the stream needed repair but the structure held; high means
// nothing went wrong.
func reliability(s ParseStats, dec *container.Decoded) string {
	switch {
	case dec.RosterSynthesized,
		dec.Header.LowConfidence,
		s.Compressed && !s.Expanded:
		return ReliabilityLow
	case s.UnknownOpcodes > 0,
		s.DroppedCommands > 0,
		s.Truncated,
		len(s.Notes) > 0:
		return ReliabilityMedium
	}
	return ReliabilityHigh
}
