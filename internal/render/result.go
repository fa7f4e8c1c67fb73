package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"golang.org/x/term"

	"repdec/internal/analytics"
	"repdec/internal/replay"
)

// Renderer formats decode results for the terminal.
type Renderer struct {
	pretty bool
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	playerStyle = lipgloss.NewStyle().Bold(true)
)

// New creates a renderer. pretty enables color and layout.
func New(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// Auto creates a renderer that is pretty only when stdout is a terminal.
func Auto() *Renderer {
	return New(term.IsTerminal(int(os.Stdout.Fd())))
}

// Result formats one decoded replay.
func (r *Renderer) Result(file string, size int, res *replay.Result) string {
	var sb strings.Builder

	gameLen := gameLength(res.Stats.EndFrame, res.Header.Frames)

	if r.pretty {
		sb.WriteString(titleStyle.Render(file) + "\n")
		sb.WriteString(strings.Repeat("─", 60) + "\n")
		fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("Map:        "), res.Header.MapName)
		fmt.Fprintf(&sb, "  %s %s (%d frames)\n", labelStyle.Render("Length:     "), gameLen, res.Header.Frames)
		fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("Size:       "), humanize.Bytes(uint64(size)))
		fmt.Fprintf(&sb, "  %s %s %s\n", labelStyle.Render("Reliability:"),
			ReliabilityIcon(res.Stats.Reliability), reliabilityColor(res.Stats.Reliability))
	} else {
		fmt.Fprintf(&sb, "file=%s map=%q frames=%d length=%s size=%d reliability=%s\n",
			file, res.Header.MapName, res.Header.Frames, gameLen, size, res.Stats.Reliability)
	}

	for _, s := range res.Summaries {
		r.formatPlayer(&sb, s)
	}

	r.formatStats(&sb, res)
	return sb.String()
}

func (r *Renderer) formatPlayer(sb *strings.Builder, s analytics.Summary) {
	if r.pretty {
		fmt.Fprintf(sb, "\n%s (%s)\n", playerStyle.Render(s.Name), s.Race)
		fmt.Fprintf(sb, "  APM %s  EAPM %s  actions %d\n",
			color.GreenString("%.0f", s.APM), color.CyanString("%.0f", s.EAPM), s.Actions)
		if s.Strategy.Opening != "unknown" {
			fmt.Fprintf(sb, "  opening: %s", s.Strategy.Opening)
			if len(s.Strategy.TechPath) > 0 {
				fmt.Fprintf(sb, "  tech: %s", strings.Join(s.Strategy.TechPath, " > "))
			}
			sb.WriteString("\n")
		}
		for i, e := range s.BuildOrder {
			if i >= 10 {
				fmt.Fprintf(sb, "    … %d more\n", len(s.BuildOrder)-i)
				break
			}
			fmt.Fprintf(sb, "    %s  %-7s %s (%d/%d)\n",
				color.HiBlackString(e.Clock), e.Kind, e.EntityName, e.SupplyUsed, e.SupplyMax)
		}
	} else {
		fmt.Fprintf(sb, "player=%q race=%s apm=%.1f eapm=%.1f actions=%d opening=%s\n",
			s.Name, s.Race, s.APM, s.EAPM, s.Actions, s.Strategy.Opening)
	}
}

func (r *Renderer) formatStats(sb *strings.Builder, res *replay.Result) {
	st := res.Stats
	if r.pretty {
		fmt.Fprintf(sb, "\n%s %d commands", labelStyle.Render("decoded"), st.CommandCount)
		if st.UnknownOpcodes > 0 || st.DroppedCommands > 0 {
			fmt.Fprintf(sb, " (%d unknown, %d dropped)", st.UnknownOpcodes, st.DroppedCommands)
		}
		if st.Truncated {
			sb.WriteString(color.YellowString(" [truncated]"))
		}
		sb.WriteString("\n")
		if st.Compressed {
			fmt.Fprintf(sb, "  %s expanded %s\n", labelStyle.Render("payload:"), BoolIcon(st.Expanded))
		}
		for _, n := range st.Notes {
			fmt.Fprintf(sb, "  %s %s\n", color.YellowString("note:"), n)
		}
	} else {
		fmt.Fprintf(sb, "commands=%d unknown=%d dropped=%d truncated=%v notes=%d\n",
			st.CommandCount, st.UnknownOpcodes, st.DroppedCommands, st.Truncated, len(st.Notes))
	}
}

func reliabilityColor(tier string) string {
	switch tier {
	case "high":
		return color.GreenString(tier)
	case "medium":
		return color.YellowString(tier)
	default:
		return color.RedString(tier)
	}
}

// gameLength renders the game duration, preferring the header frame count
// and falling back to the last decoded frame.
func gameLength(endFrame, headerFrames uint32) string {
	frames := headerFrames
	if frames == 0 {
		frames = endFrame
	}
	d := time.Duration(frames/analytics.FramesPerSecond) * time.Second
	return durafmt.Parse(d).LimitFirstN(2).String()
}
