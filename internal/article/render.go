package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/panel"
)

var (
	heroStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb")).
			Padding(1, 0, 0, 0)

	headStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af"))

	pendingStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("#4b5563"))

	flowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#14b8a6")).
			Italic(true)

	counterBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 2).
			Align(lipgloss.Center)
)

// View is how a section is drawn in one frame.
type View struct {
	Width    int
	Revealed bool
	// Elapsed is the time since the section was revealed. It drives the
	// counter animation.
	Elapsed time.Duration
}

// Render draws sec for the terminal. A section that has not been revealed
// keeps its full height but shows only a dim title line, so revealing it
// never moves the sections below.
func Render(sec Section, ds *dataset.Dataset, v View) string {
	if v.Width < 30 {
		v.Width = 30
	}
	full := render(sec, ds, v)
	if v.Revealed {
		return full
	}
	return pendingStyle.Render("▸ "+sec.Title) + strings.Repeat("\n", lipgloss.Height(full)-1)
}

func render(sec Section, ds *dataset.Dataset, v View) string {
	body := lipgloss.NewStyle().Width(v.Width)

	switch sec.Kind {
	case KindHero:
		return renderHero(ds.Hero, body)
	case KindCounters:
		return renderCounters(sec, ds.Counters, v)
	case KindOverview:
		return panel.Render(panel.ForOverview(ds), v.Width)
	case KindFlow:
		return renderFlow(sec)
	case KindSector:
		return renderSector(sec, body)
	case KindTimeline:
		return renderTimeline(sec, ds.Timeline, body)
	case KindTerms:
		return renderTerms(sec, ds.Terms, body)
	case KindWorld:
		return renderWorld(sec, ds, body)
	case KindSearch:
		return renderSearch(sec, ds, body)
	case KindDisruption:
		return panel.Render(panel.ForImpact(ds.Impact), v.Width)
	default:
		return ""
	}
}

func renderHero(h dataset.Hero, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(heroStyle.Render(strings.ToUpper(h.Title)))
	b.WriteString("\n")
	if h.Subtitle != "" {
		b.WriteString(body.Render(headStyle.Render(h.Subtitle)))
		b.WriteString("\n")
	}
	if h.Byline != "" {
		b.WriteString(subtleStyle.Render(h.Byline))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("↓ scroll to explore"))
	return b.String()
}

func renderCounters(sec Section, counters []dataset.Counter, v View) string {
	cells := make([]string, 0, len(counters))
	for _, c := range counters {
		value := FormatCounter(c, CounterValue(c.Value, v.Elapsed, CounterDuration))
		cells = append(cells, counterBox.Render(headStyle.Render(value)+"\n"+subtleStyle.Render(c.Label)))
	}

	var rows []string
	perRow := max(1, v.Width/28)
	for i := 0; i < len(cells); i += perRow {
		end := min(i+perRow, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}
	return headStyle.Render(sec.Title) + "\n" + lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderFlow(sec Section) string {
	f := sec.Flow
	var b strings.Builder
	b.WriteString(flowStyle.Render("  │"))
	b.WriteString("\n")
	b.WriteString(flowStyle.Render(fmt.Sprintf("  ▼ %s", f.Label)))
	if f.From != "" && f.To != "" {
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(fmt.Sprintf("    %s → %s", f.From, f.To)))
	}
	return b.String()
}

func renderSector(sec Section, body lipgloss.Style) string {
	color := panel.SectorColor(sec.Sector)
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(strings.ToUpper(sec.Title)))
	b.WriteString("\n")
	if sec.Summary != nil {
		b.WriteString(subtleStyle.Render(sec.Summary.StepCount))
		b.WriteString("\n")
		b.WriteString(body.Render(sec.Summary.Description))
		b.WriteString("\n")
	}
	for _, st := range sec.Steps {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(fmt.Sprintf("Step %d", st.Number)))
		b.WriteString("  ")
		b.WriteString(headStyle.Render(st.Title))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render(strings.TrimSpace(st.Flag + " " + st.Location)))
		b.WriteString("\n")
		for _, g := range panel.GroupResources(st.Resources) {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(panel.ResourceColor(g.Kind))).Render(g.Label + ": "))
			b.WriteString(strings.Join(g.Labels, ", "))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTimeline(sec Section, events []dataset.TimelineEvent, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(sec.Title))
	b.WriteString("\n")
	indent := body.Width(body.GetWidth() - 4).PaddingLeft(4)
	for i, e := range events {
		b.WriteString(flowStyle.Render("●"))
		b.WriteString(" ")
		b.WriteString(subtleStyle.Render(e.Period))
		b.WriteString("  ")
		b.WriteString(headStyle.Render(e.Title))
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString(indent.Render(e.Description))
			b.WriteString("\n")
		}
		if i < len(events)-1 {
			b.WriteString(flowStyle.Render("│"))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTerms(sec Section, terms []dataset.Term, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(sec.Title))
	b.WriteString("\n")
	for _, t := range terms {
		b.WriteString(body.Render(lipgloss.NewStyle().Bold(true).Underline(true).Render(t.Term) + "  " + t.Fact))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWorld(sec Section, ds *dataset.Dataset, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(sec.Title))
	b.WriteString("\n")
	hub := ds.Country(ds.Hub)
	if hub != nil {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("Every route ends at %s %s: %s", hub.Flag, hub.Name, hub.Role)))
		b.WriteString("\n")
	}
	for _, c := range ds.Countries {
		if hub != nil && c.ID == hub.ID {
			continue
		}
		color := panel.SectorColor(c.Sector)
		line := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●") +
			fmt.Sprintf(" %s %s", c.Flag, c.Name) +
			subtleStyle.Render(" · "+c.Role)
		b.WriteString(body.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderSearch(sec Section, ds *dataset.Dataset, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(headStyle.Render(sec.Title))
	b.WriteString("\n")
	b.WriteString(body.Render(fmt.Sprintf("%d steps across %d locations. Try: chainmap search lithium --sector primary",
		len(ds.Steps), len(ds.Locations()))))
	b.WriteString("\n")
	b.WriteString(body.Render(subtleStyle.Render(strings.Join(ds.Locations(), " · "))))
	return b.String()
}
