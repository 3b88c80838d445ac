package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9ca3af"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af"))

	takeawayStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#facc15")).
			Padding(0, 1)
)

func badge(text, color string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(text)
}

func accent(color string) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}

// Render draws c as terminal text wrapped to width. A nil c renders as "".
func Render(c Content, width int) string {
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width)

	switch c := c.(type) {
	case StepContent:
		return renderStep(c, body)
	case ImpactContent:
		return renderImpact(c, body)
	case OverviewContent:
		return renderOverview(c, body)
	case SectorContent:
		return renderSector(c, body)
	default:
		return ""
	}
}

func renderStep(c StepContent, body lipgloss.Style) string {
	var b strings.Builder
	st := c.Step
	b.WriteString(badge(fmt.Sprintf("Step %d · %s", st.Number, c.Sector), SectorColor(st.Sector)))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(st.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.TrimSpace(st.Flag + " " + st.Location)))
	b.WriteString("\n\n")

	if st.Description != "" {
		b.WriteString(headingStyle.Render("DESCRIPTION"))
		b.WriteString("\n")
		b.WriteString(body.Render(st.Description))
		b.WriteString("\n\n")
	}

	if len(c.Groups) > 0 {
		b.WriteString(headingStyle.Render("RESOURCES INVOLVED"))
		b.WriteString("\n")
		for _, g := range c.Groups {
			b.WriteString(badge(g.Label, ResourceColor(g.Kind)))
			b.WriteString(" ")
			b.WriteString(body.Render(strings.Join(g.Labels, ", ")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(c.Businesses) > 0 {
		b.WriteString(accent(SectorColor(st.Sector)).Render("KEY BUSINESSES"))
		b.WriteString("\n")
		b.WriteString(body.Render(strings.Join(c.Businesses, " · ")))
		b.WriteString("\n")
	}
	return b.String()
}

func renderImpact(c ImpactContent, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(badge("DISRUPTION", "#7c3aed"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(body.Render(mutedStyle.Render(c.Subtitle)))
	b.WriteString("\n")
	if c.Disrupted != "" {
		b.WriteString(fmt.Sprintf("Disrupted: %s\n", accent("#a78bfa").Render(c.Disrupted)))
	}
	b.WriteString("\n")

	for i, card := range c.Cards {
		b.WriteString(accent(card.Style.Color()).Render(fmt.Sprintf("%s %d. %s", card.Style.Icon(), i+1, card.Title)))
		b.WriteString("\n")
		b.WriteString(body.Render(card.Text))
		b.WriteString("\n\n")
	}

	if c.Takeaway != "" {
		b.WriteString(takeawayStyle.Width(body.GetWidth() - 2).Render("Key takeaway: " + c.Takeaway))
		b.WriteString("\n")
	}
	return b.String()
}

func renderOverview(c OverviewContent, body lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Title))
	b.WriteString("\n")
	if c.Subtitle != "" {
		b.WriteString(mutedStyle.Render(c.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cells := make([]string, 0, len(c.Counts))
	for _, ct := range c.Counts {
		cells = append(cells, lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(SectorColor(ct.Sector))).
			Padding(0, 1).
			Align(lipgloss.Center).
			Render(fmt.Sprintf("%s\n%s Steps\n%s", accent(SectorColor(ct.Sector)).Render(fmt.Sprint(ct.Steps)), ct.Title, mutedStyle.Render(ct.Theme))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("THE THREE SECTORS"))
	b.WriteString("\n")
	for _, s := range c.Summaries {
		b.WriteString(accent(SectorColor(s.ID)).Render(s.Label))
		b.WriteString(" ")
		b.WriteString(mutedStyle.Render(s.StepCount))
		b.WriteString("\n")
		b.WriteString(body.Render(s.Description))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderSector(c SectorContent, body lipgloss.Style) string {
	var b strings.Builder
	color := SectorColor(c.Summary.ID)
	b.WriteString(badge(c.Summary.Label, color))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %d processes", c.Summary.StepCount, len(c.Steps))))
	b.WriteString("\n\n")
	b.WriteString(body.Render(c.Summary.Description))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("STEPS IN THIS SECTOR"))
	b.WriteString("\n")
	for _, st := range c.Steps {
		b.WriteString(accent(color).Render(fmt.Sprintf("Step %d", st.Number)))
		b.WriteString(" ")
		b.WriteString(titleStyle.Render(st.Title))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(strings.TrimSpace(st.Flag + " " + st.Place())))
		b.WriteString("\n")
	}
	return b.String()
}
