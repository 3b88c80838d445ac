package panel

import (
	"strings"

	"github.com/msalah0e/chainmap/internal/dataset"
)

// Style is the visual kind of a consequence card.
type Style string

const (
	StyleDanger  Style = "danger"
	StyleWarning Style = "warning"
	StyleCaution Style = "caution"
	StyleAlert   Style = "alert"
	StyleGrowth  Style = "growth"
	// StyleNeutral is used for any unrecognized style.
	StyleNeutral Style = "neutral"
)

// ParseStyle maps an authored style onto a known Style.
func ParseStyle(s string) Style {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleDanger, StyleWarning, StyleCaution, StyleAlert, StyleGrowth:
		return st
	}
	return StyleNeutral
}

// Color returns the accent color of a card style.
func (s Style) Color() string {
	switch s {
	case StyleDanger:
		return "#dc2626"
	case StyleWarning:
		return "#ea580c"
	case StyleCaution:
		return "#ca8a04"
	case StyleAlert:
		return "#e11d48"
	case StyleGrowth:
		return "#059669"
	}
	return "#6b7280"
}

// Icon returns a short glyph for a card style.
func (s Style) Icon() string {
	switch s {
	case StyleDanger:
		return "⛔"
	case StyleWarning, StyleCaution:
		return "⚠"
	case StyleAlert:
		return "❗"
	case StyleGrowth:
		return "📈"
	}
	return "•"
}

// SectorColor returns the accent color of a sector; unknown sectors get grey.
func SectorColor(s dataset.Sector) string {
	switch s {
	case dataset.Primary:
		return "#059669"
	case dataset.Secondary:
		return "#d97706"
	case dataset.Tertiary:
		return "#e11d48"
	}
	return "#6b7280"
}

// ResourceColor returns the badge color of a resource kind.
func ResourceColor(k dataset.ResourceKind) string {
	switch k.Normalize() {
	case dataset.Natural:
		return "#047857"
	case dataset.Human:
		return "#0369a1"
	case dataset.Capital:
		return "#6d28d9"
	}
	return "#6b7280"
}
