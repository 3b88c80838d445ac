package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/msalah0e/chainmap/internal/config"
	"github.com/msalah0e/chainmap/internal/dataset"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiCyan, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Sector colors
var (
	PrimaryColor   = color.New(color.FgGreen, color.Bold)
	SecondaryColor = color.New(color.FgYellow, color.Bold)
	TertiaryColor  = color.New(color.FgMagenta, color.Bold)
)

// Car is the banner glyph.
const Car = "\U0001F697" // 🚗

var (
	out   io.Writer = os.Stdout
	emoji           = true
)

// Configure applies the [ui] settings. Color stays off when stdout is not a
// terminal regardless of the setting.
func Configure(cfg config.UIConfig) {
	if !cfg.Color {
		color.NoColor = true
	}
	emoji = cfg.Emoji
}

// SetOutput redirects Banner and Table. nil restores stdout.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Banner prints the chainmap banner.
func Banner(subtitle string) {
	glyph := Car + " "
	if !emoji {
		glyph = ""
	}
	fmt.Fprintf(out, "%s%s — %s\n\n", glyph, Brand.Sprint("chainmap"), subtitle)
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	// Print header
	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += runewidth.FillRight(h, widths[i]) + "  "
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(out, strings.TrimRight(headerLine, " "))
	Subtle.Fprintln(out, strings.TrimRight(sepLine, " "))

	// Print rows
	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += runewidth.FillRight(cell, widths[i]) + "  "
			}
		}
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// Sector returns the palette entry for s. Unmapped sectors are subtle.
func Sector(s dataset.Sector) *color.Color {
	switch s {
	case dataset.Primary:
		return PrimaryColor
	case dataset.Secondary:
		return SecondaryColor
	case dataset.Tertiary:
		return TertiaryColor
	default:
		return Subtle
	}
}

// Resource returns the palette entry for a resource kind.
func Resource(k dataset.ResourceKind) *color.Color {
	switch k.Normalize() {
	case dataset.Natural:
		return Good
	case dataset.Human:
		return Info
	case dataset.Capital:
		return Warn
	default:
		return Subtle
	}
}

// Flag returns f when emoji output is on, otherwise "".
func Flag(f string) string {
	if !emoji {
		return ""
	}
	return f
}
