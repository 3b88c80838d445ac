package scene

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/msalah0e/chainmap/internal/mindmap"
)

const visitedMark = "#10b981"

// WriteSVG writes sc as a standalone SVG document. Every node group carries
// a data-node attribute so a host page can wire activation to it.
func WriteSVG(w io.Writer, sc Scene) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	p(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %g %g" width="100%%" font-family="-apple-system,'Segoe UI',sans-serif">`+"\n", sc.Width, sc.Height)
	p(`<defs><filter id="shadow" x="-20%%" y="-20%%" width="140%%" height="140%%"><feDropShadow dx="0" dy="4" stdDeviation="6" flood-opacity="0.12"/></filter></defs>` + "\n")

	p("<g class=\"edges\">\n")
	for _, e := range sc.Edges {
		dash := ""
		if e.Dash != "" {
			dash = fmt.Sprintf(` stroke-dasharray="%s"`, e.Dash)
		}
		p(`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%g" stroke-opacity="%g"%s/>`+"\n",
			e.X1, e.Y1, e.X2, e.Y2, html.EscapeString(e.Color), e.Width, e.Opacity, dash)
	}
	p("</g>\n")

	p("<g class=\"nodes\">\n")
	for _, n := range sc.Nodes {
		p(`  <g class="node %s" data-node="%s" transform="translate(%.2f,%.2f)" style="cursor:pointer">`+"\n",
			n.Type, html.EscapeString(n.ID), n.X, n.Y)
		p("    <title>%s</title>\n", html.EscapeString(n.FullLabel))
		if n.Selected {
			p(`    <circle r="%g" fill="none" stroke="%s" stroke-width="3" stroke-opacity="0.4"/>`+"\n", n.R+10, html.EscapeString(n.Fill))
		}
		stroke, strokeWidth := "rgba(255,255,255,0.6)", 1.5
		if n.Selected {
			stroke, strokeWidth = "#fff", 3
		} else if n.Hovered {
			stroke, strokeWidth = "#111827", 2.5
		}
		p(`    <circle r="%g" fill="%s" stroke="%s" stroke-width="%g" filter="url(#shadow)"/>`+"\n",
			n.R, html.EscapeString(n.Fill), stroke, strokeWidth)
		if n.Visited && n.Type != mindmap.NodeCenter {
			p(`    <g transform="translate(%g,%g)"><circle r="9" fill="%s" stroke="#fff" stroke-width="1.5"/><text text-anchor="middle" dominant-baseline="central" font-size="10" fill="#fff" font-weight="bold">✓</text></g>`+"\n",
				n.R-10, -n.R+10, visitedMark)
		}

		size, weight, dy := labelMetrics(n.Type)
		p(`    <text text-anchor="middle" dominant-baseline="central" font-size="%d" font-weight="%d" fill="%s" y="%d">%s</text>`+"\n",
			size, weight, html.EscapeString(n.Text), dy, html.EscapeString(n.Label))
		if n.Sublabel != "" {
			sy := 20
			if n.Type == mindmap.NodeCenter {
				sy = 22
			}
			p(`    <text text-anchor="middle" dominant-baseline="central" font-size="9" fill="%s" fill-opacity="0.75" y="%d">%s</text>`+"\n",
				html.EscapeString(n.Text), sy, html.EscapeString(n.Sublabel))
		}
		p("  </g>\n")
	}
	p("</g>\n</svg>\n")
	return bw.Flush()
}

func labelMetrics(t mindmap.NodeType) (size, weight, dy int) {
	switch t {
	case mindmap.NodeCenter:
		return 13, 800, 8
	case mindmap.NodeStep:
		return 9, 700, 4
	default:
		return 11, 700, 6
	}
}
