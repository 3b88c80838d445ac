package scene

import (
	"fmt"
	"io"
	"strings"

	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/session"
)

// Formats lists every export format in the order they are offered.
var Formats = []string{"svg", "html", "dot", "json", "yaml"}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case "svg":
		return "image/svg+xml"
	case "html":
		return "text/html; charset=utf-8"
	case "dot":
		return "text/vnd.graphviz"
	case "json":
		return "application/json"
	case "yaml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}

// Export writes g in format. The drawn formats (svg, html) project g through
// s, so a nil session gives the fully expanded static map; the data formats
// always carry the whole graph.
func Export(w io.Writer, format string, g *mindmap.Graph, s *session.Session) error {
	switch format {
	case "svg":
		return WriteSVG(w, Build(g, s, ""))
	case "html":
		return WriteHTML(w, Build(g, s, ""), g.Center().Label+" · supply chain")
	case "dot":
		_, err := io.WriteString(w, g.ExportDOT())
		return err
	case "json":
		b, err := g.ExportJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case "yaml":
		b, err := g.ExportYAML()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
