package mindmap

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the serialized form of a graph.
type document struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
	Nodes  []Node  `json:"nodes" yaml:"nodes"`
	Edges  []Edge  `json:"edges" yaml:"edges"`
}

func (g *Graph) document() document {
	return document{
		Width:  g.geo.Width,
		Height: g.geo.Height,
		Nodes:  g.nodes,
		Edges:  g.edges,
	}
}

// ExportJSON returns the laid-out graph as pretty-printed JSON.
func (g *Graph) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(g.document(), "", "  ")
}

// ExportYAML returns the laid-out graph as YAML.
func (g *Graph) ExportYAML() ([]byte, error) {
	return yaml.Marshal(g.document())
}

// ExportDOT returns the graph in Graphviz DOT format with pinned positions,
// so `neato -n` reproduces the canvas layout.
func (g *Graph) ExportDOT() string {
	var b strings.Builder
	b.WriteString("digraph chainmap {\n")
	b.WriteString("  node [shape=circle, style=filled, fixedsize=true];\n\n")

	for _, n := range g.nodes {
		label := n.Label
		if n.Sublabel != "" && n.Type != NodeStep {
			label += "\\n" + n.Sublabel
		}
		// DOT's y axis points up.
		b.WriteString(fmt.Sprintf("  %q [label=%q, pos=\"%.2f,%.2f!\", width=%.2f, fillcolor=%q, fontcolor=%q];\n",
			n.ID, label, n.Position.X, g.geo.Height-n.Position.Y, 2*n.Radius/72, n.Color, n.TextColor))
	}

	b.WriteString("\n")
	for _, e := range g.edges {
		style := "solid"
		if e.Style.Dash != "" {
			style = "dashed"
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [color=%q, penwidth=%.1f, style=%s];\n", e.From, e.To, e.Color, e.Style.Width, style))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderTree produces a terminal tree view of the hierarchy. visible decides
// which nodes are drawn; nil draws everything.
func RenderTree(g *Graph, visible func(id string) bool, brandFn, subtleFn, infoFn func(string) string) string {
	var b strings.Builder
	center := g.Center()
	if center == nil {
		return ""
	}
	b.WriteString(fmt.Sprintf("  ● %s\n", brandFn(center.Label)))
	if center.Sublabel != "" {
		b.WriteString(fmt.Sprintf("  │  %s\n", subtleFn(center.Sublabel)))
	}

	branches := g.Children(CenterID)
	for i, id := range branches {
		n := g.Node(id)
		last := i == len(branches)-1
		prefix, indent := "  ├── ", "  │   "
		if last {
			prefix, indent = "  └── ", "      "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, brandFn(n.Label), subtleFn(n.Sublabel)))

		var shown []string
		for _, cid := range g.Children(id) {
			if visible == nil || visible(cid) {
				shown = append(shown, cid)
			}
		}
		if hidden := len(g.Children(id)) - len(shown); hidden > 0 && len(shown) == 0 {
			b.WriteString(fmt.Sprintf("%s└── %s\n", indent, subtleFn(fmt.Sprintf("(%d collapsed)", hidden))))
			continue
		}
		for j, cid := range shown {
			c := g.Node(cid)
			branch := "├── "
			if j == len(shown)-1 {
				branch = "└── "
			}
			num := ""
			if c.Step != nil {
				num = fmt.Sprintf("%2d. ", c.Step.Number)
			}
			b.WriteString(fmt.Sprintf("%s%s%s%s  %s\n", indent, branch, num, c.Label, infoFn(c.Sublabel)))
		}
	}
	return b.String()
}
