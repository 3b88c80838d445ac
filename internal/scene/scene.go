// Package scene turns a laid-out mind map plus its view state into a flat
// 2D scene description, and draws that scene as SVG or as a character grid.
package scene

import (
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/session"
)

// MaxLabel is the longest label drawn in full; longer ones are cut.
const MaxLabel = 14

// NodeView is one drawable node.
type NodeView struct {
	ID        string           `json:"id"`
	Type      mindmap.NodeType `json:"type"`
	Label     string           `json:"label"`
	FullLabel string           `json:"full_label"`
	Sublabel  string           `json:"sublabel,omitempty"`
	X         float64          `json:"x"`
	Y         float64          `json:"y"`
	R         float64          `json:"r"`
	Fill      string           `json:"fill"`
	Text      string           `json:"text"`
	Selected  bool             `json:"selected,omitempty"`
	Visited   bool             `json:"visited,omitempty"`
	Hovered   bool             `json:"hovered,omitempty"`
	Expanded  bool             `json:"expanded,omitempty"`
}

// EdgeView is one drawable line segment from parent to child.
type EdgeView struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	X1      float64 `json:"x1"`
	Y1      float64 `json:"y1"`
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
	Dash    string  `json:"dash,omitempty"`
}

// Scene is everything the presentation layer needs to draw one frame.
type Scene struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Nodes     []NodeView `json:"nodes"`
	Edges     []EdgeView `json:"edges"`
	Explored  int        `json:"explored"`
	Total     int        `json:"total"`
	PanelOpen bool       `json:"panel_open"`
}

// Build projects g through s. A nil session draws the whole map with no
// selection, as in a static export. hovered only adds emphasis.
func Build(g *mindmap.Graph, s *session.Session, hovered string) Scene {
	geo := g.Geometry()
	sc := Scene{Width: geo.Width, Height: geo.Height, Total: g.Len()}

	visible := func(string) bool { return true }
	if s != nil {
		visible = s.IsVisible
		sc.Explored, _ = s.Progress()
		sc.PanelOpen = s.PanelOpen()
	}

	for _, e := range g.Edges() {
		if !visible(e.To) {
			continue
		}
		from, to := g.Node(e.From), g.Node(e.To)
		sc.Edges = append(sc.Edges, EdgeView{
			From:    e.From,
			To:      e.To,
			X1:      from.Position.X,
			Y1:      from.Position.Y,
			X2:      to.Position.X,
			Y2:      to.Position.Y,
			Color:   e.Color,
			Width:   e.Style.Width,
			Opacity: e.Style.Opacity,
			Dash:    e.Style.Dash,
		})
	}

	for _, n := range g.Nodes() {
		if !visible(n.ID) {
			continue
		}
		v := NodeView{
			ID:        n.ID,
			Type:      n.Type,
			Label:     Truncate(n.Label, MaxLabel),
			FullLabel: n.Label,
			X:         n.Position.X,
			Y:         n.Position.Y,
			R:         n.Radius,
			Fill:      n.Color,
			Text:      n.TextColor,
			Hovered:   n.ID == hovered,
		}
		if n.Type != mindmap.NodeStep {
			v.Sublabel = n.Sublabel
		}
		if s != nil {
			v.Selected = s.Selected() == n.ID
			v.Visited = s.IsVisited(n.ID)
			v.Expanded = n.Type == mindmap.NodeSector && s.IsExpanded(n.ID)
		} else {
			v.Expanded = n.Type == mindmap.NodeSector
		}
		sc.Nodes = append(sc.Nodes, v)
	}
	return sc
}

// Truncate cuts s to limit-1 runes plus an ellipsis when it is longer than
// limit runes.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit || limit < 1 {
		return s
	}
	return string(r[:limit-1]) + "…"
}

// Node returns the view of id, or nil when it is not in the scene.
func (sc Scene) Node(id string) *NodeView {
	for i := range sc.Nodes {
		if sc.Nodes[i].ID == id {
			return &sc.Nodes[i]
		}
	}
	return nil
}

// HitTest returns the topmost node containing the canvas point (x, y), or "".
func (sc Scene) HitTest(x, y float64) string {
	for i := len(sc.Nodes) - 1; i >= 0; i-- {
		n := sc.Nodes[i]
		dx, dy := x-n.X, y-n.Y
		if dx*dx+dy*dy <= n.R*n.R {
			return n.ID
		}
	}
	return ""
}
