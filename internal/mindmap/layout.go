package mindmap

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/msalah0e/chainmap/internal/dataset"
)

// CenterID is the id of the root node.
const CenterID = "center"

// LayoutError reports a record excluded from the layout.
type LayoutError struct {
	StepNumber int
	Sector     dataset.Sector
	Branch     string
	Reason     string
}

func (e *LayoutError) Error() string {
	if e.Branch != "" {
		return fmt.Sprintf("branch %q: %s", e.Branch, e.Reason)
	}
	return fmt.Sprintf("step %d (sector %q): %s", e.StepNumber, e.Sector, e.Reason)
}

// Graph is the immutable output of Layout: every node with its position
// plus the parent/child index. Nothing mutates it after construction.
type Graph struct {
	geo      Geometry
	steps    []dataset.Step
	nodes    []Node
	edges    []Edge
	index    map[string]int
	children map[string][]string
}

// Layout places the center, one node per branch and the steps of every
// sector branch. A step whose sector has no branch is left out and reported;
// the rest of the layout is unaffected. The result depends only on the
// inputs.
func Layout(steps []dataset.Step, branches []Branch, geo Geometry) (*Graph, []error) {
	g := &Graph{
		geo:      geo,
		index:    make(map[string]int),
		children: make(map[string][]string),
	}
	var errs []error

	center := geo.Center()
	g.add(Node{
		ID:        CenterID,
		Type:      NodeCenter,
		Label:     geo.CenterLabel,
		Sublabel:  geo.CenterSublabel,
		Position:  center,
		Radius:    geo.CenterRadius,
		Color:     geo.CenterColor,
		TextColor: geo.CenterTextColor,
	})

	sectorBranch := make(map[dataset.Sector]Branch)
	var sectors []Branch
	for _, b := range branches {
		if _, dup := g.index[b.ID]; dup || b.ID == "" {
			errs = append(errs, &LayoutError{Branch: b.ID, Reason: "duplicate or empty branch id"})
			continue
		}
		if b.Type != NodeSector && b.Type != NodeImpact && b.Type != NodeOverview {
			errs = append(errs, &LayoutError{Branch: b.ID, Reason: fmt.Sprintf("%s cannot be a branch", b.Type)})
			continue
		}
		if b.Type == NodeSector {
			if _, dup := sectorBranch[b.Sector]; dup {
				errs = append(errs, &LayoutError{Branch: b.ID, Reason: fmt.Sprintf("sector %q already has a branch", b.Sector)})
				continue
			}
			sectorBranch[b.Sector] = b
			sectors = append(sectors, b)
		}
		g.add(Node{
			ID:        b.ID,
			Type:      b.Type,
			Label:     b.Label,
			Sublabel:  b.Sublabel,
			Position:  polar(center, geo.BranchDistance, b.Angle),
			Radius:    geo.BranchRadius,
			ParentID:  CenterID,
			Color:     b.Color,
			TextColor: b.TextColor,
			Sector:    b.Sector,
		})
	}

	sorted := make([]dataset.Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	grouped := make(map[dataset.Sector][]dataset.Step)
	seen := make(map[int]bool)
	for _, st := range sorted {
		if _, ok := sectorBranch[st.Sector]; !ok {
			errs = append(errs, &LayoutError{StepNumber: st.Number, Sector: st.Sector, Reason: "no branch for sector"})
			continue
		}
		if seen[st.Number] {
			errs = append(errs, &LayoutError{StepNumber: st.Number, Sector: st.Sector, Reason: "duplicate step number"})
			continue
		}
		seen[st.Number] = true
		grouped[st.Sector] = append(grouped[st.Sector], st)
	}

	// Step payloads point into g.steps, so it is filled before any step node.
	for _, b := range sectors {
		g.steps = append(g.steps, grouped[b.Sector]...)
	}

	i := 0
	for _, b := range sectors {
		children := grouped[b.Sector]
		if len(children) == 0 {
			continue
		}
		origin := g.Node(b.ID).Position
		base := degrees(math.Atan2(origin.Y-center.Y, origin.X-center.X))
		inc := 0.0
		if len(children) > 1 {
			inc = b.Arc / float64(len(children)-1)
		}
		half := b.Arc / 2
		if len(children) == 1 {
			half = 0
		}
		for k := range children {
			st := &g.steps[i]
			i++
			g.add(Node{
				ID:        StepID(st.Number),
				Type:      NodeStep,
				Label:     st.Title,
				Sublabel:  stepSublabel(*st),
				Position:  polar(origin, b.Distance, base+float64(k)*inc-half),
				Radius:    geo.StepRadius,
				ParentID:  b.ID,
				Color:     b.StepColor,
				TextColor: b.StepTextColor,
				Sector:    st.Sector,
				Step:      st,
			})
		}
	}

	for _, n := range g.nodes {
		if n.ParentID == "" {
			continue
		}
		g.edges = append(g.edges, Edge{
			From:  n.ParentID,
			To:    n.ID,
			Color: g.Node(n.ParentID).Color,
			Style: StyleFor(n.Type),
		})
	}
	return g, errs
}

func (g *Graph) add(n Node) {
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	if n.ParentID != "" {
		g.children[n.ParentID] = append(g.children[n.ParentID], n.ID)
	}
}

func polar(origin Point, dist, angleDeg float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{X: origin.X + dist*math.Cos(rad), Y: origin.Y + dist*math.Sin(rad)}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func stepSublabel(st dataset.Step) string {
	if st.Flag == "" {
		return st.Place()
	}
	return st.Flag + " " + st.Place()
}

// ─── Query ───

// Geometry returns the constants the graph was laid out with.
func (g *Graph) Geometry() Geometry { return g.geo }

// Nodes returns every node in layout order: center, branches, steps.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns one edge per non-root node, in node order.
func (g *Graph) Edges() []Edge { return g.edges }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Node returns a node by id, or nil if not found.
func (g *Graph) Node(id string) *Node {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return &g.nodes[i]
}

// Center returns the root node.
func (g *Graph) Center() *Node { return g.Node(CenterID) }

// Parent returns the parent of id, or nil for the root and unknown ids.
func (g *Graph) Parent(id string) *Node {
	n := g.Node(id)
	if n == nil || n.ParentID == "" {
		return nil
	}
	return g.Node(n.ParentID)
}

// Children returns the ids of the direct children of id, in layout order.
func (g *Graph) Children(id string) []string { return g.children[id] }

// IDs returns every node id in layout order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		ids[i] = n.ID
	}
	return ids
}

// SectorIDs returns the ids of the sector nodes in layout order.
func (g *Graph) SectorIDs() []string {
	var ids []string
	for _, n := range g.nodes {
		if n.Type == NodeSector {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// ByType returns the nodes of one type in layout order.
func (g *Graph) ByType(t NodeType) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// Validate checks the tree shape: a single parentless center, branches under
// the center, steps under the branch of their own sector, and no cycles.
func (g *Graph) Validate() error {
	var errs []error
	roots := 0
	for _, n := range g.nodes {
		if n.ParentID == "" {
			roots++
			if n.Type != NodeCenter {
				errs = append(errs, fmt.Errorf("%s: %s node has no parent", n.ID, n.Type))
			}
			continue
		}
		parent := g.Node(n.ParentID)
		if parent == nil {
			errs = append(errs, fmt.Errorf("%s: parent %q does not exist", n.ID, n.ParentID))
			continue
		}
		switch n.Type {
		case NodeCenter:
			errs = append(errs, fmt.Errorf("%s: center node has a parent", n.ID))
		case NodeSector, NodeImpact, NodeOverview:
			if parent.Type != NodeCenter {
				errs = append(errs, fmt.Errorf("%s: parent must be the center", n.ID))
			}
		case NodeStep:
			if parent.Type != NodeSector || n.Step == nil || parent.Sector != n.Step.Sector {
				errs = append(errs, fmt.Errorf("%s: parent %q is not its sector", n.ID, n.ParentID))
			}
		}
		depth := 0
		for cur := parent; cur != nil && cur.ParentID != ""; cur = g.Node(cur.ParentID) {
			if depth++; depth > len(g.nodes) {
				errs = append(errs, fmt.Errorf("%s: ancestor chain has a cycle", n.ID))
				break
			}
		}
	}
	if roots != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one root, found %d", roots))
	}
	return errors.Join(errs...)
}
