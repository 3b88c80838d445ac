package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/msalah0e/chainmap/internal/mindmap"
)

// Cell is one character of a Grid.
type Cell struct {
	Rune   rune
	NodeID string // set on the cells of a node's tag
	Color  string // hex color of the node or edge drawn here
}

// Grid is a character-cell projection of a Scene for terminals.
type Grid struct {
	Cols, Rows int
	Cells      [][]Cell
	scene      Scene
}

// RenderGrid projects sc onto cols x rows character cells. Edges are dotted
// lines (dashed edges skip every other dot); nodes are short bracketed tags.
func RenderGrid(sc Scene, cols, rows int) Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := Grid{Cols: cols, Rows: rows, scene: sc, Cells: make([][]Cell, rows)}
	for r := range g.Cells {
		g.Cells[r] = make([]Cell, cols)
		for c := range g.Cells[r] {
			g.Cells[r][c].Rune = ' '
		}
	}

	for _, e := range sc.Edges {
		c1, r1 := g.toCell(e.X1, e.Y1)
		c2, r2 := g.toCell(e.X2, e.Y2)
		steps := max(abs(c2-c1), abs(r2-r1))
		for i := 1; i < steps; i++ {
			if e.Dash != "" && i%2 == 1 {
				continue
			}
			t := float64(i) / float64(steps)
			c := c1 + int(math.Round(t*float64(c2-c1)))
			r := r1 + int(math.Round(t*float64(r2-r1)))
			g.set(c, r, Cell{Rune: '·', Color: e.Color})
		}
	}

	for _, n := range sc.Nodes {
		tag := Tag(n)
		c, r := g.toCell(n.X, n.Y)
		start := c - len([]rune(tag))/2
		color := n.Fill
		if n.Type == mindmap.NodeStep {
			color = n.Text
		}
		for i, ch := range []rune(tag) {
			g.set(start+i, r, Cell{Rune: ch, NodeID: n.ID, Color: color})
		}
	}
	return g
}

// Tag is the short grid label of a node: "(5)" for steps, the label for
// branches and the center. Visited nodes get a check mark.
func Tag(n NodeView) string {
	var tag string
	switch n.Type {
	case mindmap.NodeStep:
		num := strings.TrimPrefix(n.ID, "step-")
		tag = "(" + num + ")"
	case mindmap.NodeSector:
		marker := "+"
		if n.Expanded {
			marker = "-"
		}
		tag = fmt.Sprintf("[%s %s]", marker, Truncate(n.FullLabel, 10))
	default:
		tag = "[" + Truncate(n.FullLabel, 14) + "]"
	}
	if n.Visited {
		tag += "✓"
	}
	return tag
}

func (g Grid) toCell(x, y float64) (int, int) {
	c := int(math.Round(x / g.scene.Width * float64(g.Cols-1)))
	r := int(math.Round(y / g.scene.Height * float64(g.Rows-1)))
	return c, r
}

func (g Grid) set(c, r int, cell Cell) {
	if r < 0 || r >= g.Rows || c < 0 || c >= g.Cols {
		return
	}
	g.Cells[r][c] = cell
}

// At returns the cell at (col, row), or a blank cell when out of range.
func (g Grid) At(col, row int) Cell {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{Rune: ' '}
	}
	return g.Cells[row][col]
}

// NodeAt returns the node under (col, row): the tag drawn there, or else the
// node whose circle covers the matching canvas point.
func (g Grid) NodeAt(col, row int) string {
	if id := g.At(col, row).NodeID; id != "" {
		return id
	}
	if g.Cols < 2 || g.Rows < 2 {
		return ""
	}
	x := float64(col) / float64(g.Cols-1) * g.scene.Width
	y := float64(row) / float64(g.Rows-1) * g.scene.Height
	return g.scene.HitTest(x, y)
}

// String renders the grid as plain text, one line per row.
func (g Grid) String() string {
	var b strings.Builder
	for r, row := range g.Cells {
		line := make([]rune, len(row))
		for c, cell := range row {
			line[c] = cell.Rune
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		if r < len(g.Cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
