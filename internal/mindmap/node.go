// Package mindmap computes the fixed mind-map hierarchy (center, sector
// branches, step leaves) and its canvas positions.
package mindmap

import (
	"fmt"

	"github.com/msalah0e/chainmap/internal/dataset"
)

// NodeType is the closed set of mind-map node kinds.
type NodeType int

const (
	NodeCenter NodeType = iota
	NodeSector
	NodeStep
	NodeImpact
	NodeOverview
)

var nodeTypeNames = [...]string{
	NodeCenter:   "center",
	NodeSector:   "sector",
	NodeStep:     "step",
	NodeImpact:   "impact",
	NodeOverview: "overview",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
	return nodeTypeNames[t]
}

// ParseNodeType maps a name back onto its NodeType.
func ParseNodeType(s string) (NodeType, error) {
	for i, name := range nodeTypeNames {
		if name == s {
			return NodeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown node type %q", s)
}

func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *NodeType) UnmarshalText(b []byte) error {
	v, err := ParseNodeType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Point is a position on the logical canvas.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Node is one visualizable entity of the mind map.
type Node struct {
	ID        string         `json:"id" yaml:"id"`
	Type      NodeType       `json:"type" yaml:"type"`
	Label     string         `json:"label" yaml:"label"`
	Sublabel  string         `json:"sublabel,omitempty" yaml:"sublabel,omitempty"`
	Position  Point          `json:"position" yaml:"position"`
	Radius    float64        `json:"radius" yaml:"radius"`
	ParentID  string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	Color     string         `json:"color" yaml:"color"`
	TextColor string         `json:"text_color" yaml:"text_color"`
	Sector    dataset.Sector `json:"sector,omitempty" yaml:"sector,omitempty"`
	Step      *dataset.Step  `json:"-" yaml:"-"`
}

// Edge links a node to its parent. From is always the parent.
type Edge struct {
	From  string    `json:"from" yaml:"from"`
	To    string    `json:"to" yaml:"to"`
	Color string    `json:"color" yaml:"color"`
	Style EdgeStyle `json:"style" yaml:"style"`
}

// EdgeStyle is the visual weight of an edge.
type EdgeStyle struct {
	Width   float64 `json:"width" yaml:"width"`
	Opacity float64 `json:"opacity" yaml:"opacity"`
	Dash    string  `json:"dash,omitempty" yaml:"dash,omitempty"`
}

// StyleFor returns the edge style for an edge whose child has type t.
func StyleFor(t NodeType) EdgeStyle {
	if t == NodeStep {
		return EdgeStyle{Width: 1.5, Opacity: 0.35, Dash: "5,4"}
	}
	return EdgeStyle{Width: 2.5, Opacity: 0.5}
}

// StepID returns the node id of a step.
func StepID(number int) string {
	return fmt.Sprintf("step-%d", number)
}
