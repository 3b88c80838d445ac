package mindmap

import "github.com/msalah0e/chainmap/internal/dataset"

// Geometry holds the fixed canvas constants.
type Geometry struct {
	Width          float64
	Height         float64
	CenterRadius   float64
	BranchDistance float64
	BranchRadius   float64
	StepRadius     float64

	CenterLabel     string
	CenterSublabel  string
	CenterColor     string
	CenterTextColor string
}

// DefaultGeometry returns the 1400x900 canvas the map is authored for.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:           1400,
		Height:          900,
		CenterRadius:    72,
		BranchDistance:  230,
		BranchRadius:    52,
		StepRadius:      38,
		CenterLabel:     "Tesla Model X",
		CenterSublabel:  "Interdependence",
		CenterColor:     "#111827",
		CenterTextColor: "#ffffff",
	}
}

// Center returns the canvas midpoint.
func (g Geometry) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

// Branch describes one first-level node around the center. Sector
// branches also carry the fan-out used for their step children.
type Branch struct {
	ID        string
	Type      NodeType // NodeSector, NodeImpact or NodeOverview
	Sector    dataset.Sector
	Label     string
	Sublabel  string
	Color     string
	TextColor string
	Angle     float64 // degrees, clockwise from the positive x axis

	// Children fan out across Arc degrees centered on the branch's own
	// angle, Distance away from the branch node.
	Arc           float64
	Distance      float64
	StepColor     string
	StepTextColor string
}

// DefaultBranches returns the three sector branches plus the disruption and
// overview branches, in drawing order.
func DefaultBranches() []Branch {
	return []Branch{
		{
			ID: string(dataset.Primary), Type: NodeSector, Sector: dataset.Primary,
			Label: "Primary", Sublabel: "Raw Materials",
			Color: "#059669", TextColor: "#ffffff", Angle: 200,
			Arc: 84, Distance: 190, StepColor: "#d1fae5", StepTextColor: "#065f46",
		},
		{
			ID: string(dataset.Secondary), Type: NodeSector, Sector: dataset.Secondary,
			Label: "Secondary", Sublabel: "Manufacturing",
			Color: "#d97706", TextColor: "#ffffff", Angle: 320,
			Arc: 104, Distance: 195, StepColor: "#fef3c7", StepTextColor: "#78350f",
		},
		{
			ID: string(dataset.Tertiary), Type: NodeSector, Sector: dataset.Tertiary,
			Label: "Tertiary", Sublabel: "Services",
			Color: "#e11d48", TextColor: "#ffffff", Angle: 90,
			Arc: 40, Distance: 185, StepColor: "#ffe4e6", StepTextColor: "#9f1239",
		},
		{
			ID: "impact", Type: NodeImpact,
			Label: "Disruption", Sublabel: "What If?",
			Color: "#7c3aed", TextColor: "#ffffff", Angle: 0,
		},
		{
			ID: "overview", Type: NodeOverview,
			Label: "Overview", Sublabel: "Interdependence",
			Color: "#0891b2", TextColor: "#ffffff", Angle: 150,
		},
	}
}
