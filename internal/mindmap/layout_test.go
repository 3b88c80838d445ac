package mindmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/chainmap/data"
	"github.com/msalah0e/chainmap/internal/dataset"
)

func bundled(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.LoadFromFS(data.FS, ".")
	require.NoError(t, err)
	return ds
}

func bundledGraph(t *testing.T) *Graph {
	t.Helper()
	g, errs := Layout(bundled(t).Steps, DefaultBranches(), DefaultGeometry())
	require.Empty(t, errs)
	return g
}

func TestLayout_Bundled(t *testing.T) {
	g := bundledGraph(t)

	assert.Equal(t, 17, g.Len())
	assert.Len(t, g.Edges(), 16)
	assert.Equal(t, []string{"primary", "secondary", "tertiary"}, g.SectorIDs())
	assert.NoError(t, g.Validate())

	center := g.Center()
	require.NotNil(t, center)
	assert.Equal(t, Point{X: 700, Y: 450}, center.Position)
	assert.Equal(t, 72.0, center.Radius)
	assert.Empty(t, center.ParentID)

	assert.Len(t, g.Children("primary"), 4)
	assert.Len(t, g.Children("secondary"), 5)
	assert.Len(t, g.Children("tertiary"), 2)
	assert.Empty(t, g.Children("impact"))
	assert.Equal(t, []string{"step-5", "step-6", "step-7", "step-8", "step-9"}, g.Children("secondary"))
}

func TestLayout_Positions(t *testing.T) {
	g := bundledGraph(t)

	primary := g.Node("primary")
	require.NotNil(t, primary)
	assert.InDelta(t, 483.87, primary.Position.X, 0.01)
	assert.InDelta(t, 371.34, primary.Position.Y, 0.01)
	assert.Equal(t, 52.0, primary.Radius)

	tertiary := g.Node("tertiary")
	assert.InDelta(t, 700, tertiary.Position.X, 1e-9)
	assert.InDelta(t, 680, tertiary.Position.Y, 1e-9)

	// Two tertiary children fan 40 degrees around the 90 degree branch.
	s10, s11 := g.Node("step-10"), g.Node("step-11")
	assert.InDelta(t, 763.27, s10.Position.X, 0.01)
	assert.InDelta(t, 853.84, s10.Position.Y, 0.01)
	assert.InDelta(t, 636.73, s11.Position.X, 0.01)
	assert.InDelta(t, 853.84, s11.Position.Y, 0.01)
	assert.Equal(t, 38.0, s10.Radius)

	overview := g.Node("overview")
	assert.Equal(t, NodeOverview, overview.Type)
	impact := g.Node("impact")
	assert.InDelta(t, 930, impact.Position.X, 1e-9)
	assert.InDelta(t, 450, impact.Position.Y, 1e-9)
}

func TestLayout_StepNodes(t *testing.T) {
	g := bundledGraph(t)

	n := g.Node(StepID(1))
	require.NotNil(t, n)
	require.NotNil(t, n.Step)
	assert.Equal(t, "primary", n.ParentID)
	assert.Equal(t, "Lithium Mining", n.Label)
	assert.Equal(t, "🇨🇱🇦🇺 Atacama Desert", n.Sublabel)
	assert.Equal(t, "#d1fae5", n.Color)
	assert.Equal(t, "#065f46", n.TextColor)
	assert.Equal(t, "primary", g.Parent(n.ID).ID)
	assert.Nil(t, g.Parent(CenterID))
	assert.Nil(t, g.Node("step-99"))
}

func TestLayout_Edges(t *testing.T) {
	g := bundledGraph(t)

	for _, e := range g.Edges() {
		child := g.Node(e.To)
		require.NotNil(t, child)
		assert.Equal(t, child.ParentID, e.From)
		assert.Equal(t, g.Node(e.From).Color, e.Color)
		assert.Equal(t, StyleFor(child.Type), e.Style)
	}

	step := StyleFor(NodeStep)
	solid := StyleFor(NodeSector)
	assert.Less(t, step.Width, solid.Width)
	assert.Less(t, step.Opacity, solid.Opacity)
	assert.NotEmpty(t, step.Dash)
	assert.Empty(t, solid.Dash)
	assert.Equal(t, solid, StyleFor(NodeImpact))
}

func TestLayout_UnknownSectorIsolated(t *testing.T) {
	steps := []dataset.Step{
		{Number: 1, Title: "A", Location: "X", Sector: dataset.Primary},
		{Number: 2, Title: "B", Location: "Y", Sector: "quaternary"},
		{Number: 3, Title: "C", Location: "Z", Sector: dataset.Tertiary},
	}
	g, errs := Layout(steps, DefaultBranches(), DefaultGeometry())

	require.Len(t, errs, 1)
	var le *LayoutError
	require.True(t, errors.As(errs[0], &le))
	assert.Equal(t, 2, le.StepNumber)
	assert.Equal(t, dataset.Sector("quaternary"), le.Sector)
	assert.Contains(t, le.Error(), "step 2")

	assert.NotNil(t, g.Node("step-1"))
	assert.Nil(t, g.Node("step-2"))
	assert.NotNil(t, g.Node("step-3"))
	assert.Equal(t, 8, g.Len())
	assert.NoError(t, g.Validate())
}

func TestLayout_SingleChildSitsOnBranchAxis(t *testing.T) {
	steps := []dataset.Step{{Number: 7, Title: "Only", Location: "Here", Sector: dataset.Tertiary}}
	g, errs := Layout(steps, DefaultBranches(), DefaultGeometry())
	require.Empty(t, errs)

	n := g.Node("step-7")
	assert.InDelta(t, 700, n.Position.X, 1e-9)
	assert.InDelta(t, 680+185, n.Position.Y, 1e-9)
}

func TestLayout_BadBranches(t *testing.T) {
	branches := append(DefaultBranches(),
		Branch{ID: "primary", Type: NodeSector, Sector: dataset.Secondary},
		Branch{ID: "extra", Type: NodeSector, Sector: dataset.Primary},
		Branch{ID: "leaf", Type: NodeStep},
	)
	g, errs := Layout(nil, branches, DefaultGeometry())
	assert.Len(t, errs, 3)
	assert.Equal(t, 6, g.Len())
	assert.NoError(t, g.Validate())
}

func TestLayout_DuplicateStepNumbers(t *testing.T) {
	steps := []dataset.Step{
		{Number: 1, Title: "A", Sector: dataset.Primary},
		{Number: 1, Title: "A again", Sector: dataset.Secondary},
	}
	g, errs := Layout(steps, DefaultBranches(), DefaultGeometry())
	assert.Len(t, errs, 1)
	assert.Equal(t, "A", g.Node("step-1").Label)
}

func TestNodeType(t *testing.T) {
	for _, nt := range []NodeType{NodeCenter, NodeSector, NodeStep, NodeImpact, NodeOverview} {
		parsed, err := ParseNodeType(nt.String())
		require.NoError(t, err)
		assert.Equal(t, nt, parsed)
	}
	_, err := ParseNodeType("intro")
	assert.Error(t, err)
	assert.True(t, strings.HasPrefix(NodeType(42).String(), "NodeType("))
}
