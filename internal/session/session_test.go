package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/chainmap/data"
	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/mindmap"
)

func testGraph(t testing.TB) *mindmap.Graph {
	t.Helper()
	ds, err := dataset.LoadFromFS(data.FS, ".")
	require.NoError(t, err)
	g, errs := mindmap.Layout(ds.Steps, mindmap.DefaultBranches(), mindmap.DefaultGeometry())
	require.Empty(t, errs)
	return g
}

func TestNew_InitialState(t *testing.T) {
	s := New(testGraph(t))

	assert.Equal(t, []string{"primary", "secondary", "tertiary"}, s.Expanded())
	assert.Empty(t, s.Selected())
	assert.Empty(t, s.Visited())
	assert.False(t, s.PanelOpen())
	assert.Equal(t, PanelClosed, s.PanelState())
	assert.Len(t, s.VisibleNodes(), 17)
	assert.Len(t, s.VisibleEdges(), 16)

	visited, total := s.Progress()
	assert.Equal(t, 0, visited)
	assert.Equal(t, 17, total)
}

func TestActivate_Step(t *testing.T) {
	s := New(testGraph(t))

	act, err := s.Activate("step-3")
	require.NoError(t, err)
	assert.True(t, act.FirstVisit)
	assert.False(t, act.Toggled)
	assert.Equal(t, "step-3", s.Selected())
	assert.True(t, s.IsVisited("step-3"))
	assert.True(t, s.PanelOpen())
	assert.Equal(t, []string{"primary", "secondary", "tertiary"}, s.Expanded())

	act, err = s.Activate("step-3")
	require.NoError(t, err)
	assert.False(t, act.FirstVisit)
	assert.Len(t, s.Visited(), 1)
}

func TestActivate_SectorTogglesAndSelects(t *testing.T) {
	s := New(testGraph(t))

	act, err := s.Activate("primary")
	require.NoError(t, err)
	assert.True(t, act.Toggled)
	assert.False(t, act.Expanded)
	assert.False(t, s.IsExpanded("primary"))
	assert.Equal(t, "primary", s.Selected())
	assert.True(t, s.IsVisited("primary"))
	assert.True(t, s.PanelOpen())

	for _, id := range []string{"step-1", "step-2", "step-3", "step-4"} {
		assert.False(t, s.IsVisible(id), id)
	}
	assert.True(t, s.IsVisible("step-5"))
	assert.Len(t, s.VisibleNodes(), 13)
	assert.Len(t, s.VisibleEdges(), 12)

	act, err = s.Activate("primary")
	require.NoError(t, err)
	assert.True(t, act.Expanded)
	assert.True(t, s.IsVisible("step-1"))
}

func TestActivate_CenterAndBranches(t *testing.T) {
	s := New(testGraph(t))

	for _, id := range []string{"center", "impact", "overview"} {
		act, err := s.Activate(id)
		require.NoError(t, err)
		assert.False(t, act.Toggled, id)
		assert.Equal(t, id, s.Selected())
		assert.True(t, s.PanelOpen())
	}
	assert.Equal(t, []string{"primary", "secondary", "tertiary"}, s.Expanded())
}

func TestActivate_Rejected(t *testing.T) {
	s := New(testGraph(t))

	_, err := s.Activate("nope")
	assert.True(t, errors.Is(err, ErrUnknownNode))

	_, err = s.Activate("tertiary")
	require.NoError(t, err)
	_, err = s.Activate("step-10")
	assert.True(t, errors.Is(err, ErrHiddenNode))
	assert.Equal(t, "tertiary", s.Selected())
	assert.False(t, s.IsVisited("step-10"))
}

func TestCollapseKeepsSelection(t *testing.T) {
	s := New(testGraph(t))

	_, err := s.Activate("step-2")
	require.NoError(t, err)
	// Collapsing via the sector selects the sector itself.
	_, err = s.Activate("primary")
	require.NoError(t, err)
	assert.Equal(t, "primary", s.Selected())
	assert.False(t, s.IsVisible("step-2"))
	assert.True(t, s.IsVisited("step-2"))
}

func TestCloseAndSettle(t *testing.T) {
	s := New(testGraph(t))

	assert.Zero(t, s.Close(), "closing a closed panel has nothing to settle")

	_, err := s.Activate("step-5")
	require.NoError(t, err)

	token := s.Close()
	assert.NotZero(t, token)
	assert.False(t, s.PanelOpen())
	assert.Equal(t, PanelClosing, s.PanelState())
	assert.Equal(t, "step-5", s.Selected(), "content is kept for the exit transition")
	assert.Equal(t, token, s.Close(), "a second close reuses the pending token")

	assert.False(t, s.Settle(token+1))
	assert.Equal(t, "step-5", s.Selected())

	assert.True(t, s.Settle(token))
	assert.Equal(t, PanelClosed, s.PanelState())
	assert.Empty(t, s.Selected())
	assert.Nil(t, s.SelectedNode())
	assert.True(t, s.IsVisited("step-5"))

	assert.False(t, s.Settle(token), "settling twice is a no-op")
}

func TestCloseThenReopen(t *testing.T) {
	s := New(testGraph(t))

	_, err := s.Activate("step-1")
	require.NoError(t, err)
	token := s.Close()

	_, err = s.Activate("step-6")
	require.NoError(t, err)
	assert.True(t, s.PanelOpen())
	assert.Equal(t, "step-6", s.Selected())

	// The first close's transition finishing late must not clear step-6.
	assert.False(t, s.Settle(token))
	assert.True(t, s.PanelOpen())
	assert.Equal(t, "step-6", s.Selected())
	assert.Equal(t, "step-6", s.SelectedNode().ID)

	next := s.Close()
	assert.Greater(t, next, token)
	assert.True(t, s.Settle(next))
	assert.Empty(t, s.Selected())
}

func TestRoundTrip(t *testing.T) {
	g := testGraph(t)
	s := New(g)

	before := s.VisibleNodes()
	_, err := s.Activate("primary")
	require.NoError(t, err)
	_, err = s.Activate("primary")
	require.NoError(t, err)

	assert.Equal(t, before, s.VisibleNodes())
	assert.Equal(t, []string{"primary", "secondary", "tertiary"}, s.Expanded())
	assert.Equal(t, []string{"primary"}, s.Visited())
	assert.Equal(t, "primary", s.Selected())
}

func TestFractionReachesOne(t *testing.T) {
	g := testGraph(t)
	s := New(g)

	for i, n := range g.Nodes() {
		assert.Less(t, s.Fraction(), 1.0, "before node %d", i)
		_, err := s.Activate(n.ID)
		require.NoError(t, err)
		// Re-expand sectors so their steps stay activatable.
		if n.Type == mindmap.NodeSector && !s.IsExpanded(n.ID) {
			_, err = s.Activate(n.ID)
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 1.0, s.Fraction())
}

func TestSnapshot(t *testing.T) {
	s := New(testGraph(t))
	_, err := s.Activate("impact")
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "impact", snap.Selected)
	assert.Equal(t, PanelOpen, snap.Panel)
	assert.Equal(t, 1, snap.Explored)
	assert.Equal(t, 17, snap.Total)
	assert.Equal(t, []string{"impact"}, snap.Visited)
}
