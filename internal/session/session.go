// Package session holds the runtime view state of one mind-map reader:
// expanded branches, the selection, visited nodes and the panel lifecycle.
// A Session is not safe for concurrent use; callers serialize access.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qmuntal/stateless"

	"github.com/msalah0e/chainmap/internal/mindmap"
)

// PanelState is the detail panel lifecycle.
type PanelState string

const (
	PanelClosed PanelState = "closed"
	// PanelClosing means the panel is hidden but its exit transition has not
	// reported completion; the last selection is still held for rendering.
	PanelClosing PanelState = "closing"
	PanelOpen    PanelState = "open"
)

type trigger string

const (
	triggerOpen   trigger = "open"
	triggerClose  trigger = "close"
	triggerSettle trigger = "settle"
)

var (
	// ErrUnknownNode is returned when activating an id that is not in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrHiddenNode is returned when activating a step under a collapsed branch.
	ErrHiddenNode = errors.New("node is not visible")
)

// Activation describes the effect of one Activate call.
type Activation struct {
	Node       *mindmap.Node
	FirstVisit bool
	Toggled    bool // a sector branch changed expansion
	Expanded   bool // expansion after the toggle
}

// Session is the mutable state layered over an immutable graph.
type Session struct {
	graph    *mindmap.Graph
	expanded map[string]bool
	selected string
	visited  map[string]bool
	panel    *stateless.StateMachine
	closeGen uint64
	logger   *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger logs state transitions at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New starts a session with every sector expanded, nothing selected or
// visited, and the panel closed.
func New(g *mindmap.Graph, opts ...Option) *Session {
	s := &Session{
		graph:    g,
		expanded: make(map[string]bool),
		visited:  make(map[string]bool),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, id := range g.SectorIDs() {
		s.expanded[id] = true
	}

	s.panel = stateless.NewStateMachine(PanelClosed)
	s.panel.Configure(PanelClosed).
		OnEntryFrom(triggerSettle, s.clearSelection).
		Permit(triggerOpen, PanelOpen).
		Ignore(triggerClose).
		Ignore(triggerSettle)

	s.panel.Configure(PanelOpen).
		PermitReentry(triggerOpen).
		Permit(triggerClose, PanelClosing).
		Ignore(triggerSettle)

	s.panel.Configure(PanelClosing).
		Permit(triggerOpen, PanelOpen).
		Permit(triggerSettle, PanelClosed).
		Ignore(triggerClose)

	return s
}

func (s *Session) clearSelection(_ context.Context, _ ...any) error {
	s.logger.Debug("selection cleared", "node", s.selected)
	s.selected = ""
	return nil
}

func (s *Session) fire(t trigger) {
	if err := s.panel.Fire(t); err != nil {
		// Every trigger is either permitted or ignored in every state.
		panic(fmt.Sprintf("session: panel %s: %v", t, err))
	}
}

// Graph returns the graph the session runs over.
func (s *Session) Graph() *mindmap.Graph { return s.graph }

// Activate applies a user activation of node id. Sector nodes toggle their
// expansion; every node type is then selected, marked visited and shown in
// an opened panel.
func (s *Session) Activate(id string) (Activation, error) {
	n := s.graph.Node(id)
	if n == nil {
		return Activation{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	if !s.IsVisible(id) {
		return Activation{}, fmt.Errorf("%w: %s", ErrHiddenNode, id)
	}

	act := Activation{Node: n}
	if n.Type == mindmap.NodeSector {
		act.Toggled = true
		act.Expanded = !s.expanded[id]
		if act.Expanded {
			s.expanded[id] = true
		} else {
			delete(s.expanded, id)
		}
	}

	act.FirstVisit = !s.visited[id]
	s.visited[id] = true
	s.selected = id
	s.fire(triggerOpen)

	s.logger.Debug("node activated", "node", id, "type", n.Type.String(), "first_visit", act.FirstVisit, "toggled", act.Toggled)
	return act, nil
}

// Close hides the panel and returns the token that Settle needs once the
// exit transition is done. Closing an already hidden panel returns the
// pending token, or 0 when there is nothing to settle.
func (s *Session) Close() uint64 {
	switch s.PanelState() {
	case PanelOpen:
		s.closeGen++
		s.fire(triggerClose)
		s.logger.Debug("panel closing", "token", s.closeGen)
		return s.closeGen
	case PanelClosing:
		return s.closeGen
	default:
		return 0
	}
}

// Settle reports that the exit transition started by the Close that returned
// token has finished, and drops the selection. A token from an earlier close,
// or one that arrives after the panel was reopened, is ignored.
func (s *Session) Settle(token uint64) bool {
	if token == 0 || token != s.closeGen || s.PanelState() != PanelClosing {
		return false
	}
	s.fire(triggerSettle)
	return true
}

// PanelState returns the current panel lifecycle state.
func (s *Session) PanelState() PanelState {
	return s.panel.MustState().(PanelState)
}

// PanelOpen reports whether the panel is shown.
func (s *Session) PanelOpen() bool { return s.PanelState() == PanelOpen }

// Selected returns the selected node id, or "" when nothing is selected.
func (s *Session) Selected() string { return s.selected }

// SelectedNode returns the selected node, or nil.
func (s *Session) SelectedNode() *mindmap.Node {
	if s.selected == "" {
		return nil
	}
	return s.graph.Node(s.selected)
}

// IsExpanded reports whether a sector branch shows its steps.
func (s *Session) IsExpanded(id string) bool { return s.expanded[id] }

// Expanded returns the expanded sector ids in layout order.
func (s *Session) Expanded() []string {
	var ids []string
	for _, id := range s.graph.SectorIDs() {
		if s.expanded[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsVisited reports whether id was activated during this session.
func (s *Session) IsVisited(id string) bool { return s.visited[id] }

// Visited returns the visited ids in layout order.
func (s *Session) Visited() []string {
	var ids []string
	for _, n := range s.graph.Nodes() {
		if s.visited[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// IsVisible reports whether id is part of the visible set. Steps are visible
// while their parent branch is expanded; every other node always is.
func (s *Session) IsVisible(id string) bool {
	n := s.graph.Node(id)
	if n == nil {
		return false
	}
	if n.Type == mindmap.NodeStep {
		return s.expanded[n.ParentID]
	}
	return true
}

// VisibleNodes returns the visible nodes in layout order.
func (s *Session) VisibleNodes() []mindmap.Node {
	var out []mindmap.Node
	for _, n := range s.graph.Nodes() {
		if s.IsVisible(n.ID) {
			out = append(out, n)
		}
	}
	return out
}

// VisibleEdges returns the edges whose child endpoint is visible.
func (s *Session) VisibleEdges() []mindmap.Edge {
	var out []mindmap.Edge
	for _, e := range s.graph.Edges() {
		if s.IsVisible(e.To) {
			out = append(out, e)
		}
	}
	return out
}

// Progress returns how many nodes were visited out of the total.
func (s *Session) Progress() (visited, total int) {
	return len(s.visited), s.graph.Len()
}

// Fraction returns the explored share of the map in [0, 1].
func (s *Session) Fraction() float64 {
	visited, total := s.Progress()
	if total == 0 {
		return 0
	}
	return float64(visited) / float64(total)
}

// Snapshot is a serializable view of the session.
type Snapshot struct {
	Expanded []string   `json:"expanded"`
	Selected string     `json:"selected,omitempty"`
	Visited  []string   `json:"visited"`
	Panel    PanelState `json:"panel"`
	Explored int        `json:"explored"`
	Total    int        `json:"total"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	visited, total := s.Progress()
	return Snapshot{
		Expanded: s.Expanded(),
		Selected: s.selected,
		Visited:  s.Visited(),
		Panel:    s.PanelState(),
		Explored: visited,
		Total:    total,
	}
}
