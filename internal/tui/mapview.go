// Package tui holds the interactive terminal front ends: the mind map
// explorer and the scrolling article.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/panel"
	"github.com/msalah0e/chainmap/internal/scene"
	"github.com/msalah0e/chainmap/internal/session"
)

const (
	panelWidth   = 46
	headerHeight = 2
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#f9fafb"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	panelBox = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)

	closingBox = panelBox.
			BorderForeground(lipgloss.Color("#1f2937")).
			Faint(true)
)

// settleMsg reports that the panel exit transition started by token ended.
type settleMsg struct{ token uint64 }

// MapModel is the bubbletea model of the mind map explorer.
type MapModel struct {
	ds    *dataset.Dataset
	graph *mindmap.Graph
	sess  *session.Session

	focus   string
	hovered string
	exit    time.Duration
	message string

	keys     mapKeyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int
	grid     scene.Grid
	log      *slog.Logger
}

// MapOption configures a MapModel.
type MapOption func(*MapModel)

// WithExitTransition sets how long the panel takes to animate closed.
func WithExitTransition(d time.Duration) MapOption {
	return func(m *MapModel) { m.exit = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) MapOption {
	return func(m *MapModel) { m.log = l }
}

// NewMap returns the explorer over g with a fresh session.
func NewMap(ds *dataset.Dataset, g *mindmap.Graph, opts ...MapOption) MapModel {
	m := MapModel{
		ds:       ds,
		graph:    g,
		focus:    mindmap.CenterID,
		exit:     350 * time.Millisecond,
		keys:     mapKeys,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:    120,
		height:   40,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.sess = session.New(g, session.WithLogger(m.log))
	m.relayout()
	return m
}

// Session exposes the view state, mainly for tests.
func (m MapModel) Session() *session.Session { return m.sess }

// Focus returns the id of the keyboard-focused node.
func (m MapModel) Focus() string { return m.focus }

func (m MapModel) Init() tea.Cmd { return nil }

func (m *MapModel) mapSize() (int, int) {
	cols := m.width
	if m.sess.PanelState() != session.PanelClosed && m.width >= panelWidth+40 {
		cols = m.width - panelWidth
	}
	rows := m.height - headerHeight - 2
	return max(cols, 20), max(rows, 8)
}

func (m *MapModel) relayout() {
	cols, rows := m.mapSize()
	m.grid = scene.RenderGrid(scene.Build(m.graph, m.sess, m.hovered), cols, rows)
	m.progress.Width = min(30, max(10, m.width/4))
}

func (m MapModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case settleMsg:
		if m.sess.Settle(msg.token) {
			m.log.Debug("panel settled", "token", msg.token)
		}

	case tea.MouseMsg:
		col, row := msg.X, msg.Y-headerHeight
		id := m.grid.NodeAt(col, row)
		switch {
		case msg.Action == tea.MouseActionMotion:
			m.hovered = id
		case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft && id != "":
			m.focus = id
			m.activate(id)
		}

	case tea.KeyMsg:
		m.message = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Tab):
			m.cycle(1)
		case key.Matches(msg, m.keys.ShiftTab):
			m.cycle(-1)
		case key.Matches(msg, m.keys.Up):
			m.move(0, -1)
		case key.Matches(msg, m.keys.Down):
			m.move(0, 1)
		case key.Matches(msg, m.keys.Left):
			m.move(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.move(1, 0)
		case key.Matches(msg, m.keys.Activate):
			m.activate(m.focus)
		case key.Matches(msg, m.keys.Close):
			cmd = m.close()
		}
	}

	m.relayout()
	return m, cmd
}

func (m *MapModel) activate(id string) {
	act, err := m.sess.Activate(id)
	switch {
	case errors.Is(err, session.ErrHiddenNode):
		m.message = "that step is folded away; open its sector first"
		return
	case err != nil:
		m.message = err.Error()
		return
	}
	m.log.Debug("activated", "node", id, "first_visit", act.FirstVisit, "toggled", act.Toggled)
	if !m.sess.IsVisible(m.focus) {
		m.focus = id
	}
}

// close hides the panel and schedules the settle that clears the selection
// once the exit transition has run.
func (m *MapModel) close() tea.Cmd {
	token := m.sess.Close()
	if token == 0 {
		return nil
	}
	if m.exit <= 0 {
		return func() tea.Msg { return settleMsg{token} }
	}
	return tea.Tick(m.exit, func(time.Time) tea.Msg { return settleMsg{token} })
}

// cycle moves focus through the visible nodes in graph order.
func (m *MapModel) cycle(dir int) {
	nodes := m.sess.VisibleNodes()
	if len(nodes) == 0 {
		return
	}
	idx := 0
	for i, n := range nodes {
		if n.ID == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(nodes)) % len(nodes)
	m.focus = nodes[idx].ID
}

// move shifts focus to the nearest visible node in direction (dx, dy),
// preferring nodes close to that axis.
func (m *MapModel) move(dx, dy float64) {
	from := m.graph.Node(m.focus)
	if from == nil {
		m.focus = mindmap.CenterID
		return
	}
	best, bestScore := "", math.Inf(1)
	for _, n := range m.sess.VisibleNodes() {
		if n.ID == from.ID {
			continue
		}
		vx, vy := n.Position.X-from.Position.X, n.Position.Y-from.Position.Y
		along := vx*dx + vy*dy
		if along <= 0 {
			continue
		}
		across := math.Abs(vx*dy - vy*dx)
		if score := along + 2*across; score < bestScore {
			best, bestScore = n.ID, score
		}
	}
	if best != "" {
		m.focus = best
	}
}

func (m MapModel) View() string {
	var b strings.Builder

	explored, total := m.sess.Progress()
	title := titleStyle.Render(m.graph.Center().Label + " · supply chain")
	bar := m.progress.ViewAs(m.sess.Fraction())
	count := countStyle.Render(fmt.Sprintf("%d / %d explored", explored, total))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", bar, " ", count))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
	}
	b.WriteString("\n")

	canvas := m.renderGrid()
	if box := m.renderPanel(); box != "" {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, box)
	}
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m MapModel) renderPanel() string {
	state := m.sess.PanelState()
	if state == session.PanelClosed {
		return ""
	}
	content := panel.Dispatch(m.sess.SelectedNode(), m.ds)
	if content == nil {
		return ""
	}
	_, rows := m.mapSize()
	box := panelBox
	if state == session.PanelClosing {
		box = closingBox
	}
	return box.Width(panelWidth - 2).MaxHeight(rows).Render(panel.Render(content, panelWidth-4))
}

func (m MapModel) renderGrid() string {
	var b strings.Builder
	for r := 0; r < m.grid.Rows; r++ {
		var run strings.Builder
		var cur lipgloss.Style
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(cur.Render(run.String()))
				run.Reset()
			}
		}
		var prevKey string
		for c := 0; c < m.grid.Cols; c++ {
			cell := m.grid.At(c, r)
			focused := cell.NodeID != "" && cell.NodeID == m.focus
			k := fmt.Sprintf("%s|%t|%t", cell.Color, focused, cell.NodeID != "")
			if k != prevKey {
				flush()
				cur = lipgloss.NewStyle()
				if cell.Color != "" {
					cur = cur.Foreground(lipgloss.Color(cell.Color))
				}
				if cell.NodeID != "" {
					cur = cur.Bold(true)
				}
				if focused {
					cur = cur.Reverse(true)
				}
				prevKey = k
			}
			run.WriteRune(cell.Rune)
		}
		flush()
		if r < m.grid.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
