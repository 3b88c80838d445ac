package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msalah0e/chainmap/internal/article"
	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/reveal"
)

const frameInterval = 50 * time.Millisecond

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// ArticleModel is the bubbletea model of the scrolling article. Sections
// stay dim until they scroll into view.
type ArticleModel struct {
	ds       *dataset.Dataset
	sections []article.Section
	tracker  *reveal.Tracker
	subs     []*reveal.Subscription
	revealed map[string]time.Time
	ready    bool
	now      func() time.Time

	viewport viewport.Model
	progress progress.Model
	help     help.Model
	keys     articleKeyMap
	width    int
}

// NewArticle returns the article over ds; threshold is the visible fraction
// at which a section counts as seen.
func NewArticle(ds *dataset.Dataset, threshold float64) ArticleModel {
	return ArticleModel{
		ds:       ds,
		sections: article.Build(ds),
		tracker:  reveal.NewTracker(threshold),
		revealed: make(map[string]time.Time),
		now:      time.Now,
		progress: progress.New(progress.WithSolidFill("#14b8a6"), progress.WithoutPercentage()),
		help:     help.New(),
		keys:     articleKeys,
	}
}

// Revealed reports whether section id has been seen.
func (m ArticleModel) Revealed(id string) bool {
	_, ok := m.revealed[id]
	return ok
}

func (m ArticleModel) Init() tea.Cmd { return nil }

func (m ArticleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = msg.Width
		h := max(msg.Height-2, 3)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
			m.observe()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}

	case frameMsg:
		// counters are redrawn below

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.Bottom):
			m.viewport.GotoBottom()
		}
	}

	if !m.ready {
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.refresh()
	if len(m.tracker.Scroll(m.viewport.YOffset, m.viewport.Height)) > 0 {
		m.refresh()
	}
	if m.animating() {
		cmds = append(cmds, frameCmd())
	}
	return m, tea.Batch(cmds...)
}

// observe registers every section with the tracker.
func (m *ArticleModel) observe() {
	m.cancel()
	revealed, now := m.revealed, m.now
	for _, sec := range m.sections {
		m.subs = append(m.subs, m.tracker.Observe(reveal.Element{ID: sec.ID}, func(id string) {
			revealed[id] = now()
		}))
	}
}

func (m *ArticleModel) cancel() {
	for _, s := range m.subs {
		s.Cancel()
	}
	m.subs = nil
}

// refresh re-renders the document and moves pending elements to their new
// spans.
func (m *ArticleModel) refresh() {
	var b strings.Builder
	line := 0
	now := m.now()
	for i, sec := range m.sections {
		at, ok := m.revealed[sec.ID]
		text := article.Render(sec, m.ds, article.View{
			Width:    m.width - 2,
			Revealed: ok,
			Elapsed:  now.Sub(at),
		})
		height := lipgloss.Height(text)
		m.tracker.Move(sec.ID, line, height)

		b.WriteString(text)
		line += height
		if i < len(m.sections)-1 {
			b.WriteString("\n\n")
			line++
		}
	}
	m.viewport.SetContent(b.String())
}

func (m ArticleModel) animating() bool {
	at, ok := m.revealed["counters"]
	return ok && m.now().Sub(at) < article.CounterDuration
}

func (m ArticleModel) View() string {
	if !m.ready {
		return "loading…"
	}
	return m.progress.ViewAs(m.viewport.ScrollPercent()) + "\n" +
		m.viewport.View() + "\n" +
		m.help.View(m.keys)
}
