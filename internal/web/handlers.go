package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"math"
	"net/http"
	"slices"
	"strconv"

	"github.com/msalah0e/chainmap/internal/panel"
	"github.com/msalah0e/chainmap/internal/scene"
	"github.com/msalah0e/chainmap/internal/session"
)

type pageData struct {
	Title    string
	SVG      template.HTML
	Panel    panel.Content
	State    session.PanelState
	Explored int
	Total    int
	Percent  int
	ExitMS   int64
	Formats  []string
}

type activateResponse struct {
	Node       string           `json:"node"`
	Type       string           `json:"type"`
	FirstVisit bool             `json:"first_visit"`
	Toggled    bool             `json:"toggled"`
	Expanded   bool             `json:"expanded"`
	Session    session.Snapshot `json:"session"`
}

type closeResponse struct {
	Token   uint64             `json:"token"`
	ExitMS  int64              `json:"exit_ms"`
	Panel   session.PanelState `json:"panel"`
	Pending bool               `json:"pending"`
}

type panelResponse struct {
	State   session.PanelState `json:"state"`
	Node    string             `json:"node,omitempty"`
	Kind    panel.Kind         `json:"kind,omitempty"`
	Content panel.Content      `json:"content,omitempty"`
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// done answers a state-changing request: JSON for scripts, a redirect back to
// the page for plain form posts.
func done(w http.ResponseWriter, r *http.Request, v any) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, v)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	e := s.session(w, r)
	e.mu.Lock()
	sc := scene.Build(s.graph, e.s, r.URL.Query().Get("hover"))
	content := panel.Dispatch(e.s.SelectedNode(), s.ds)
	state := e.s.PanelState()
	fraction := e.s.Fraction()
	e.mu.Unlock()

	var svg bytes.Buffer
	if err := scene.WriteSVG(&svg, sc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title:    s.graph.Center().Label,
		SVG:      template.HTML(svg.String()),
		Panel:    content,
		State:    state,
		Explored: sc.Explored,
		Total:    sc.Total,
		Percent:  int(math.Round(fraction * 100)),
		ExitMS:   s.opts.ExitTransition.Milliseconds(),
		Formats:  scene.Formats,
	}

	var out bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&out, "page", data); err != nil {
		s.log.Error("render page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = out.WriteTo(w)
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	e := s.session(w, r)

	e.mu.Lock()
	act, err := e.s.Activate(id)
	snap := e.s.Snapshot()
	e.mu.Unlock()

	switch {
	case errors.Is(err, session.ErrUnknownNode):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, session.ErrHiddenNode):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.RecordActivation(act.Node.Type.String())
	s.metrics.RecordPanel(string(session.PanelOpen))
	done(w, r, activateResponse{
		Node:       act.Node.ID,
		Type:       act.Node.Type.String(),
		FirstVisit: act.FirstVisit,
		Toggled:    act.Toggled,
		Expanded:   act.Expanded,
		Session:    snap,
	})
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	e := s.session(w, r)
	e.mu.Lock()
	before := e.s.PanelState()
	token := e.s.Close()
	state := e.s.PanelState()
	e.mu.Unlock()

	if before == session.PanelOpen {
		s.metrics.RecordPanel(string(session.PanelClosing))
	}
	done(w, r, closeResponse{
		Token:   token,
		ExitMS:  s.opts.ExitTransition.Milliseconds(),
		Panel:   state,
		Pending: state == session.PanelClosing,
	})
}

func (s *Server) handleSettled(w http.ResponseWriter, r *http.Request) {
	token, err := strconv.ParseUint(r.FormValue("token"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "token must be an unsigned integer")
		return
	}

	e := s.session(w, r)
	e.mu.Lock()
	settled := e.s.Settle(token)
	state := e.s.PanelState()
	e.mu.Unlock()

	if settled {
		s.metrics.RecordPanel(string(session.PanelClosed))
	}
	done(w, r, map[string]any{"settled": settled, "panel": state})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	e := s.session(w, r)
	e.mu.Lock()
	sc := scene.Build(s.graph, e.s, r.URL.Query().Get("hover"))
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	e := s.session(w, r)
	e.mu.Lock()
	n := e.s.SelectedNode()
	resp := panelResponse{State: e.s.PanelState()}
	if c := panel.Dispatch(n, s.ds); c != nil {
		resp.Node = n.ID
		resp.Kind = c.Kind()
		resp.Content = c
	}
	e.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleExport downloads the map in one of scene.Formats, drawn as the
// caller currently sees it.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	e := s.session(w, r)

	var out bytes.Buffer
	e.mu.Lock()
	err := scene.Export(&out, format, s.graph, e.s)
	e.mu.Unlock()
	label := format
	if !slices.Contains(scene.Formats, format) {
		label = "unknown"
	}
	s.metrics.RecordExport(label, err)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", scene.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="chainmap.`+format+`"`)
	_, _ = out.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"nodes":    s.graph.Len(),
		"faults":   len(s.ds.Faults),
		"sessions": s.Sessions(),
	})
}
