// Package panel picks and builds the detail-panel content for a selected
// mind-map node.
package panel

import (
	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/mindmap"
)

// Kind names one of the fixed panel templates.
type Kind string

const (
	KindStep     Kind = "step"
	KindImpact   Kind = "impact"
	KindOverview Kind = "overview"
	KindSector   Kind = "sector"
)

// Content is the data for one panel template. The set of implementations is
// closed: StepContent, ImpactContent, OverviewContent and SectorContent.
type Content interface {
	Kind() Kind
	sealed()
}

// ResourceGroup is every resource of one kind, in step order.
type ResourceGroup struct {
	Kind   dataset.ResourceKind `json:"kind"`
	Label  string               `json:"label"`
	Labels []string             `json:"items"`
}

// StepContent drives the step template.
type StepContent struct {
	Step       dataset.Step    `json:"step"`
	Sector     string          `json:"sector_title"`
	Groups     []ResourceGroup `json:"resource_groups"`
	Businesses []string        `json:"businesses"`
}

// ConsequenceCard is one disruption consequence with a resolved style.
type ConsequenceCard struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// ImpactContent drives the disruption template.
type ImpactContent struct {
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle"`
	Disrupted string            `json:"disrupted"`
	Cards     []ConsequenceCard `json:"consequences"`
	Takeaway  string            `json:"takeaway"`
}

// SectorCount is the number of steps in one sector.
type SectorCount struct {
	Sector dataset.Sector `json:"sector"`
	Title  string         `json:"title"`
	Theme  string         `json:"theme"`
	Steps  int            `json:"steps"`
}

// OverviewContent drives the overview template shared by the center and
// overview nodes.
type OverviewContent struct {
	Title     string                  `json:"title"`
	Subtitle  string                  `json:"subtitle"`
	Counts    []SectorCount           `json:"counts"`
	Summaries []dataset.SectorSummary `json:"summaries"`
}

// SectorContent drives the sector-detail template.
type SectorContent struct {
	Summary dataset.SectorSummary `json:"summary"`
	Steps   []dataset.Step        `json:"steps"`
}

func (StepContent) Kind() Kind     { return KindStep }
func (ImpactContent) Kind() Kind   { return KindImpact }
func (OverviewContent) Kind() Kind { return KindOverview }
func (SectorContent) Kind() Kind   { return KindSector }

func (StepContent) sealed()     {}
func (ImpactContent) sealed()   {}
func (OverviewContent) sealed() {}
func (SectorContent) sealed()   {}

// Dispatch returns the panel content for n, or nil when nothing should be
// rendered: no selection, a step node without payload, or a sector without
// a summary. It reads ds and never modifies it.
func Dispatch(n *mindmap.Node, ds *dataset.Dataset) Content {
	if n == nil || ds == nil {
		return nil
	}
	switch n.Type {
	case mindmap.NodeStep:
		if n.Step == nil {
			return nil
		}
		return ForStep(*n.Step)
	case mindmap.NodeImpact:
		return ForImpact(ds.Impact)
	case mindmap.NodeOverview, mindmap.NodeCenter:
		return ForOverview(ds)
	case mindmap.NodeSector:
		sum := ds.Summary(n.Sector)
		if sum == nil {
			return nil
		}
		return SectorContent{Summary: *sum, Steps: ds.StepsBySector(n.Sector)}
	default:
		return nil
	}
}

// ForStep builds the step template for st.
func ForStep(st dataset.Step) StepContent {
	return StepContent{
		Step:       st,
		Sector:     st.Sector.Title(),
		Groups:     GroupResources(st.Resources),
		Businesses: st.Businesses,
	}
}

// GroupResources buckets resources by kind in badge order. Unknown kinds
// land in a trailing "Unknown" group instead of being dropped.
func GroupResources(rs []dataset.Resource) []ResourceGroup {
	order := append(dataset.ResourceKinds(), dataset.Unknown)
	buckets := make(map[dataset.ResourceKind][]string, len(order))
	for _, r := range rs {
		k := r.Kind.Normalize()
		buckets[k] = append(buckets[k], r.Label)
	}
	var groups []ResourceGroup
	for _, k := range order {
		if len(buckets[k]) == 0 {
			continue
		}
		groups = append(groups, ResourceGroup{Kind: k, Label: k.Label(), Labels: buckets[k]})
	}
	return groups
}

// ForImpact builds the disruption template. Unknown consequence styles
// resolve to StyleNeutral.
func ForImpact(sc dataset.ImpactScenario) ImpactContent {
	c := ImpactContent{
		Title:     sc.Title,
		Subtitle:  sc.Subtitle,
		Disrupted: sc.Disrupted,
		Takeaway:  sc.Takeaway,
	}
	for _, cq := range sc.Consequences {
		c.Cards = append(c.Cards, ConsequenceCard{Title: cq.Title, Text: cq.Text, Style: ParseStyle(cq.Style)})
	}
	return c
}

// ForOverview builds the overview template from the hero and sector counts.
func ForOverview(ds *dataset.Dataset) OverviewContent {
	counts := ds.CountBySector()
	c := OverviewContent{
		Title:     ds.Hero.Title,
		Subtitle:  ds.Hero.Subtitle,
		Summaries: ds.Summaries,
	}
	for _, s := range dataset.Sectors() {
		c.Counts = append(c.Counts, SectorCount{Sector: s, Title: s.Title(), Theme: s.Theme(), Steps: counts[s]})
	}
	return c
}
