// Package article arranges the dataset into the ordered sections of the
// long-form scrolling article.
package article

import (
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/msalah0e/chainmap/internal/dataset"
)

// CounterDuration is how long a headline counter takes to reach its value.
const CounterDuration = 1800 * time.Millisecond

// Kind is the template a section is drawn with.
type Kind string

const (
	KindHero       Kind = "hero"
	KindCounters   Kind = "counters"
	KindOverview   Kind = "overview"
	KindFlow       Kind = "flow"
	KindSector     Kind = "sector"
	KindTimeline   Kind = "timeline"
	KindTerms      Kind = "terms"
	KindWorld      Kind = "world"
	KindSearch     Kind = "search"
	KindDisruption Kind = "disruption"
)

// Section is one block of the article. Only the fields its Kind uses are set.
type Section struct {
	ID    string
	Kind  Kind
	Title string

	Flow    *dataset.Flow
	Sector  dataset.Sector
	Summary *dataset.SectorSummary
	Steps   []dataset.Step
}

// Build lays out the article for ds: hero, counters, overview, the three
// sectors with flow connectors before each, timeline, key terms, world map,
// search hint and the disruption scenario. Flows are consumed in order, one
// per connector slot; missing flows leave their slot out. Empty optional
// sections are skipped.
func Build(ds *dataset.Dataset) []Section {
	var out []Section
	flows := ds.Flows
	connector := func() {
		if len(flows) == 0 {
			return
		}
		f := flows[0]
		flows = flows[1:]
		out = append(out, Section{
			ID:    "flow-" + strconv.Itoa(len(ds.Flows)-len(flows)),
			Kind:  KindFlow,
			Title: f.Label,
			Flow:  &f,
		})
	}

	out = append(out, Section{ID: "hero", Kind: KindHero, Title: ds.Hero.Title})
	if len(ds.Counters) > 0 {
		out = append(out, Section{ID: "counters", Kind: KindCounters, Title: "By the Numbers"})
	}
	out = append(out, Section{ID: "overview", Kind: KindOverview, Title: "Overview"})

	for _, s := range dataset.Sectors() {
		steps := ds.StepsBySector(s)
		if len(steps) == 0 {
			continue
		}
		connector()
		sec := Section{ID: "sector-" + string(s), Kind: KindSector, Title: s.Title() + " Sector", Sector: s, Steps: steps}
		if sum := ds.Summary(s); sum != nil {
			sec.Summary = sum
			sec.Title = sum.Label
		}
		out = append(out, sec)
	}

	if len(ds.Timeline) > 0 {
		out = append(out, Section{ID: "timeline", Kind: KindTimeline, Title: "Production Timeline"})
	}
	if len(ds.Terms) > 0 {
		out = append(out, Section{ID: "terms", Kind: KindTerms, Title: "Key Terms"})
	}
	if len(ds.Countries) > 0 {
		out = append(out, Section{ID: "world-map", Kind: KindWorld, Title: "A Global Web of Dependence"})
	}
	out = append(out, Section{ID: "search", Kind: KindSearch, Title: "Search the Supply Chain"})
	connector()
	out = append(out, Section{ID: "disruption", Kind: KindDisruption, Title: ds.Impact.Title})
	return out
}

// CounterValue is the value a counter shows elapsed into an animation of the
// given duration: an ease-out cubic from 0 to target, floored, reaching
// target exactly once the duration has passed.
func CounterValue(target int, elapsed, duration time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	if duration <= 0 || elapsed >= duration {
		return target
	}
	p := float64(elapsed) / float64(duration)
	eased := 1 - math.Pow(1-p, 3)
	return int(math.Floor(eased * float64(target)))
}

// FormatCounter renders v with the counter's prefix and suffix and digit
// grouping ("40,000+").
func FormatCounter(c dataset.Counter, v int) string {
	return c.Prefix + humanize.Comma(int64(v)) + c.Suffix
}
