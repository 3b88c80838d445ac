// Package dataset holds the immutable supply-chain content: steps, the
// disruption scenario, sector summaries and the article extras.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset is the read-only content every view consumes.
type Dataset struct {
	Steps     []Step
	Impact    ImpactScenario
	Summaries []SectorSummary

	Hero      Hero
	Counters  []Counter
	Timeline  []TimelineEvent
	Terms     []Term
	Flows     []Flow
	Hub       string
	Countries []Country

	// Faults lists every isolated data problem found while building the set.
	Faults []*Fault

	byNumber map[int]int
	bySector map[Sector]int
}

// New builds a dataset from the three core collections. Steps are ordered by
// ascending step number. Records that break the data contract are reported in
// Faults; duplicates are dropped, unmapped categories are kept so views can
// render them with a fallback style.
func New(steps []Step, impact ImpactScenario, summaries []SectorSummary) *Dataset {
	d := &Dataset{Impact: impact}
	d.setSteps(steps)
	d.setSummaries(summaries)
	d.Faults = append(d.Faults, checkRecord("impact", impact)...)
	return d
}

func (d *Dataset) setSteps(steps []Step) {
	sorted := make([]Step, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	d.byNumber = make(map[int]int, len(sorted))
	for _, s := range sorted {
		record := fmt.Sprintf("step %d", s.Number)
		if s.Number < 1 {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "Number", Reason: "must be a positive integer", Dropped: true})
			continue
		}
		if _, dup := d.byNumber[s.Number]; dup {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "Number", Reason: "duplicate step number", Dropped: true})
			continue
		}
		d.Faults = append(d.Faults, checkRecord(record, s)...)
		d.byNumber[s.Number] = len(d.Steps)
		d.Steps = append(d.Steps, s)
	}
}

func (d *Dataset) setSummaries(summaries []SectorSummary) {
	d.bySector = make(map[Sector]int, len(summaries))
	for _, sum := range summaries {
		record := fmt.Sprintf("sector %s", sum.ID)
		if !sum.ID.Valid() {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "ID", Reason: "unknown sector", Dropped: true})
			continue
		}
		if _, dup := d.bySector[sum.ID]; dup {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "ID", Reason: "duplicate sector summary", Dropped: true})
			continue
		}
		d.Faults = append(d.Faults, checkRecord(record, sum)...)
		d.bySector[sum.ID] = len(d.Summaries)
		d.Summaries = append(d.Summaries, sum)
	}
	// Display order follows the sector enumeration, not file order.
	sort.SliceStable(d.Summaries, func(i, j int) bool {
		return sectorRank(d.Summaries[i].ID) < sectorRank(d.Summaries[j].ID)
	})
	for i, sum := range d.Summaries {
		d.bySector[sum.ID] = i
	}
	for _, s := range Sectors() {
		if _, ok := d.bySector[s]; !ok {
			d.Faults = append(d.Faults, &Fault{Record: fmt.Sprintf("sector %s", s), Reason: "no summary for sector"})
		}
	}
}

func sectorRank(s Sector) int {
	for i, known := range Sectors() {
		if s == known {
			return i
		}
	}
	return len(Sectors())
}

// Step returns the step with the given number, or nil if not found.
func (d *Dataset) Step(number int) *Step {
	i, ok := d.byNumber[number]
	if !ok {
		return nil
	}
	return &d.Steps[i]
}

// Summary returns the summary for a sector, or nil if none matches.
func (d *Dataset) Summary(s Sector) *SectorSummary {
	i, ok := d.bySector[s]
	if !ok {
		return nil
	}
	return &d.Summaries[i]
}

// StepsBySector returns the steps of one sector in ascending step order.
func (d *Dataset) StepsBySector(s Sector) []Step {
	var out []Step
	for _, st := range d.Steps {
		if st.Sector == s {
			out = append(out, st)
		}
	}
	return out
}

// CountBySector returns how many steps each known sector holds.
func (d *Dataset) CountBySector() map[Sector]int {
	counts := make(map[Sector]int, 3)
	for _, s := range Sectors() {
		counts[s] = 0
	}
	for _, st := range d.Steps {
		if st.Sector.Valid() {
			counts[st.Sector]++
		}
	}
	return counts
}

// Country returns a world-map country by id, or nil if not found.
func (d *Dataset) Country(id string) *Country {
	for i := range d.Countries {
		if d.Countries[i].ID == id {
			return &d.Countries[i]
		}
	}
	return nil
}

// Term returns the key term matching name case-insensitively, or nil.
func (d *Dataset) Term(name string) *Term {
	for i := range d.Terms {
		if strings.EqualFold(d.Terms[i].Term, name) {
			return &d.Terms[i]
		}
	}
	return nil
}

// Locations returns the distinct leading location segments in step order.
func (d *Dataset) Locations() []string {
	seen := make(map[string]bool)
	var out []string
	for _, st := range d.Steps {
		p := st.Place()
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
