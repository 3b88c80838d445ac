package dataset

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
)

// contentFile is the union of every table a content file may carry.
type contentFile struct {
	Steps     []Step          `toml:"steps"`
	Impact    *ImpactScenario `toml:"impact"`
	Sectors   []SectorSummary `toml:"sectors"`
	Hero      *Hero           `toml:"hero"`
	Counters  []Counter       `toml:"counters"`
	Timeline  []TimelineEvent `toml:"timeline"`
	Terms     []Term          `toml:"terms"`
	Flows     []Flow          `toml:"flows"`
	Hub       string          `toml:"hub"`
	Countries []Country       `toml:"countries"`
}

// LoadFromFS loads every TOML file in dir and merges them into one dataset.
// A file that cannot be read or parsed is an error; problems inside
// individual records are collected in Dataset.Faults instead.
func LoadFromFS(fsys fs.FS, dir string) (*Dataset, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir: %w", err)
	}

	var merged contentFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		var cf contentFile
		if err := toml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		merged.merge(cf)
	}

	var impact ImpactScenario
	if merged.Impact != nil {
		impact = *merged.Impact
	}
	d := New(merged.Steps, impact, merged.Sectors)
	if merged.Hero != nil {
		d.Hero = *merged.Hero
	}
	d.setExtras(merged)
	return d, nil
}

func (c *contentFile) merge(o contentFile) {
	c.Steps = append(c.Steps, o.Steps...)
	c.Sectors = append(c.Sectors, o.Sectors...)
	c.Counters = append(c.Counters, o.Counters...)
	c.Timeline = append(c.Timeline, o.Timeline...)
	c.Terms = append(c.Terms, o.Terms...)
	c.Flows = append(c.Flows, o.Flows...)
	c.Countries = append(c.Countries, o.Countries...)
	if o.Impact != nil {
		c.Impact = o.Impact
	}
	if o.Hero != nil {
		c.Hero = o.Hero
	}
	if o.Hub != "" {
		c.Hub = o.Hub
	}
}

func (d *Dataset) setExtras(c contentFile) {
	d.Hub = c.Hub
	d.Flows = c.Flows

	for i, ctr := range c.Counters {
		if faults := checkRecord(fmt.Sprintf("counter %d", i+1), ctr); len(faults) > 0 {
			d.Faults = append(d.Faults, faults...)
			continue
		}
		d.Counters = append(d.Counters, ctr)
	}
	for i, ev := range c.Timeline {
		if faults := checkRecord(fmt.Sprintf("timeline %d", i+1), ev); len(faults) > 0 {
			d.Faults = append(d.Faults, faults...)
			continue
		}
		d.Timeline = append(d.Timeline, ev)
	}
	for _, t := range c.Terms {
		if faults := checkRecord(fmt.Sprintf("term %q", t.Term), t); len(faults) > 0 {
			d.Faults = append(d.Faults, faults...)
			continue
		}
		d.Terms = append(d.Terms, t)
	}

	seen := make(map[string]bool, len(c.Countries))
	for _, ct := range c.Countries {
		record := fmt.Sprintf("country %s", ct.ID)
		if seen[ct.ID] {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "ID", Reason: "duplicate country", Dropped: true})
			continue
		}
		seen[ct.ID] = true
		// Off-map coordinates or an unknown sector only affect the dot's style.
		d.Faults = append(d.Faults, checkRecord(record, ct)...)
		if ct.Sector != "" && !ct.Sector.Valid() {
			d.Faults = append(d.Faults, &Fault{Record: record, Field: "Sector", Reason: fmt.Sprintf("%q is not a known sector", ct.Sector)})
		}
		d.Countries = append(d.Countries, ct)
	}
	if d.Hub != "" && d.Country(d.Hub) == nil {
		d.Faults = append(d.Faults, &Fault{Record: "world", Field: "hub", Reason: fmt.Sprintf("hub %q is not a listed country", d.Hub)})
	}
}
