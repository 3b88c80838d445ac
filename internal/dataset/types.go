package dataset

import "strings"

// Sector is one of the three economic-activity categories a step belongs to.
type Sector string

const (
	Primary   Sector = "primary"
	Secondary Sector = "secondary"
	Tertiary  Sector = "tertiary"
)

// Sectors returns the known sectors in display order.
func Sectors() []Sector {
	return []Sector{Primary, Secondary, Tertiary}
}

// Valid reports whether s is one of the known sectors.
func (s Sector) Valid() bool {
	switch s {
	case Primary, Secondary, Tertiary:
		return true
	}
	return false
}

// Title returns the capitalized sector name, or "Unknown" for unmapped values.
func (s Sector) Title() string {
	if !s.Valid() {
		return "Unknown"
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Theme returns the short theme used as a sublabel ("Raw Materials", ...).
func (s Sector) Theme() string {
	switch s {
	case Primary:
		return "Raw Materials"
	case Secondary:
		return "Manufacturing"
	case Tertiary:
		return "Services"
	}
	return "Unclassified"
}

// ResourceKind classifies a resource used by a step.
type ResourceKind string

const (
	Natural ResourceKind = "natural"
	Human   ResourceKind = "human"
	Capital ResourceKind = "capital"
	// Unknown is the fallback bucket for kinds outside the enumeration.
	Unknown ResourceKind = "unknown"
)

// ResourceKinds returns the known kinds in badge order.
func ResourceKinds() []ResourceKind {
	return []ResourceKind{Natural, Human, Capital}
}

// Valid reports whether k is a known kind.
func (k ResourceKind) Valid() bool {
	switch k {
	case Natural, Human, Capital:
		return true
	}
	return false
}

// Normalize maps unknown kinds onto Unknown.
func (k ResourceKind) Normalize() ResourceKind {
	if k.Valid() {
		return k
	}
	return Unknown
}

// Label returns the badge label for the kind.
func (k ResourceKind) Label() string {
	switch k {
	case Natural:
		return "Natural"
	case Human:
		return "Human"
	case Capital:
		return "Capital"
	}
	return "Unknown"
}

// Resource is one labelled input to a step.
type Resource struct {
	Kind  ResourceKind `toml:"kind" json:"kind" yaml:"kind" validate:"required,oneof=natural human capital"`
	Label string       `toml:"label" json:"label" yaml:"label" validate:"required"`
}

// Step is one stage of the supply chain.
type Step struct {
	Number      int        `toml:"step" json:"step" yaml:"step" validate:"required,min=1"`
	Title       string     `toml:"title" json:"title" yaml:"title" validate:"required"`
	Location    string     `toml:"location" json:"location" yaml:"location" validate:"required"`
	Flag        string     `toml:"flag" json:"flag" yaml:"flag"`
	Sector      Sector     `toml:"sector" json:"sector" yaml:"sector" validate:"required,oneof=primary secondary tertiary"`
	Description string     `toml:"description" json:"description" yaml:"description"`
	Resources   []Resource `toml:"resources" json:"resources" yaml:"resources" validate:"dive"`
	Businesses  []string   `toml:"businesses" json:"businesses" yaml:"businesses"`
	Image       string     `toml:"image" json:"image,omitempty" yaml:"image,omitempty"`
}

// Place returns the first segment of the location ("Fremont Factory").
func (s Step) Place() string {
	place, _, _ := strings.Cut(s.Location, ",")
	return strings.TrimSpace(place)
}

// Consequence is one card of the disruption scenario.
type Consequence struct {
	Title string `toml:"title" json:"title" yaml:"title" validate:"required"`
	Text  string `toml:"text" json:"text" yaml:"text"`
	Style string `toml:"style" json:"style" yaml:"style"`
}

// ImpactScenario is the single disruption narrative.
type ImpactScenario struct {
	Title        string        `toml:"title" json:"title" yaml:"title" validate:"required"`
	Subtitle     string        `toml:"subtitle" json:"subtitle" yaml:"subtitle"`
	Disrupted    string        `toml:"disrupted" json:"disrupted" yaml:"disrupted"`
	Consequences []Consequence `toml:"consequences" json:"consequences" yaml:"consequences" validate:"dive"`
	Takeaway     string        `toml:"takeaway" json:"takeaway" yaml:"takeaway"`
}

// SectorSummary describes one sector as a whole.
type SectorSummary struct {
	ID          Sector `toml:"id" json:"id" yaml:"id" validate:"required,oneof=primary secondary tertiary"`
	Label       string `toml:"label" json:"label" yaml:"label" validate:"required"`
	StepCount   string `toml:"steps" json:"steps" yaml:"steps"`
	Description string `toml:"description" json:"description" yaml:"description"`
}

// Country is a dot on the world map.
type Country struct {
	ID     string  `toml:"id" json:"id" validate:"required"`
	Name   string  `toml:"country" json:"country" validate:"required"`
	Flag   string  `toml:"flag" json:"flag"`
	Role   string  `toml:"role" json:"role"`
	Detail string  `toml:"detail" json:"detail"`
	X      float64 `toml:"x" json:"x" validate:"gte=0,lte=100"`
	Y      float64 `toml:"y" json:"y" validate:"gte=0,lte=100"`
	Sector Sector  `toml:"sector" json:"sector"`
}

// Counter is one animated headline figure.
type Counter struct {
	Value  int    `toml:"value" json:"value" validate:"gte=0"`
	Prefix string `toml:"prefix" json:"prefix,omitempty"`
	Suffix string `toml:"suffix" json:"suffix,omitempty"`
	Label  string `toml:"label" json:"label" validate:"required"`
}

// TimelineEvent is one entry of the production timeline.
type TimelineEvent struct {
	Period      string `toml:"period" json:"period" validate:"required"`
	Title       string `toml:"title" json:"title" validate:"required"`
	Description string `toml:"description" json:"description"`
}

// Term is a key term with a short fact, shown as a tooltip.
type Term struct {
	Term string `toml:"term" json:"term" validate:"required"`
	Fact string `toml:"fact" json:"fact" validate:"required"`
}

// Flow connects two consecutive article sections.
type Flow struct {
	From  string `toml:"from" json:"from"`
	To    string `toml:"to" json:"to"`
	Label string `toml:"label" json:"label"`
}

// Hero is the article's opening banner.
type Hero struct {
	Title    string `toml:"title" json:"title"`
	Subtitle string `toml:"subtitle" json:"subtitle"`
	Byline   string `toml:"byline" json:"byline"`
}
