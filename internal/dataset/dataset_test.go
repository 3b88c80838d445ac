package dataset

import (
	"embed"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/msalah0e/chainmap/data"
)

//go:embed testdata/*.toml
var testFS embed.FS

func loadTest(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadFromFS(testFS, "testdata")
	if err != nil {
		t.Fatalf("LoadFromFS failed: %v", err)
	}
	return ds
}

func faultFor(ds *Dataset, record, field string) *Fault {
	for _, f := range ds.Faults {
		if f.Record == record && strings.HasPrefix(f.Field, field) {
			return f
		}
	}
	return nil
}

func TestLoadFromFS(t *testing.T) {
	ds := loadTest(t)

	if len(ds.Steps) != 4 {
		t.Fatalf("expected 4 steps (duplicate dropped), got %d", len(ds.Steps))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if ds.Steps[i].Number != want {
			t.Errorf("step %d: expected number %d, got %d", i, want, ds.Steps[i].Number)
		}
	}
	if got := ds.Step(2).Title; got != "Beta Smelting" {
		t.Errorf("expected first occurrence of step 2 to win, got %q", got)
	}
	if ds.Impact.Title != "What If?" || len(ds.Impact.Consequences) != 2 {
		t.Errorf("impact not loaded: %+v", ds.Impact)
	}
	if ds.Hero.Title != "Test Car" {
		t.Errorf("expected hero title, got %q", ds.Hero.Title)
	}
	if len(ds.Counters) != 1 {
		t.Errorf("expected unlabeled counter to be dropped, got %d counters", len(ds.Counters))
	}
	if len(ds.Timeline) != 1 || len(ds.Terms) != 1 || len(ds.Flows) != 1 {
		t.Errorf("article extras not loaded: %d timeline, %d terms, %d flows", len(ds.Timeline), len(ds.Terms), len(ds.Flows))
	}
	if ds.Hub != "usa" || len(ds.Countries) != 2 {
		t.Errorf("expected hub usa and 2 countries, got %q and %d", ds.Hub, len(ds.Countries))
	}
	if c := ds.Country("chile"); c == nil || c.X != 22 {
		t.Errorf("expected chile at x=22, got %+v", c)
	}
}

func TestLoadFromFS_Faults(t *testing.T) {
	ds := loadTest(t)

	cases := []struct {
		record, field string
		dropped       bool
	}{
		{"step 2", "Number", true},
		{"step 2", "Resources[0].Kind", false},
		{"step 4", "Sector", false},
		{"sector primary", "ID", true},
		{"sector tertiary", "", false},
		{"country usa", "ID", true},
		{"counter 2", "Label", false},
	}
	for _, tc := range cases {
		f := faultFor(ds, tc.record, tc.field)
		if f == nil {
			t.Errorf("expected fault for %s %s, got %v", tc.record, tc.field, ds.Faults)
			continue
		}
		if f.Dropped != tc.dropped {
			t.Errorf("%s %s: expected dropped=%v, got %v", tc.record, tc.field, tc.dropped, f.Dropped)
		}
	}
	if len(ds.Faults) != len(cases) {
		t.Errorf("expected %d faults, got %d: %v", len(cases), len(ds.Faults), ds.Faults)
	}
}

func TestUnmappedCategoriesAreKept(t *testing.T) {
	ds := loadTest(t)

	st := ds.Step(4)
	if st == nil {
		t.Fatal("step with unknown sector should be kept")
	}
	if st.Sector.Valid() || st.Sector.Title() != "Unknown" {
		t.Errorf("expected unknown sector fallback, got %q", st.Sector.Title())
	}
	kind := ds.Step(2).Resources[0].Kind
	if kind.Normalize() != Unknown || kind.Label() != "Unknown" {
		t.Errorf("expected unknown resource kind fallback, got %q", kind.Label())
	}
}

func TestSummariesOrdered(t *testing.T) {
	ds := loadTest(t)

	if len(ds.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(ds.Summaries))
	}
	if ds.Summaries[0].ID != Primary || ds.Summaries[1].ID != Secondary {
		t.Errorf("expected primary before secondary, got %s, %s", ds.Summaries[0].ID, ds.Summaries[1].ID)
	}
	if ds.Summary(Primary).Label != "Primary Sector" {
		t.Errorf("expected first primary summary to win, got %q", ds.Summary(Primary).Label)
	}
	if ds.Summary(Tertiary) != nil {
		t.Error("expected no tertiary summary")
	}
}

func TestStepsBySector(t *testing.T) {
	ds := loadTest(t)

	primary := ds.StepsBySector(Primary)
	if len(primary) != 2 || primary[0].Number != 1 || primary[1].Number != 2 {
		t.Errorf("unexpected primary steps: %+v", primary)
	}
	counts := ds.CountBySector()
	if counts[Primary] != 2 || counts[Secondary] != 1 || counts[Tertiary] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestSearch(t *testing.T) {
	ds := loadTest(t)

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"empty matches all", Filter{}, []int{1, 2, 3, 4}},
		{"title", Filter{Query: "beta"}, []int{2}},
		{"business", Filter{Query: "sqm"}, []int{1}},
		{"resource label", Filter{Query: "ROBOTS"}, []int{3}},
		{"location", Filter{Query: "canada"}, []int{2}},
		{"sector only", Filter{Sector: "primary"}, []int{1, 2}},
		{"all sectors", Filter{Query: "a", Sector: AllSectors}, []int{1, 2, 3, 4}},
		{"query and sector", Filter{Query: "factory", Sector: "primary"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.Search(tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d results", tt.want, len(got))
			}
			for i, n := range tt.want {
				if got[i].Number != n {
					t.Errorf("result %d: expected step %d, got %d", i, n, got[i].Number)
				}
			}
		})
	}
}

func TestLocations(t *testing.T) {
	ds := loadTest(t)
	got := ds.Locations()
	want := []string{"Atacama Desert", "Quebec", "Fremont Factory", "Tilburg"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoadFromFS_ParseError(t *testing.T) {
	fsys := fstest.MapFS{
		"content/bad.toml": {Data: []byte("[[steps]\nstep = ")},
	}
	if _, err := LoadFromFS(fsys, "content"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFromFS_MissingDir(t *testing.T) {
	if _, err := LoadFromFS(fstest.MapFS{}, "nope"); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestBundledContent(t *testing.T) {
	ds, err := LoadFromFS(data.FS, ".")
	if err != nil {
		t.Fatalf("loading bundled content: %v", err)
	}
	if len(ds.Faults) != 0 {
		t.Errorf("bundled content has faults: %v", ds.Faults)
	}
	if len(ds.Steps) != 11 {
		t.Errorf("expected 11 steps, got %d", len(ds.Steps))
	}
	counts := ds.CountBySector()
	if counts[Primary] != 4 || counts[Secondary] != 5 || counts[Tertiary] != 2 {
		t.Errorf("unexpected sector counts: %v", counts)
	}
	for _, s := range Sectors() {
		if ds.Summary(s) == nil {
			t.Errorf("missing summary for %s", s)
		}
	}
	if len(ds.Impact.Consequences) != 5 {
		t.Errorf("expected 5 consequences, got %d", len(ds.Impact.Consequences))
	}
	if ds.Country(ds.Hub) == nil {
		t.Errorf("hub %q not among countries", ds.Hub)
	}
}

func TestFaultError(t *testing.T) {
	f := &Fault{Record: "step 2", Field: "Number", Reason: "duplicate step number", Dropped: true}
	if got := f.Error(); got != "step 2: Number: duplicate step number (record dropped)" {
		t.Errorf("unexpected message %q", got)
	}
}
