package article

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msalah0e/chainmap/data"
	"github.com/msalah0e/chainmap/internal/dataset"
)

func bundled(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.LoadFromFS(data.FS, ".")
	require.NoError(t, err)
	return ds
}

func ids(secs []Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.ID
	}
	return out
}

func TestBuild_Order(t *testing.T) {
	secs := Build(bundled(t))
	assert.Equal(t, []string{
		"hero", "counters", "overview",
		"flow-1", "sector-primary",
		"flow-2", "sector-secondary",
		"flow-3", "sector-tertiary",
		"timeline", "terms", "world-map", "search",
		"flow-4", "disruption",
	}, ids(secs))

	sec := secs[6]
	assert.Equal(t, KindSector, sec.Kind)
	assert.Equal(t, dataset.Secondary, sec.Sector)
	assert.Len(t, sec.Steps, 5)
	require.NotNil(t, sec.Summary)
	assert.Equal(t, "Secondary Sector", sec.Title)

	assert.Equal(t, "Raw materials shipped to factories", secs[5].Flow.Label)
}

func TestBuild_Sparse(t *testing.T) {
	ds := dataset.New(
		[]dataset.Step{{Number: 1, Title: "Mine", Location: "Chile", Sector: dataset.Primary}},
		dataset.ImpactScenario{Title: "Shock"},
		nil,
	)
	ds.Flows = []dataset.Flow{{Label: "only one"}}

	secs := Build(ds)
	assert.Equal(t, []string{"hero", "overview", "flow-1", "sector-primary", "search", "disruption"}, ids(secs))
	assert.Equal(t, "Primary Sector", secs[3].Title, "falls back without a summary")
	assert.Equal(t, "Shock", secs[5].Title)
}

func TestCounterValue(t *testing.T) {
	d := CounterDuration
	assert.Equal(t, 0, CounterValue(500, 0, d))
	assert.Equal(t, 0, CounterValue(500, -time.Second, d))
	assert.Equal(t, 500, CounterValue(500, d, d))
	assert.Equal(t, 500, CounterValue(500, 5*time.Second, d))
	assert.Equal(t, 437, CounterValue(500, d/2, d), "1-(0.5)^3 = 0.875")
	assert.Equal(t, 7, CounterValue(7, time.Millisecond, 0))

	prev := 0
	for e := time.Duration(0); e <= d; e += 50 * time.Millisecond {
		v := CounterValue(40000, e, d)
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 40000)
		prev = v
	}
}

func TestFormatCounter(t *testing.T) {
	assert.Equal(t, "40,000+", FormatCounter(dataset.Counter{Suffix: "+"}, 40000))
	assert.Equal(t, "$100K+", FormatCounter(dataset.Counter{Prefix: "$", Suffix: "K+"}, 100))
	assert.Equal(t, "0%", FormatCounter(dataset.Counter{Suffix: "%"}, 0))
}

func TestRender(t *testing.T) {
	ds := bundled(t)
	secs := Build(ds)
	byID := map[string]Section{}
	for _, s := range secs {
		byID[s.ID] = s
	}

	collapsed := Render(byID["timeline"], ds, View{Width: 80})
	tl := Render(byID["timeline"], ds, View{Width: 80, Revealed: true})
	assert.Contains(t, collapsed, "Production Timeline")
	assert.NotContains(t, collapsed, "Months 1–3")
	assert.Equal(t, strings.Count(tl, "\n"), strings.Count(collapsed, "\n"), "pending sections keep their height")

	assert.Contains(t, tl, "Months 1–3")
	assert.Contains(t, tl, "Delivery to Customer")

	start := Render(byID["counters"], ds, View{Width: 100, Revealed: true})
	assert.Contains(t, start, "Supercharger Stations")
	assert.NotContains(t, start, "40,000+")

	done := Render(byID["counters"], ds, View{Width: 100, Revealed: true, Elapsed: CounterDuration})
	assert.Contains(t, done, "40,000+")
	assert.Contains(t, done, "$100K+")

	world := Render(byID["world-map"], ds, View{Width: 80, Revealed: true})
	assert.Contains(t, world, "Chile")
	assert.Contains(t, world, "Every route ends at")

	dis := Render(byID["disruption"], ds, View{Width: 80, Revealed: true})
	assert.Contains(t, dis, "Immediate Production Halt")

	sector := Render(byID["sector-tertiary"], ds, View{Width: 80, Revealed: true})
	assert.Contains(t, sector, "Step 10")
	assert.Contains(t, sector, "Step 11")
}
