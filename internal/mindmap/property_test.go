package mindmap

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/msalah0e/chainmap/internal/dataset"
)

func genStep() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 40),
		gen.OneConstOf(dataset.Primary, dataset.Secondary, dataset.Tertiary, dataset.Sector("unknown")),
		gen.AlphaString(),
	).Map(func(vals []interface{}) dataset.Step {
		return dataset.Step{
			Number:   vals[0].(int),
			Sector:   vals[1].(dataset.Sector),
			Title:    vals[2].(string),
			Location: "Somewhere, Earth",
		}
	})
}

func samePositions(a, b *Graph) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, n := range a.Nodes() {
		m := b.Nodes()[i]
		if n.ID != m.ID || n.Position != m.Position || n.ParentID != m.ParentID || n.Radius != m.Radius {
			return false
		}
	}
	return true
}

// TestLayoutProperties checks the layout invariants against random step lists.
func TestLayoutProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("layout is deterministic", prop.ForAll(
		func(steps []dataset.Step) bool {
			a, _ := Layout(steps, DefaultBranches(), DefaultGeometry())
			b, _ := Layout(steps, DefaultBranches(), DefaultGeometry())
			return samePositions(a, b)
		},
		gen.SliceOf(genStep()),
	))

	properties.Property("input order does not change the layout", prop.ForAll(
		func(steps []dataset.Step, seed int64) bool {
			// Duplicate numbers keep first-seen, so only unique inputs can be permuted freely.
			unique := make([]dataset.Step, 0, len(steps))
			seen := make(map[int]bool)
			for _, s := range steps {
				if !seen[s.Number] {
					seen[s.Number] = true
					unique = append(unique, s)
				}
			}
			shuffled := make([]dataset.Step, len(unique))
			copy(shuffled, unique)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			a, _ := Layout(unique, DefaultBranches(), DefaultGeometry())
			b, _ := Layout(shuffled, DefaultBranches(), DefaultGeometry())
			return samePositions(a, b)
		},
		gen.SliceOf(genStep()),
		gen.Int64(),
	))

	properties.Property("nodes form a tree rooted at the center", prop.ForAll(
		func(steps []dataset.Step) bool {
			g, _ := Layout(steps, DefaultBranches(), DefaultGeometry())
			if g.Validate() != nil {
				return false
			}
			for _, n := range g.Nodes() {
				hops := 0
				for cur := &n; cur.ParentID != ""; cur = g.Node(cur.ParentID) {
					if hops++; hops > 2 {
						return false
					}
				}
			}
			return len(g.Edges()) == g.Len()-1
		},
		gen.SliceOf(genStep()),
	))

	properties.Property("every excluded step is reported", prop.ForAll(
		func(steps []dataset.Step) bool {
			g, errs := Layout(steps, DefaultBranches(), DefaultGeometry())
			placed := len(g.ByType(NodeStep))
			return placed+len(errs) == len(steps)
		},
		gen.SliceOf(genStep()),
	))

	properties.Property("children stay in ascending step order", prop.ForAll(
		func(steps []dataset.Step) bool {
			g, _ := Layout(steps, DefaultBranches(), DefaultGeometry())
			for _, id := range g.SectorIDs() {
				last := 0
				for _, cid := range g.Children(id) {
					n := g.Node(cid)
					if n.Step.Number <= last || n.Step.Sector != n.Sector {
						return false
					}
					last = n.Step.Number
				}
			}
			return true
		},
		gen.SliceOf(genStep()),
	))

	properties.TestingRun(t)
}
