package dataset

import "strings"

// AllSectors is the Filter sector value that disables sector filtering.
const AllSectors = "all"

// Filter selects steps by free-text query and sector.
type Filter struct {
	Query  string
	Sector string // a sector id, AllSectors, or empty
}

// Search returns the steps matching f in ascending step order.
func (d *Dataset) Search(f Filter) []Step {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var results []Step
	for _, st := range d.Steps {
		if f.Sector != "" && f.Sector != AllSectors && string(st.Sector) != f.Sector {
			continue
		}
		if q == "" || matches(st, q) {
			results = append(results, st)
		}
	}
	return results
}

func matches(st Step, query string) bool {
	if strings.Contains(strings.ToLower(st.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(st.Location), query) {
		return true
	}
	if strings.Contains(strings.ToLower(st.Description), query) {
		return true
	}
	for _, b := range st.Businesses {
		if strings.Contains(strings.ToLower(b), query) {
			return true
		}
	}
	for _, r := range st.Resources {
		if strings.Contains(strings.ToLower(r.Label), query) {
			return true
		}
	}
	return false
}
