package query

import (
	"sort"
	"strings"

	"github.com/fogbound/paperscope/internal/catalog"
)

// SortKey selects the result ordering. The wire values double as the
// URL parameter values.
type SortKey string

const (
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
)

// DefaultSort is used when no explicit key is chosen or an
// unrecognized value arrives from a URL.
const DefaultSort = SortDateDesc

// ParseSortKey maps a wire value to a SortKey, falling back to the
// default for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc:
		return SortKey(s)
	default:
		return DefaultSort
	}
}

// Label returns a short human-readable name for the status bar.
func (k SortKey) Label() string {
	switch k {
	case SortDateAsc:
		return "oldest"
	case SortTitleAsc:
		return "title a-z"
	case SortTitleDesc:
		return "title z-a"
	default:
		return "newest"
	}
}

// Next cycles to the following sort key. Used by the UI's sort toggle.
func (k SortKey) Next() SortKey {
	switch k {
	case SortDateDesc:
		return SortDateAsc
	case SortDateAsc:
		return SortTitleAsc
	case SortTitleAsc:
		return SortTitleDesc
	default:
		return SortDateDesc
	}
}

// Sort returns a stably ordered copy of papers. The input slice is
// never mutated, and records comparing equal retain their relative
// catalog order, so re-sorting with an unchanged key after a filter
// change does not visibly reorder ties.
//
// Date keys compare the raw ISO-formatted published string, so
// missing or unparsable dates sort as the empty string and collect at
// one end rather than being dropped.
func Sort(papers []catalog.Paper, key SortKey) []catalog.Paper {
	out := make([]catalog.Paper, len(papers))
	copy(out, papers)

	switch key {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Published < out[j].Published
		})
	case SortTitleAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return titleLess(out[i].Title, out[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return titleLess(out[j].Title, out[i].Title)
		})
	default: // SortDateDesc
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Published > out[j].Published
		})
	}
	return out
}

// titleLess compares titles case-insensitively so "alpha" and "Alpha"
// sort together regardless of capitalization.
func titleLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sortStrings(s []string) { sort.Strings(s) }
