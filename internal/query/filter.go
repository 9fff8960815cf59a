// Package query evaluates filter state against the catalog and owns
// the result sequence the browse UI pages through. All filter and
// sort functions are pure: records in, records out, no side effects.
package query

import (
	"strings"
	"time"

	"github.com/fogbound/paperscope/internal/catalog"
)

// FilterState is the user's current search/filter/sort selections.
// It is fully derivable from, and serializable to, a URL query string
// (see the urlstate package); a zero FilterState with the default sort
// means "no filters".
type FilterState struct {
	Search string          // case-insensitive substring match
	Year   int             // 0 = unset
	Month  int             // 0 = unset, otherwise 1-12
	Tags   map[string]bool // selected facet tags, OR-combined
	Sort   SortKey
}

// NewFilterState returns an empty filter with the default sort order.
func NewFilterState() FilterState {
	return FilterState{Tags: make(map[string]bool), Sort: SortDateDesc}
}

// IsZero reports whether the filter selects the whole catalog in the
// default order.
func (f FilterState) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		f.Year == 0 && f.Month == 0 &&
		len(f.Tags) == 0 &&
		(f.Sort == SortDateDesc || f.Sort == "")
}

// SelectedTags returns the selected tags as a sorted slice.
func (f FilterState) SelectedTags() []string {
	if len(f.Tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Tags))
	for t := range f.Tags {
		out = append(out, t)
	}
	sortStrings(out)
	return out
}

// ToggleTag flips a tag selection in place, allocating the set on
// first use.
func (f *FilterState) ToggleTag(tag string) {
	if f.Tags == nil {
		f.Tags = make(map[string]bool)
	}
	if f.Tags[tag] {
		delete(f.Tags, tag)
	} else {
		f.Tags[tag] = true
	}
}

// Matches decides catalog membership for one paper under the given
// filter. Criteria are AND-combined and each short-circuits:
//
//  1. non-empty search text must appear (case-insensitive) in the
//     concatenated title, authors and abstract;
//  2. a year filter must equal the local-time publication year;
//  3. a month filter must equal the local-time publication month;
//  4. a non-empty tag set must share at least one tag with the paper
//     (OR semantics - selecting more tags broadens the result).
//
// Papers with unparsable publication dates never match a year or
// month filter but are otherwise eligible.
func Matches(p *catalog.Paper, f FilterState) bool {
	if q := strings.TrimSpace(f.Search); q != "" {
		haystack := strings.ToLower(p.Title + " " + strings.Join(p.Authors, " ") + " " + p.Abstract)
		if !strings.Contains(haystack, strings.ToLower(q)) {
			return false
		}
	}

	if f.Year != 0 || f.Month != 0 {
		t, ok := p.PublishedAt()
		if !ok {
			return false
		}
		local := t.Local()
		if f.Year != 0 && local.Year() != f.Year {
			return false
		}
		if f.Month != 0 && local.Month() != time.Month(f.Month) {
			return false
		}
	}

	if len(f.Tags) > 0 {
		any := false
		for _, tag := range p.Tags {
			if f.Tags[tag] {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}

	return true
}
