// Package urlstate maps filter state to and from a shareable URL
// query string. Restore and Serialize are pure and idempotent:
// serializing a restored string canonicalizes it, and the no-filter
// state maps to the empty string.
package urlstate

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/fogbound/paperscope/internal/query"
)

// Recognized query parameter keys. Anything else is ignored.
const (
	keySearch = "q"
	keyYear   = "year"
	keyMonth  = "month"
	keyTags   = "tags"
	keySort   = "sort"
)

// Restore decodes a raw query string into a FilterState. Malformed
// input degrades instead of failing: unknown keys are ignored,
// non-numeric year/month are treated as unset, out-of-range months
// are dropped, and an unrecognized sort value falls back to the
// default.
func Restore(rawQuery string) query.FilterState {
	f := query.NewFilterState()

	rawQuery = strings.TrimPrefix(rawQuery, "?")
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		// ParseQuery still returns whatever it could decode.
		if values == nil {
			return f
		}
	}

	f.Search = strings.TrimSpace(values.Get(keySearch))

	if y, err := strconv.Atoi(values.Get(keyYear)); err == nil && y > 0 {
		f.Year = y
	}
	if m, err := strconv.Atoi(values.Get(keyMonth)); err == nil && m >= 1 && m <= 12 {
		f.Month = m
	}

	for _, part := range strings.Split(values.Get(keyTags), ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			f.Tags[tag] = true
		}
	}

	f.Sort = query.ParseSortKey(values.Get(keySort))
	return f
}

// Serialize encodes a FilterState as a canonical query string,
// omitting every default value so "no filters" round-trips to "".
// Keys are emitted in a fixed alphabetical order and tags are sorted,
// making the output deterministic for set-equal inputs.
func Serialize(f query.FilterState) string {
	values := url.Values{}

	if q := strings.TrimSpace(f.Search); q != "" {
		values.Set(keySearch, q)
	}
	if f.Year > 0 {
		values.Set(keyYear, strconv.Itoa(f.Year))
	}
	if f.Month >= 1 && f.Month <= 12 {
		values.Set(keyMonth, strconv.Itoa(f.Month))
	}
	if tags := f.SelectedTags(); len(tags) > 0 {
		values.Set(keyTags, strings.Join(tags, ","))
	}
	if k := query.ParseSortKey(string(f.Sort)); k != query.DefaultSort {
		values.Set(keySort, string(k))
	}

	return values.Encode()
}

// ShareLink joins a base page URL with the serialized filter state.
// An empty query string yields the bare base URL.
func ShareLink(base string, f query.FilterState) string {
	qs := Serialize(f)
	if qs == "" {
		return base
	}
	return base + "?" + qs
}
