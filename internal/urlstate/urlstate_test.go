package urlstate

import (
	"testing"

	"github.com/fogbound/paperscope/internal/query"
)

func TestRestoreFullState(t *testing.T) {
	f := Restore("q=nerf&tags=SLAM,Avatar&sort=title-desc")

	if f.Search != "nerf" {
		t.Errorf("Search = %q, want %q", f.Search, "nerf")
	}
	if !f.Tags["SLAM"] || !f.Tags["Avatar"] || len(f.Tags) != 2 {
		t.Errorf("Tags = %v, want {SLAM, Avatar}", f.Tags)
	}
	if f.Sort != query.SortTitleDesc {
		t.Errorf("Sort = %q, want title-desc", f.Sort)
	}
	if f.Year != 0 || f.Month != 0 {
		t.Errorf("unset year/month should stay zero, got %d/%d", f.Year, f.Month)
	}
}

func TestRestoreTolerant(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		check func(t *testing.T, f query.FilterState)
	}{
		{"empty string", "", func(t *testing.T, f query.FilterState) {
			if !f.IsZero() {
				t.Errorf("empty query should restore zero state, got %+v", f)
			}
		}},
		{"leading question mark", "?q=slam", func(t *testing.T, f query.FilterState) {
			if f.Search != "slam" {
				t.Errorf("Search = %q", f.Search)
			}
		}},
		{"unknown keys ignored", "q=slam&bogus=1&utm_source=feed", func(t *testing.T, f query.FilterState) {
			if f.Search != "slam" {
				t.Errorf("Search = %q", f.Search)
			}
		}},
		{"non-numeric year", "year=twenty", func(t *testing.T, f query.FilterState) {
			if f.Year != 0 {
				t.Errorf("Year = %d, want 0", f.Year)
			}
		}},
		{"month out of range", "month=13", func(t *testing.T, f query.FilterState) {
			if f.Month != 0 {
				t.Errorf("Month = %d, want 0", f.Month)
			}
		}},
		{"valid year and month", "year=2024&month=3", func(t *testing.T, f query.FilterState) {
			if f.Year != 2024 || f.Month != 3 {
				t.Errorf("got %d/%d, want 2024/3", f.Year, f.Month)
			}
		}},
		{"empty tag entries dropped", "tags=SLAM,,%20,Avatar", func(t *testing.T, f query.FilterState) {
			if len(f.Tags) != 2 {
				t.Errorf("Tags = %v, want 2 entries", f.Tags)
			}
		}},
		{"unknown sort falls back", "sort=by-mood", func(t *testing.T, f query.FilterState) {
			if f.Sort != query.DefaultSort {
				t.Errorf("Sort = %q, want default", f.Sort)
			}
		}},
		{"malformed encoding degrades", "q=slam&year=%zz", func(t *testing.T, f query.FilterState) {
			if f.Search != "slam" {
				t.Errorf("Search = %q, decodable pairs should survive", f.Search)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Restore(tt.raw))
		})
	}
}

func TestSerializeOmitsDefaults(t *testing.T) {
	if got := Serialize(query.NewFilterState()); got != "" {
		t.Errorf("zero state serialized to %q, want empty", got)
	}

	f := query.NewFilterState()
	f.Search = "slam"
	f.Year = 2024
	f.Tags["SLAM"] = true
	f.Tags["Avatar"] = true
	f.Sort = query.SortTitleAsc

	got := Serialize(f)
	want := "q=slam&sort=title-asc&tags=Avatar%2CSLAM&year=2024"
	if got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

// serialize(restore(serialize(f))) == serialize(f) for any state.
func TestRoundTripIdempotent(t *testing.T) {
	states := []query.FilterState{
		query.NewFilterState(),
		{Search: "gaussian splatting", Year: 2024, Month: 1,
			Tags: map[string]bool{"SLAM": true}, Sort: query.SortDateAsc},
		{Search: "  padded  ", Sort: query.SortTitleDesc},
		{Tags: map[string]bool{"Avatar": true, "Dynamic": true, "SLAM": true}},
	}

	for _, f := range states {
		first := Serialize(f)
		second := Serialize(Restore(first))
		if first != second {
			t.Errorf("round trip changed %q to %q", first, second)
		}
	}
}

func TestShareLink(t *testing.T) {
	base := "https://example.org/papers"

	if got := ShareLink(base, query.NewFilterState()); got != base {
		t.Errorf("zero state link = %q, want bare base", got)
	}

	f := query.NewFilterState()
	f.Search = "slam"
	if got, want := ShareLink(base, f), base+"?q=slam"; got != want {
		t.Errorf("ShareLink = %q, want %q", got, want)
	}
}
