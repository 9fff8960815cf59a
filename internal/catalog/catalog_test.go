package catalog

import (
	"testing"
	"time"
)

func paper(id, title, published string, tags ...string) Paper {
	return Paper{ID: id, Title: title, Published: published, Tags: tags}
}

func TestLoadDeduplicates(t *testing.T) {
	raw := []byte(`{
		"last_updated": "2024-03-01T00:00:00Z",
		"papers": [
			{"id": "1", "title": "First"},
			{"id": "1", "title": "Duplicate"},
			{"id": "", "title": "No id"},
			{"id": "2", "title": "Second"}
		]
	}`)

	c, err := Load(raw)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 papers after dedup, got %d", c.Len())
	}
	if c.Papers[0].Title != "First" {
		t.Errorf("expected first occurrence to win, got %q", c.Papers[0].Title)
	}
	if c.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", c.TotalCount)
	}
}

func TestLoadRejectsBadJSON(t *testing.T) {
	if _, err := Load([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed snapshot")
	}
}

func TestFacetIndices(t *testing.T) {
	c := New([]Paper{
		paper("1", "A", "2024-01-05T10:00:00Z", "SLAM"),
		paper("2", "B", "2023-06-01T10:00:00Z", "SLAM", "Dynamic"),
		paper("3", "C", "2024-03-01T10:00:00Z", "Avatar"),
		paper("4", "D", "", "Avatar"), // dateless, still counted for tags
	}, "2024-03-01T00:00:00Z")

	years := c.Years()
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Errorf("Years() = %v, want [2024 2023]", years)
	}

	months := c.Months()
	if len(months) != 3 || months[0] != 1 || months[1] != 3 || months[2] != 6 {
		t.Errorf("Months() = %v, want [1 3 6]", months)
	}

	if got := c.TagCount("SLAM"); got != 2 {
		t.Errorf("TagCount(SLAM) = %d, want 2", got)
	}
	if got := c.TagCount("Missing"); got != 0 {
		t.Errorf("TagCount(Missing) = %d, want 0", got)
	}
}

func TestTagsOrderedByFrequencyThenName(t *testing.T) {
	c := New([]Paper{
		paper("1", "A", "", "SLAM", "Avatar"),
		paper("2", "B", "", "SLAM", "Dynamic"),
		paper("3", "C", "", "Avatar"),
	}, "")

	tags := c.Tags()
	want := []string{"Avatar", "SLAM", "Dynamic"}
	if len(tags) != len(want) {
		t.Fatalf("Tags() = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("Tags()[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestLatestIDTieBreak(t *testing.T) {
	// Equal instants keep the first-encountered record.
	c := New([]Paper{
		paper("early", "A", "2024-01-01T00:00:00Z"),
		paper("first", "B", "2024-03-01T12:00:00Z"),
		paper("second", "C", "2024-03-01T12:00:00Z"),
	}, "")

	if got := c.LatestID(); got != "first" {
		t.Errorf("LatestID() = %q, want %q", got, "first")
	}
}

func TestLatestIDSkipsUnparsableDates(t *testing.T) {
	c := New([]Paper{
		paper("bad", "A", "not-a-date"),
		paper("good", "B", "2024-01-01T00:00:00Z"),
	}, "")
	if got := c.LatestID(); got != "good" {
		t.Errorf("LatestID() = %q, want %q", got, "good")
	}

	empty := New(nil, "")
	if got := empty.LatestID(); got != "" {
		t.Errorf("LatestID() on empty catalog = %q, want empty", got)
	}
}

func TestCountOnDate(t *testing.T) {
	day := time.Date(2024, 3, 1, 15, 0, 0, 0, time.Local)
	c := New([]Paper{
		paper("1", "A", day.Format(time.RFC3339)),
		paper("2", "B", day.Add(-5*time.Hour).Format(time.RFC3339)),
		paper("3", "C", day.AddDate(0, 0, -1).Format(time.RFC3339)),
		paper("4", "D", ""),
	}, "")

	if got := c.CountOnDate(day); got != 2 {
		t.Errorf("CountOnDate = %d, want 2", got)
	}
}

func TestPublishedAtFormats(t *testing.T) {
	tests := []struct {
		published string
		ok        bool
	}{
		{"2024-01-05T10:00:00Z", true},
		{"2024-01-05", true},
		{"", false},
		{"January 5, 2024", false},
	}
	for _, tt := range tests {
		p := Paper{Published: tt.published}
		if _, ok := p.PublishedAt(); ok != tt.ok {
			t.Errorf("PublishedAt(%q) ok = %v, want %v", tt.published, ok, tt.ok)
		}
	}
}

func TestLinkPlaceholders(t *testing.T) {
	p := Paper{}
	if p.PDFLink() != PlaceholderURL || p.AbsLink() != PlaceholderURL {
		t.Error("missing URLs should render as placeholder")
	}

	p = Paper{PDFURL: "https://arxiv.org/pdf/1", AbsURL: "https://arxiv.org/abs/1"}
	if p.PDFLink() != p.PDFURL || p.AbsLink() != p.AbsURL {
		t.Error("present URLs should pass through unchanged")
	}
}

func TestHasTag(t *testing.T) {
	p := paper("1", "A", "", "SLAM", "Dynamic")
	if !p.HasTag("SLAM") {
		t.Error("expected HasTag(SLAM) = true")
	}
	if p.HasTag("slam") {
		t.Error("tag matching is case-sensitive, expected HasTag(slam) = false")
	}
}
