// Package catalog provides the data layer for PaperScope.
//
// A Catalog is one immutable snapshot of the paper collection, loaded
// once at session start. The browse UI never mutates it; the batch
// pipeline produces new snapshots out of band. Alongside the raw
// records the catalog carries derived facet indices (years, months,
// tag frequencies) used to drive filtering.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// PlaceholderURL is used wherever a paper is missing a link target.
const PlaceholderURL = "#"

// Paper is a single catalog record. Immutable after load.
type Paper struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Abstract      string   `json:"abstract"`
	Published     string   `json:"published"`
	Updated       string   `json:"updated,omitempty"`
	Categories    []string `json:"categories"`
	Tags          []string `json:"tags"`
	PDFURL        string   `json:"pdf_url,omitempty"`
	AbsURL        string   `json:"abs_url,omitempty"`
	FigureURL     string   `json:"figure_url,omitempty"`
	FigureCaption string   `json:"figure_caption,omitempty"`
}

// PublishedAt parses the published timestamp. The second return is
// false when the field is absent or unparsable; such records stay in
// the catalog but are excluded from date facets, date filters and
// "latest" computation.
func (p *Paper) PublishedAt() (time.Time, bool) {
	return parseInstant(p.Published)
}

// UpdatedAt parses the optional updated timestamp.
func (p *Paper) UpdatedAt() (time.Time, bool) {
	return parseInstant(p.Updated)
}

// PDFLink returns the PDF URL or the placeholder when absent.
func (p *Paper) PDFLink() string {
	if p.PDFURL == "" {
		return PlaceholderURL
	}
	return p.PDFURL
}

// AbsLink returns the abstract-page URL or the placeholder when absent.
func (p *Paper) AbsLink() string {
	if p.AbsURL == "" {
		return PlaceholderURL
	}
	return p.AbsURL
}

// HasTag reports whether the paper carries the given facet tag.
func (p *Paper) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// parseInstant accepts RFC3339 timestamps and bare calendar dates.
// The arXiv pipeline writes RFC3339; hand-maintained entries sometimes
// carry a plain date.
func parseInstant(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Catalog is the full, session-immutable paper collection plus its
// derived facet indices.
type Catalog struct {
	LastUpdated string  `json:"last_updated"`
	TotalCount  int     `json:"total_count"`
	Papers      []Paper `json:"papers"`

	years     map[int]bool
	months    map[int]bool
	tagCounts map[string]int
	latestID  string
}

// Load parses a catalog snapshot and builds the facet indices.
// Duplicate ids are dropped (first occurrence wins) so the uniqueness
// invariant holds even against a misbehaving pipeline.
func Load(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	seen := make(map[string]bool, len(c.Papers))
	papers := make([]Paper, 0, len(c.Papers))
	for _, p := range c.Papers {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		papers = append(papers, p)
	}
	c.Papers = papers
	c.TotalCount = len(papers)

	c.buildIndices()
	return &c, nil
}

// New builds a catalog directly from records. Used by the pipeline and
// by tests; applies the same dedup and indexing as Load.
func New(papers []Paper, lastUpdated string) *Catalog {
	c := &Catalog{LastUpdated: lastUpdated, Papers: papers}
	seen := make(map[string]bool, len(papers))
	kept := make([]Paper, 0, len(papers))
	for _, p := range papers {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		kept = append(kept, p)
	}
	c.Papers = kept
	c.TotalCount = len(kept)
	c.buildIndices()
	return c
}

func (c *Catalog) buildIndices() {
	c.years = make(map[int]bool)
	c.months = make(map[int]bool)
	c.tagCounts = make(map[string]int)

	var latest time.Time
	haveLatest := false

	for i := range c.Papers {
		p := &c.Papers[i]
		for _, tag := range p.Tags {
			c.tagCounts[tag]++
		}
		t, ok := p.PublishedAt()
		if !ok {
			continue
		}
		local := t.Local()
		c.years[local.Year()] = true
		c.months[int(local.Month())] = true
		// Strictly-after comparison keeps the first-encountered record
		// on ties, matching most-recently-scanned semantics.
		if !haveLatest || t.After(latest) {
			latest = t
			haveLatest = true
			c.latestID = p.ID
		}
	}
}

// Years returns the distinct publication years present, newest first.
func (c *Catalog) Years() []int {
	out := make([]int, 0, len(c.years))
	for y := range c.years {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Months returns the distinct publication months (1-12) present,
// ascending.
func (c *Catalog) Months() []int {
	out := make([]int, 0, len(c.months))
	for m := range c.months {
		out = append(out, m)
	}
	sort.Ints(out)
	return out
}

// TagCount returns how many papers carry the given tag.
func (c *Catalog) TagCount(tag string) int {
	return c.tagCounts[tag]
}

// Tags returns all facet tags ordered by frequency (descending), with
// ties broken alphabetically so the facet list is stable across loads.
func (c *Catalog) Tags() []string {
	out := make([]string, 0, len(c.tagCounts))
	for t := range c.tagCounts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		ci, cj := c.tagCounts[out[i]], c.tagCounts[out[j]]
		if ci != cj {
			return ci > cj
		}
		return out[i] < out[j]
	})
	return out
}

// LatestID returns the id of the paper with the most recent valid
// publication instant, or "" for an empty (or dateless) catalog.
func (c *Catalog) LatestID() string {
	return c.latestID
}

// CountOnDate returns how many papers were published on the given
// calendar date in the viewer's local timezone. Backs the
// "added today" counter.
func (c *Catalog) CountOnDate(day time.Time) int {
	y, m, d := day.Local().Date()
	count := 0
	for i := range c.Papers {
		t, ok := c.Papers[i].PublishedAt()
		if !ok {
			continue
		}
		py, pm, pd := t.Local().Date()
		if py == y && pm == m && pd == d {
			count++
		}
	}
	return count
}

// Len returns the number of papers in the catalog.
func (c *Catalog) Len() int {
	return len(c.Papers)
}
