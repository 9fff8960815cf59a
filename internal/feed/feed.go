// Package feed generates the RSS 2.0 syndication feed from a catalog
// snapshot. The feed re-derives its own ordering (newest first) from
// the snapshot and is independent of any browse-session state.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/fogbound/paperscope/internal/catalog"
	"github.com/fogbound/paperscope/internal/query"
)

// MaxItems caps how many papers the feed carries.
const MaxItems = 50

// maxDescription truncates abstracts for feed readers.
const maxDescription = 500

// Config holds the channel-level feed metadata.
type Config struct {
	SiteURL     string
	Title       string
	Description string
}

// DefaultConfig returns the catalog's published feed identity.
func DefaultConfig() Config {
	return Config{
		SiteURL:     "https://fogbound.github.io/paperscope",
		Title:       "Gaussian Splatting Latest Papers",
		Description: "Daily updated feed of the latest Gaussian Splatting papers from arXiv.",
	}
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        string   `xml:"guid"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Categories  []string `xml:"category"`
	Author      string   `xml:"author,omitempty"`
}

// Generate renders the RSS document for the newest papers in the
// snapshot. Papers without parseable dates simply omit pubDate; they
// are never dropped from the feed outright unless pushed out by the
// item cap.
func Generate(c *catalog.Catalog, cfg Config) ([]byte, error) {
	papers := query.Sort(c.Papers, query.SortDateDesc)
	if len(papers) > MaxItems {
		papers = papers[:MaxItems]
	}

	doc := rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:         cfg.Title,
			Link:          cfg.SiteURL,
			Description:   cfg.Description,
			Language:      "en-us",
			LastBuildDate: toRFC1123Z(c.LastUpdated),
			AtomLink: atomLink{
				Href: cfg.SiteURL + "/feed.xml",
				Rel:  "self",
				Type: "application/rss+xml",
			},
		},
	}

	for i := range papers {
		p := &papers[i]
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       p.Title,
			Link:        p.AbsLink(),
			GUID:        p.AbsLink(),
			Description: truncate(p.Abstract, maxDescription),
			PubDate:     toRFC1123Z(p.Published),
			Categories:  p.Tags,
			Author:      authorLine(p.Authors),
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// toRFC1123Z converts a stored instant to the RFC 822-style date RSS
// expects. Unparsable input yields "" and the element is omitted.
func toRFC1123Z(instant string) string {
	if instant == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, instant)
	if err != nil {
		return ""
	}
	return t.Format(time.RFC1123Z)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// authorLine joins up to five authors, marking longer lists with
// "et al.".
func authorLine(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) <= 5 {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:5], ", ") + " et al."
}
