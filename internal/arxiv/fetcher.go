// Package arxiv fetches paper metadata from the arXiv API.
//
// The API returns Atom; parsing goes through gofeed rather than a
// hand-rolled decoder. Pagination walks the result set 100 entries at
// a time with a rate limiter between requests - arXiv asks clients to
// wait three seconds between calls.
package arxiv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fogbound/paperscope/internal/catalog"
	"github.com/fogbound/paperscope/internal/logging"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"
)

// DefaultQuery is the topic query the catalog is built from.
const DefaultQuery = `all:"gaussian splatting" OR all:"3d gaussian" OR all:"3dgs" OR all:"gaussian splat"`

const (
	pageSize  = 100
	userAgent = "paperscope/0.1 (+https://github.com/fogbound/paperscope)"
)

// Config controls one fetch run.
type Config struct {
	BaseURL      string        // API endpoint; tests point this at httptest
	Query        string        // search_query value
	MaxResults   int           // safety cap across all pages
	RequestDelay time.Duration // minimum spacing between page requests
	Timeout      time.Duration // per-request HTTP timeout
}

// DefaultConfig returns the settings used by the daily pipeline run.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "https://export.arxiv.org/api/query",
		Query:        DefaultQuery,
		MaxResults:   5000,
		RequestDelay: 3 * time.Second,
		Timeout:      30 * time.Second,
	}
}

// Client fetches papers from the arXiv API.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	parser  *gofeed.Parser
}

// NewClient creates a client for the given config, filling in zero
// fields from DefaultConfig.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Query == "" {
		cfg.Query = def.Query
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}

	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}

	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
		parser:  gofeed.NewParser(),
	}
}

// FetchAll walks the paginated result set newest-first and returns
// every entry up to the configured cap. Entries are untagged; the
// tagger runs later in the pipeline.
func (c *Client) FetchAll(ctx context.Context) ([]catalog.Paper, error) {
	var papers []catalog.Paper

	for start := 0; start < c.cfg.MaxResults; start += pageSize {
		if err := c.limiter.Wait(ctx); err != nil {
			return papers, err
		}

		page, err := c.fetchPage(ctx, start)
		if err != nil {
			return papers, err
		}
		if len(page) == 0 {
			break
		}
		papers = append(papers, page...)
		logging.Debug("Fetched arXiv page", "start", start, "entries", len(page))

		// A short page means the result set is exhausted.
		if len(page) < pageSize {
			break
		}
	}

	return papers, nil
}

func (c *Client) fetchPage(ctx context.Context, start int) ([]catalog.Paper, error) {
	params := url.Values{}
	params.Set("search_query", c.cfg.Query)
	params.Set("start", strconv.Itoa(start))
	params.Set("max_results", strconv.Itoa(pageSize))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	feed, err := c.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse arXiv feed: %w", err)
	}

	papers := make([]catalog.Paper, 0, len(feed.Items))
	for _, entry := range feed.Items {
		p, ok := entryToPaper(entry)
		if !ok {
			continue
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// entryToPaper converts one Atom entry. Entries without a parseable
// arXiv id are skipped.
func entryToPaper(entry *gofeed.Item) (catalog.Paper, bool) {
	id := ExtractID(entry.GUID)
	if id == "" {
		id = ExtractID(entry.Link)
	}
	if id == "" {
		return catalog.Paper{}, false
	}

	p := catalog.Paper{
		ID:       id,
		Title:    collapseWhitespace(entry.Title),
		Abstract: collapseWhitespace(entry.Description),
		AbsURL:   "https://arxiv.org/abs/" + id,
		PDFURL:   "https://arxiv.org/pdf/" + id,
		Tags:     []string{},
	}

	for _, a := range entry.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	p.Categories = append(p.Categories, entry.Categories...)

	if entry.PublishedParsed != nil {
		p.Published = entry.PublishedParsed.UTC().Format(time.RFC3339)
	}
	if entry.UpdatedParsed != nil {
		p.Updated = entry.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	return p, true
}

var (
	versionSuffix = regexp.MustCompile(`v\d+$`)
	whitespaceRun = regexp.MustCompile(`\s+`)
)

// ExtractID pulls the bare arXiv id out of an abs URL, stripping any
// version suffix so "2401.12345v2" dedupes against "2401.12345v1".
func ExtractID(absURL string) string {
	const marker = "/abs/"
	idx := strings.Index(absURL, marker)
	if idx < 0 {
		return ""
	}
	id := absURL[idx+len(marker):]
	return versionSuffix.ReplaceAllString(id, "")
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
