package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

const feedHeader = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>`

const feedFooter = `</feed>`

func atomEntry(id, title, published string) string {
	return fmt.Sprintf(`
  <entry>
    <id>http://arxiv.org/abs/%s</id>
    <title>%s</title>
    <summary>  A   splatting
      method.  </summary>
    <published>%s</published>
    <updated>%s</updated>
    <author><name>Ada Lovelace</name></author>
    <author><name>Grace Hopper</name></author>
    <category term="cs.CV"/>
    <link href="http://arxiv.org/abs/%s" rel="alternate" type="text/html"/>
  </entry>`, id, title, published, published, id)
}

func testServer(t *testing.T, pages map[int]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		body, ok := pages[start]
		if !ok {
			body = ""
		}
		fmt.Fprint(w, feedHeader+body+feedFooter)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:    baseURL,
		Query:      "all:test",
		MaxResults: 500,
		// No request delay in tests.
	})
}

func TestFetchAll(t *testing.T) {
	srv := testServer(t, map[int]string{
		0: atomEntry("2401.00001v2", "First Paper", "2024-01-05T10:00:00Z") +
			atomEntry("2401.00002v1", "Second Paper", "2024-01-04T10:00:00Z"),
	})
	defer srv.Close()

	papers, err := testClient(srv.URL).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	p := papers[0]
	if p.ID != "2401.00001" {
		t.Errorf("ID = %q, version suffix should be stripped", p.ID)
	}
	if p.Title != "First Paper" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Abstract != "A splatting method." {
		t.Errorf("Abstract = %q, whitespace should be collapsed", p.Abstract)
	}
	if len(p.Authors) != 2 || p.Authors[0] != "Ada Lovelace" {
		t.Errorf("Authors = %v", p.Authors)
	}
	if p.AbsURL != "https://arxiv.org/abs/2401.00001" {
		t.Errorf("AbsURL = %q", p.AbsURL)
	}
	if p.PDFURL != "https://arxiv.org/pdf/2401.00001" {
		t.Errorf("PDFURL = %q", p.PDFURL)
	}
	if p.Published != "2024-01-05T10:00:00Z" {
		t.Errorf("Published = %q", p.Published)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Errorf("Tags = %v, fetcher must leave papers untagged", p.Tags)
	}
	if len(p.Categories) != 1 || p.Categories[0] != "cs.CV" {
		t.Errorf("Categories = %v", p.Categories)
	}
}

func TestFetchAllStopsOnShortPage(t *testing.T) {
	// One short page; FetchAll must not request page two.
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, feedHeader+atomEntry("2401.00001", "Only Paper", "2024-01-05T10:00:00Z")+feedFooter)
	}))
	defer srv.Close()

	papers, err := testClient(srv.URL).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(papers) != 1 {
		t.Errorf("got %d papers, want 1", len(papers))
	}
	if requests != 1 {
		t.Errorf("made %d requests, short page should stop pagination", requests)
	}
}

func TestFetchAllServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 503")
	}
}

func TestFetchAllContextCanceled(t *testing.T) {
	srv := testServer(t, nil)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := testClient(srv.URL).FetchAll(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestExtractID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2401.12345v2", "2401.12345"},
		{"https://arxiv.org/abs/2401.12345", "2401.12345"},
		{"http://arxiv.org/abs/cs/0112017v1", "cs/0112017"},
		{"https://example.org/paper/123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractID(tt.in); got != tt.want {
			t.Errorf("ExtractID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
