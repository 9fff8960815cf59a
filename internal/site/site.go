// Package site renders the static catalog page from a snapshot.
//
// The page template is embedded in the binary. Free-text fields
// (titles, authors, abstracts, categories, ids) pass through
// html/template's contextual escaping before landing in markup; link
// URLs come from the trusted pipeline and are emitted as-is, with a
// neutral "#" placeholder when absent.
package site

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/fogbound/paperscope/internal/catalog"
)

//go:embed index.html.tmpl
var pageTemplate string

// pageData is the template's root context.
type pageData struct {
	Title       string
	GeneratedAt string
	Catalog     *catalog.Catalog
	AddedToday  int
	TagFacets   []tagFacet
}

type tagFacet struct {
	Name  string
	Count int
}

// Build renders index.html and copies the snapshot JSON into outDir.
// The snapshot is written alongside the page so the in-browser engine
// (and any downstream consumer) can lazy-load it.
func Build(c *catalog.Catalog, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmpl, err := template.New("index").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse page template: %w", err)
	}

	data := pageData{
		Title:       "Gaussian Splatting Papers",
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Catalog:     c,
		AddedToday:  c.CountOnDate(time.Now()),
	}
	for _, tag := range c.Tags() {
		data.TagFacets = append(data.TagFacets, tagFacet{Name: tag, Count: c.TagCount(tag)})
	}

	page, err := os.Create(filepath.Join(outDir, "index.html"))
	if err != nil {
		return fmt.Errorf("failed to create index.html: %w", err)
	}
	defer page.Close()

	if err := tmpl.Execute(page, data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	snapshot, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "papers.json"), snapshot, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}
