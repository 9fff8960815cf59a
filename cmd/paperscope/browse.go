package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fogbound/paperscope/internal/catalog"
	"github.com/fogbound/paperscope/internal/config"
	"github.com/fogbound/paperscope/internal/logging"
	"github.com/fogbound/paperscope/internal/query"
	"github.com/fogbound/paperscope/internal/store"
	"github.com/fogbound/paperscope/internal/ui"
	"github.com/fogbound/paperscope/internal/urlstate"
)

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().String("catalog", "", "browse a snapshot JSON file instead of the archive")
	cmd.Flags().String("link", "", "restore a shared view (query string or full URL)")
	cmd.Flags().String("site-url", "", "base URL used when building share links")
}

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser",
		RunE:  runBrowse,
	}
	addBrowseFlags(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)

	if err := logging.Init(dir); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
	}
	defer logging.Close()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	cfg := config.Load(dir)

	// A shared link restores the exact view before the first render.
	// The query string can arrive via --link or as a bare argument.
	initial := query.NewFilterState()
	if link, _ := cmd.Flags().GetString("link"); link != "" {
		initial = urlstate.Restore(link)
	} else if len(args) > 0 {
		initial = urlstate.Restore(args[0])
	}

	siteURL, _ := cmd.Flags().GetString("site-url")
	if siteURL == "" {
		siteURL = viper.GetString("site-url")
	}

	logging.Info("Starting browser", "papers", cat.Len(), "theme", cfg.Theme)

	m := ui.New(cat, cfg, dir, siteURL, initial)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// loadCatalog reads the snapshot JSON when --catalog is given,
// otherwise it snapshots the local archive.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		return catalog.Load(raw)
	}

	db, err := store.New(archivePath(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()
	return db.Snapshot()
}
