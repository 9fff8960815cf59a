package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fogbound/paperscope/internal/feed"
	"github.com/fogbound/paperscope/internal/logging"
	"github.com/fogbound/paperscope/internal/site"
	"github.com/fogbound/paperscope/internal/store"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the static site from the archive",
		RunE:  runBuild,
	}
	cmd.Flags().String("out", "", "output directory (default <data-dir>/site)")
	return cmd
}

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Write the RSS feed from the archive",
		RunE:  runFeed,
	}
	cmd.Flags().String("out", "", "output directory (default <data-dir>/site)")
	return cmd
}

func outDir(cmd *cobra.Command) string {
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return out
	}
	if out := viper.GetString("out"); out != "" {
		return out
	}
	return filepath.Join(dataDir(cmd), "site")
}

func feedConfig() feed.Config {
	cfg := feed.DefaultConfig()
	if u := viper.GetString("site-url"); u != "" {
		cfg.SiteURL = u
	}
	if t := viper.GetString("feed-title"); t != "" {
		cfg.Title = t
	}
	return cfg
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	if err := logging.Init(dir); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
	}
	defer logging.Close()

	db, err := store.New(archivePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()

	cat, err := db.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot archive: %w", err)
	}

	out := outDir(cmd)
	if err := site.Build(cat, out); err != nil {
		return err
	}

	logging.Info("Site built", "papers", cat.Len(), "out", out)
	fmt.Printf("Built site with %d papers in %s\n", cat.Len(), out)
	return nil
}

func runFeed(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	if err := logging.Init(dir); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
	}
	defer logging.Close()

	db, err := store.New(archivePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()

	cat, err := db.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot archive: %w", err)
	}

	body, err := feed.Generate(cat, feedConfig())
	if err != nil {
		return err
	}

	out := outDir(cmd)
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(out, "feed.xml")
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}

	logging.Info("Feed written", "items", min(cat.Len(), feed.MaxItems), "path", path)
	fmt.Printf("Wrote %s\n", path)
	return nil
}
