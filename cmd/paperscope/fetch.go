package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fogbound/paperscope/internal/arxiv"
	"github.com/fogbound/paperscope/internal/logging"
	"github.com/fogbound/paperscope/internal/store"
	"github.com/fogbound/paperscope/internal/tagging"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch new papers from arXiv into the archive",
		RunE:  runFetch,
	}
	cmd.Flags().String("query", "", "arXiv search query (default: the Gaussian Splatting topic query)")
	cmd.Flags().Int("max", 0, "maximum papers to fetch (0 = default cap)")
	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	dir := dataDir(cmd)
	if err := logging.Init(dir); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: logging disabled:", err)
	}
	defer logging.Close()

	cfg := arxiv.DefaultConfig()
	if q, _ := cmd.Flags().GetString("query"); q != "" {
		cfg.Query = q
	} else if q := viper.GetString("query"); q != "" {
		cfg.Query = q
	}
	if max, _ := cmd.Flags().GetInt("max"); max > 0 {
		cfg.MaxResults = max
	}
	if d := viper.GetDuration("request-delay"); d > 0 {
		cfg.RequestDelay = d
	}

	db, err := store.New(archivePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer db.Close()

	started := time.Now()
	logging.Info("Fetching papers", "query", cfg.Query, "max", cfg.MaxResults)
	fmt.Println("Fetching papers from arXiv...")

	client := arxiv.NewClient(cfg)
	papers, err := client.FetchAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	// Freshly fetched papers get rule-based tags; the upsert keeps any
	// tags already curated in the archive.
	for i := range papers {
		papers[i].Tags = tagging.Assign(papers[i].Title, papers[i].Abstract)
	}

	added, err := db.Upsert(papers)
	if err != nil {
		return fmt.Errorf("failed to store papers: %w", err)
	}

	if err := db.RecordRun(started, len(papers), added); err != nil {
		logging.Warn("Failed to record run", "error", err)
	}

	total, _ := db.Count()
	logging.Info("Fetch complete", "fetched", len(papers), "added", added, "total", total)
	fmt.Printf("Fetched %d papers, %d new. Archive now holds %d.\n", len(papers), added, total)
	return nil
}
