// Command paperscope maintains and browses a catalog of Gaussian
// Splatting papers from arXiv.
//
// Subcommands: fetch pulls new papers into the local archive, build
// renders the static site, feed writes the RSS feed, and browse (the
// default) opens the interactive catalog browser.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0-dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paperscope",
		Short: "Browse and maintain a Gaussian Splatting paper catalog",
		Long: `PaperScope tracks Gaussian Splatting papers on arXiv.

It keeps a local archive, renders a static site with an RSS feed, and
provides an interactive terminal browser over the catalog with search,
facet filters, sorting and shareable deep links.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation opens the browser.
			return runBrowse(cmd, args)
		},
	}

	cmd.PersistentFlags().String("data-dir", "", "data directory (default ~/.paperscope)")
	cmd.PersistentFlags().String("config", "", "config file (default <data-dir>/paperscope.yaml)")

	cobra.OnInitialize(func() { initViper(cmd) })

	addBrowseFlags(cmd)
	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newFeedCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// initViper wires the config file and PAPERSCOPE_* environment
// variables under every flag.
func initViper(cmd *cobra.Command) {
	if cfgFile, _ := cmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paperscope")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(dataDir(cmd))
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("PAPERSCOPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()
}

// dataDir resolves the data directory from the flag, falling back to
// ~/.paperscope.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("data-dir"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".paperscope"
	}
	return filepath.Join(home, ".paperscope")
}

func archivePath(cmd *cobra.Command) string {
	if p := viper.GetString("archive"); p != "" {
		return p
	}
	return filepath.Join(dataDir(cmd), "papers.db")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("paperscope", version)
		},
	}
}
