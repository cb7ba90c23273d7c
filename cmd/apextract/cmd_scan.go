package main

import (
	"os"

	"github.com/spf13/cobra"

	appErrors "apextract/internal/errors"
	"apextract/internal/infra/fs"
	"apextract/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Summarize media files under a directory tree",
	Long: "Scan walks a directory tree, aggregates media counts and sizes per\n" +
		"folder and groups folders into size categories. Useful for telling the\n" +
		"originals apart from the thumbnail caches inside a library bundle.",
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var (
	scanThresholds string
	scanAll        bool
	scanSubdirs    bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanThresholds, "thresholds", "t", "500KB,100KB", "Average-size category boundaries")
	scanCmd.Flags().BoolVar(&scanAll, "all", false, "Dump every folder instead of the grouped view")
	scanCmd.Flags().BoolVar(&scanSubdirs, "subdirs", false, "Show a per-subdirectory breakdown inside each group")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]
	info, err := os.Stat(root)
	if err != nil {
		return appErrors.Wrap(appErrors.NotFound, "scan", root, err)
	}
	if !info.IsDir() {
		return appErrors.New(appErrors.InvalidConfig, "scan target is not a directory: "+root)
	}

	thresholds, err := scan.ParseThresholds(scanThresholds)
	if err != nil {
		return appErrors.Wrap(appErrors.InvalidConfig, "thresholds", scanThresholds, err)
	}

	stats, err := scan.Run(fs.OSFS{}, root)
	if err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "walk", root, err)
	}

	scan.WriteReport(os.Stdout, root, stats, scan.Options{
		Thresholds:  thresholds,
		DumpAll:     scanAll,
		ShowSubdirs: scanSubdirs,
	})
	return nil
}
