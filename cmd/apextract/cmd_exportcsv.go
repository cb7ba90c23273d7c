package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	appErrors "apextract/internal/errors"
	"apextract/internal/infra/library"
	"apextract/internal/presentation"
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv <library>",
	Short: "Dump photo metadata as CSV",
	Long: "Export-csv writes one row per non-trashed photo with every metadata\n" +
		"column the library database exposes. Without --output the CSV goes to\n" +
		"stdout.",
	Args: cobra.ExactArgs(1),
	RunE: runExportCSV,
}

var (
	exportCSVOutput string
	exportCSVLimit  int
)

func init() {
	exportCSVCmd.Flags().StringVarP(&exportCSVOutput, "output", "o", "", "Output file (default stdout)")
	exportCSVCmd.Flags().IntVar(&exportCSVLimit, "limit", 0, "Limit the number of rows (0 = all)")
	rootCmd.AddCommand(exportCSVCmd)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	source, err := library.Open(args[0])
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "open library", args[0], err)
	}
	defer source.Close()

	records, err := source.AllPhotos(context.Background(), exportCSVLimit)
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "query photos", args[0], err)
	}

	out := io.Writer(os.Stdout)
	if exportCSVOutput != "" {
		f, err := os.Create(exportCSVOutput)
		if err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "create", exportCSVOutput, err)
		}
		defer f.Close()
		out = f
	}

	if err := presentation.WriteMetadataCSV(out, records); err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "write csv", exportCSVOutput, err)
	}
	return nil
}
