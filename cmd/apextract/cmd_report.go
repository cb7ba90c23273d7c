package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	appErrors "apextract/internal/errors"
	"apextract/internal/infra/library"
	"apextract/internal/presentation"
)

var reportCmd = &cobra.Command{
	Use:   "report <library>",
	Short: "Show photo counts per year",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

var reportCSV string

func init() {
	reportCmd.Flags().StringVar(&reportCSV, "csv", "", "Write the report as CSV to this file instead")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	source, err := library.Open(args[0])
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "open library", args[0], err)
	}
	defer source.Close()

	counts, err := source.YearCounts(context.Background())
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "year counts", args[0], err)
	}

	if reportCSV != "" {
		f, err := os.Create(reportCSV)
		if err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "create", reportCSV, err)
		}
		defer f.Close()
		if err := presentation.WriteYearReportCSV(f, counts); err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "write csv", reportCSV, err)
		}
		return nil
	}

	printer := presentation.Printer{Writer: os.Stdout}
	printer.PrintYearReport(counts)
	return nil
}
