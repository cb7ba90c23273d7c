package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/spf13/cobra"

	appErrors "apextract/internal/errors"
	"apextract/internal/infra/library"
	"apextract/internal/presentation"
)

var infoCmd = &cobra.Command{
	Use:   "info <library>",
	Short: "Show every database field for one photo",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var infoUUID string

func init() {
	infoCmd.Flags().StringVarP(&infoUUID, "uuid", "u", "", "Photo UUID (required)")
	infoCmd.MarkFlagRequired("uuid")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	source, err := library.Open(args[0])
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "open library", args[0], err)
	}
	defer source.Close()

	record, err := source.PhotoByUUID(context.Background(), infoUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Wrap(appErrors.NotFound, "photo", infoUUID, err)
		}
		return appErrors.Wrap(appErrors.DatabaseFailure, "query photo", infoUUID, err)
	}

	printer := presentation.Printer{Writer: os.Stdout}
	printer.PrintPhotoInfo(record)
	return nil
}
