package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appErrors "apextract/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "apextract",
	Short: "Export photos out of legacy Apple photo libraries",
	Long: "apextract reads the SQLite databases inside Aperture (.aplibrary) and\n" +
		"Photos (.photoslibrary) bundles, resolves each record to its file on disk\n" +
		"and re-materializes it into a date-partitioned export tree with rewritten\n" +
		"EXIF metadata.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}
