package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"apextract/internal/app"
	"apextract/internal/config"
	"apextract/internal/domain"
	appErrors "apextract/internal/errors"
	"apextract/internal/infra/exifcodec"
	"apextract/internal/infra/fs"
	"apextract/internal/infra/library"
	"apextract/internal/logging"
	"apextract/internal/presentation"
	"apextract/internal/tui"
)

var exportCmd = &cobra.Command{
	Use:   "export <library>",
	Short: "Export one year of photos into a date-partitioned tree",
	Long: "Export reads every non-trashed photo captured in the given year,\n" +
		"locates its source file under the library bundle and writes it to\n" +
		"<destination>/<month>/ap_extracted/ with EXIF rebuilt from the database.",
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var (
	exportYear        int
	exportDestination string
	exportTUI         bool
	exportVerbose     bool
	exportCopyOnly    bool
)

func init() {
	exportCmd.Flags().IntVarP(&exportYear, "year", "y", 0, "Year to export (required)")
	exportCmd.Flags().StringVarP(&exportDestination, "destination", "d", "", "Destination directory (required)")
	exportCmd.Flags().BoolVar(&exportTUI, "tui", false, "Interactive progress display")
	exportCmd.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Verbose output")
	exportCmd.Flags().BoolVar(&exportCopyOnly, "copy-only", false, "Copy files without rewriting metadata")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.ExportConfig{
		LibraryPath: args[0],
		Year:        exportYear,
		Destination: exportDestination,
		Verbose:     exportVerbose,
		TUI:         exportTUI,
		CopyOnly:    exportCopyOnly,
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "open library", cfg.LibraryPath, err)
	}
	defer source.Close()

	ctx := context.Background()
	records, err := source.PhotosForYear(ctx, cfg.Year)
	if err != nil {
		return appErrors.Wrap(appErrors.DatabaseFailure, "query year", cfg.LibraryPath, err)
	}

	filesystem := fs.OSFS{}
	if err := filesystem.MkdirAll(cfg.Destination, 0o755); err != nil {
		return appErrors.Wrap(appErrors.IOFailure, "mkdir", cfg.Destination, err)
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.TUI {
		logWriter = io.Discard
	}
	logger := logging.New(logWriter, cfg.Verbose)
	writer := exifcodec.NewWriter(filesystem, logger, cfg.CopyOnly)

	if cfg.TUI {
		return runExportTUI(ctx, cfg, source, records, filesystem, writer, logger)
	}

	printer := presentation.Printer{Writer: os.Stdout, Verbose: cfg.Verbose}
	printer.ExportStarting(cfg.Year, len(records), cfg.Destination)

	exporter := app.Exporter{
		FS:         filesystem,
		Writer:     writer,
		Logger:     logger,
		OnProgress: printer.RecordOutcome,
	}
	tally, err := exporter.Run(ctx, records, cfg.LibraryPath, cfg.Destination, source.Layout())
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "export", cfg.Destination, err)
	}

	printer.PrintTally(tally)
	return nil
}

// runExportTUI drives the export from a goroutine and streams progress into
// the bubbletea program via Send.
func runExportTUI(ctx context.Context, cfg config.ExportConfig, source app.RecordSource, records []domain.PhotoRecord, filesystem fs.OSFS, writer app.MetadataWriter, logger logging.Logger) error {
	model := tui.NewModel(tui.Config{
		LibraryPath: cfg.LibraryPath,
		Destination: cfg.Destination,
		Year:        cfg.Year,
	})
	program := tea.NewProgram(model)

	go func() {
		program.Send(tui.RecordsReadyMsg{Total: len(records)})

		exporter := app.Exporter{
			FS:     filesystem,
			Writer: writer,
			Logger: logger,
			OnProgress: func(index, total int, outcome domain.ExportOutcome) {
				program.Send(tui.ProgressMsg{Current: index, Total: total, Outcome: outcome})
			},
		}
		tally, err := exporter.Run(ctx, records, cfg.LibraryPath, cfg.Destination, source.Layout())
		if err != nil {
			program.Send(tui.ErrorMsg{Err: err})
			return
		}
		program.Send(tui.DoneMsg{Tally: tally})
	}()

	final, err := program.Run()
	if err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return appErrors.Wrap(appErrors.Internal, "export", cfg.Destination, m.Err)
	}
	return nil
}
