package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/catalog-photo-downloader/internal/catalog"
	"github.com/handiism/catalog-photo-downloader/internal/config"
	"github.com/handiism/catalog-photo-downloader/internal/download"
	ioutils "github.com/handiism/catalog-photo-downloader/internal/io"
	"github.com/handiism/catalog-photo-downloader/internal/model"
	"github.com/handiism/catalog-photo-downloader/internal/report"
	"github.com/handiism/catalog-photo-downloader/internal/storage"
)

const progressInterval = 200 * time.Millisecond

func run(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	logger := newLogger(errOut, opts.verbose)

	settings, err := loadSettings(cmd, opts)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if opts.saveConfig != "" {
		if err := settings.Save(opts.saveConfig); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		logger.Info("Settings saved", "path", opts.saveConfig)
	}
	logger.Debug("Loaded settings",
		"catalog_url", settings.CatalogURL,
		"image_base_url", settings.ImageBaseURL,
		"storage", settings.Storage,
		"download_dir", settings.DownloadDir,
		"timeout", settings.Timeout)

	if settings.Storage == config.StorageLocal {
		if err := ioutils.EnsureDir(settings.DownloadDir); err != nil {
			return fmt.Errorf("failed to create download directory: %w", err)
		}
	}

	store, err := storage.New(ctx, settings)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	console := newConsole(out, errOut, opts.verbose, !opts.noProgress && !opts.dryRun)
	manager := download.NewManager(settings, store, console.Event)

	if err := manager.Initialize(ctx); err != nil {
		return fatal(out, err, opts.failOnError)
	}

	if opts.dryRun {
		fmt.Fprintln(out, "\n[Dry run - not downloading]")
		for _, name := range manager.PhotoNames() {
			fmt.Fprintf(out, "  %s\n", download.PhotoURL(settings.ImageBaseURL, name))
		}
		return nil
	}

	result, runErr := startDownloads(ctx, manager, console)
	if result != nil {
		// An aborted run ends with the error alone, not a summary.
		if runErr == nil {
			report.Print(out, result)
		}
		logger.Info("Run finished",
			"run_id", result.RunID,
			"total", result.Total,
			"succeeded", result.Succeeded(),
			"failed", len(result.Failed),
			"duration", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))

		if opts.reportPath != "" {
			if err := report.WriteYAML(opts.reportPath, result); err != nil {
				logger.Warn("Failed to write report", "path", opts.reportPath, "error", err)
			} else {
				logger.Info("Report written", "path", opts.reportPath)
			}
		}
	}

	if runErr != nil {
		return fatal(out, runErr, opts.failOnError)
	}
	if opts.failOnError && result != nil && len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d photos failed to download", len(result.Failed), result.Total)
	}
	return nil
}

// startDownloads runs the download loop next to a progress renderer.
func startDownloads(ctx context.Context, manager *download.Manager, console *console) (*model.Report, error) {
	var result *model.Report
	done := make(chan struct{})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		var err error
		result, err = manager.StartDownloads(gctx)
		return err
	})
	g.Go(func() error {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				console.ClearProgress()
				return nil
			case <-ticker.C:
				processed, total, _, received := manager.GetProgress()
				console.DrawProgress(processed, total, received)
			}
		}
	})

	err := g.Wait()
	return result, err
}

// fatal prints a run-ending error. The process still exits 0 unless strict
// is set.
func fatal(w io.Writer, err error, strict bool) error {
	var (
		fetchErr *catalog.FetchError
		parseErr *catalog.ParseError
	)

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "Interrupted.")
	case errors.As(err, &fetchErr):
		fmt.Fprintf(w, "Error requesting the catalog: %v\n", fetchErr.Err)
	case errors.As(err, &parseErr):
		fmt.Fprintf(w, "Error parsing the catalog: %v\n", parseErr.Err)
	default:
		fmt.Fprintf(w, "Unexpected error: %v\n", err)
	}

	if strict {
		return err
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
