// Package cli implements the photo-dl command line interface.
package cli

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/handiism/catalog-photo-downloader/internal/config"
)

type options struct {
	configPath  string
	saveConfig  string
	catalogURL  string
	imageURL    string
	output      string
	storage     string
	s3Bucket    string
	s3Prefix    string
	timeout     time.Duration
	sanitize    bool
	inspect     bool
	dryRun      bool
	verbose     bool
	noProgress  bool
	reportPath  string
	failOnError bool
}

// NewRootCmd builds the photo-dl command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "photo-dl",
		Short: "Download every product photo listed in the shop catalog",
		Long: `photo-dl fetches the product catalog, collects the photo names of every
product and downloads each photo, one at a time, into a local directory or
an S3 bucket.

A photo that cannot be downloaded is reported and skipped; the run always
continues with the next one. By default the command exits with status 0
even when downloads failed; use --fail-on-error to change that.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to a YAML settings file")
	flags.StringVar(&opts.saveConfig, "save-config", "", "write the effective settings to this YAML file before running")
	flags.StringVar(&opts.catalogURL, "catalog-url", config.DefaultCatalogURL, "products endpoint")
	flags.StringVar(&opts.imageURL, "image-url", config.DefaultImageBaseURL, "base URL photo names are appended to")
	flags.StringVarP(&opts.output, "output", "o", "", "download directory (default: current directory)")
	flags.StringVar(&opts.storage, "storage", config.StorageLocal, "storage backend: local or s3")
	flags.StringVar(&opts.s3Bucket, "s3-bucket", "", "bucket for s3 storage")
	flags.StringVar(&opts.s3Prefix, "s3-prefix", "", "key prefix for s3 storage")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (0 disables it)")
	flags.BoolVar(&opts.sanitize, "sanitize", false, "replace characters that are invalid in file names")
	flags.BoolVar(&opts.inspect, "inspect", false, "log the dimensions of each downloaded photo (with --verbose)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "list photo names without downloading")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")
	flags.StringVar(&opts.reportPath, "report", "", "also write the run report to this YAML file")
	flags.BoolVar(&opts.failOnError, "fail-on-error", false, "exit non-zero when the catalog or any photo fails")

	return cmd
}

// loadSettings merges defaults, the settings file, the environment and the
// flags that were set explicitly, in that order.
func loadSettings(cmd *cobra.Command, opts *options) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if opts.configPath != "" {
		var err error
		settings, err = config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if err := settings.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog-url") {
		settings.CatalogURL = opts.catalogURL
	}
	if flags.Changed("image-url") {
		settings.ImageBaseURL = opts.imageURL
	}
	if flags.Changed("output") {
		settings.DownloadDir = opts.output
	}
	if flags.Changed("storage") {
		settings.Storage = opts.storage
	}
	if flags.Changed("s3-bucket") {
		settings.S3.Bucket = opts.s3Bucket
	}
	if flags.Changed("s3-prefix") {
		settings.S3.Prefix = opts.s3Prefix
	}
	if flags.Changed("timeout") {
		settings.Timeout = opts.timeout
	}
	if opts.sanitize {
		settings.SanitizeFileNames = true
	}
	if opts.inspect {
		settings.InspectImages = true
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}
