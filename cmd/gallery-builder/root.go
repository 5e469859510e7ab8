package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gallery-builder/internal/filesystem"
	"gallery-builder/internal/gallery"
	"gallery-builder/internal/importer"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/memory"
	"gallery-builder/internal/metrics"
	"gallery-builder/internal/startup"
)

type rootFlags struct {
	root        string
	config      string
	source      string
	metricsFile string
	logLevel    string
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "gallery-builder",
		Short:         "Import photos and rebuild the web gallery manifest",
		Args:          cobra.NoArgs,
		Version:       startup.GetBuildInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := startup.Overrides{
				Root:       flags.root,
				ConfigFile: flags.config,
				LogLevel:   flags.logLevel,
			}
			if cmd.Flags().Changed("source") {
				overrides.Source = &flags.source
			}
			if cmd.Flags().Changed("metrics-file") {
				overrides.MetricsFile = &flags.metricsFile
			}

			cfg, err := startup.LoadConfig(overrides)
			if err != nil {
				return err
			}
			return runPipeline(cmd.OutOrStdout(), cfg)
		},
	}

	rootCmd.Flags().StringVar(&flags.source, "source", startup.DefaultSource, "Folder to import photos from before building (empty to skip the import)")
	rootCmd.Flags().StringVar(&flags.root, "root", "", "Project root holding the gallery (default: the executable's directory)")
	rootCmd.Flags().StringVarP(&flags.config, "config", "c", "", "Configuration file path (default: <root>/gallery.toml when present)")
	rootCmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	return rootCmd
}

// runPipeline imports, builds and reports. Status lines go to out.
func runPipeline(out io.Writer, cfg *startup.Config) error {
	start := time.Now()

	logging.SetLevel(cfg.LogLevel)
	startup.LogConfig(cfg)
	memory.Configure()

	filesystem.SetObserver(metrics.NewFilesystemObserver())
	metrics.InitializeMetrics()
	if cfg.MetricsTextfile != "" {
		defer writeMetrics(cfg.MetricsTextfile, start)
	}

	if err := os.MkdirAll(cfg.ProjectRoot, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	lock, err := startup.AcquireRunLock(cfg.LockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	sum := &runSummary{}

	if cfg.SourceDir != "" {
		res, err := importer.ImportTree(cfg.SourceDir, cfg.FullDir)
		if err != nil {
			return err
		}
		sum.imported = res
		fmt.Fprintf(out, "✅ Imported %d photos into %s\n", res.Files, cfg.FullDir)
	}

	thumbnailer := media.NewThumbnailer(cfg.ThumbMaxDimension, cfg.JPEGQuality)
	builder := gallery.NewBuilder(cfg.GalleryOptions(), thumbnailer)

	report, err := builder.BuildReport(cfg.FullDir, cfg.ThumbDir, cfg.ManifestPath)
	if err != nil {
		return err
	}
	sum.report = report
	sum.elapsed = time.Since(start)

	fmt.Fprintf(out, "✅ Rebuilt %s with %d photos\n", displayName(cfg.ManifestPath), report.Photos())
	fmt.Fprintf(out, "✅ Thumbnails updated in %s\n", cfg.ThumbDir)

	if isTerminal(out) {
		fmt.Fprintln(out, renderSummary(sum))
	}
	return nil
}

func writeMetrics(path string, start time.Time) {
	metrics.RunDuration.Set(time.Since(start).Seconds())
	if err := metrics.WriteTextfile(path); err != nil {
		logging.Warn("Failed to write metrics textfile %s: %v", path, err)
		return
	}
	logging.Debug("Wrote metrics to %s", path)
}
