package cli

import (
	"fmt"
	"time"

	"media-gallery/internal/database"
	"media-gallery/internal/logging"
	"media-gallery/internal/manifest"
	"media-gallery/internal/memory"
	"media-gallery/internal/metrics"
	"media-gallery/internal/startup"

	"github.com/spf13/cobra"
)

func newManifestCommand(a *app) *cobra.Command {
	var (
		workers      int
		skipSnapshot bool
	)
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Write the snapshot and the .folders/.images listings",
		Long: `manifest scans the whole collection, writes a .folders listing in every
directory with subdirectories and an .images listing in every directory with
media below the root, then writes the snapshot. Files whose content would not
change are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startup.LogBanner()
			memory.Configure(a.config.MemoryLimit, a.config.MemoryRatio)

			opts := manifest.Options{
				Marker:       a.config.Marker,
				SnapshotPath: a.config.SnapshotPath,
				Workers:      workers,
			}
			if skipSnapshot {
				opts.SnapshotPath = ""
			}

			if a.config.DatabasePath != "" {
				start := time.Now()
				db, err := database.New(cmd.Context(), a.config.DatabasePath)
				if err != nil {
					return fmt.Errorf("failed to initialize database: %w", err)
				}
				defer db.Close()
				startup.LogDatabaseInit(db.Path(), time.Since(start))
				opts.History = db
			}

			report, err := manifest.NewGenerator(a.src, a.src.Filesystem(), opts).Run(cmd.Context())

			if a.config.MetricsFile != "" {
				if werr := metrics.WriteTextfile(a.config.MetricsFile); werr != nil {
					logging.Warn("Failed to write metrics textfile: %v", werr)
				}
			}
			if err != nil {
				return fmt.Errorf("manifest failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d directories: %d created, %d updated, %d unchanged",
				report.Directories, report.Created, report.Updated, report.Unchanged)
			if opts.SnapshotPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "; snapshot %s", report.Snapshot)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent listing writes, 0 for automatic")
	cmd.Flags().BoolVar(&skipSnapshot, "skip-snapshot", false, "write listings only")
	return cmd
}
