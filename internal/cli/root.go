package cli

import (
	"context"
	"fmt"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/metrics"
	"media-gallery/internal/startup"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded the configuration.
type app struct {
	v      *viper.Viper
	config *startup.Config
	src    *filesystem.BillySource
}

// flagKeys maps persistent flags to their configuration keys.
var flagKeys = map[string]string{
	"root":         "root",
	"marker":       "marker",
	"snapshot":     "snapshot",
	"use-snapshot": "use_snapshot",
	"database":     "database",
	"metrics-file": "metrics_file",
}

// NewRootCommand builds the gallery command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: startup.NewViper()}

	root := &cobra.Command{
		Use:   "gallery",
		Short: "Index a media collection into a navigable gallery tree",
		Long: `gallery indexes a directory of images into a tree of folders, resolving
display order and a cover image for every directory from the control files
(.order, .folders, .images, .cover, .aliases, .ignore) found alongside them.

Every flag can also be set through its GALLERY_* environment variable or a
.env file in the working directory.`,
		SilenceUsage: true,
		// main reports the error through the logger.
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("root", ".", "collection root directory")
	flags.String("marker", gallery.DefaultMarker, "first segment of every public address")
	flags.String("snapshot", "", "snapshot path (default <root>/"+startup.DefaultSnapshotName+")")
	flags.Bool("use-snapshot", false, "read the tree from the snapshot when it exists")
	flags.String("database", "", "SQLite database recording manifest runs")
	flags.String("metrics-file", "", "Prometheus textfile written after a manifest run")
	for flag, key := range flagKeys {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", flag, err))
		}
	}

	root.AddCommand(
		newTreeCommand(a),
		newShowCommand(a),
		newCoverCommand(a),
		newManifestCommand(a),
		newStatusCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line until ctx is cancelled. The error is
// returned unprinted.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) setup(_ *cobra.Command, _ []string) error {
	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	config, err := startup.LoadConfig(a.v)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	src, err := filesystem.Open(config.Root)
	if err != nil {
		return err
	}
	a.config = config
	a.src = src
	return nil
}

// loadTree returns the tree from the snapshot or a live scan, as configured.
func (a *app) loadTree() (*gallery.Tree, error) {
	return gallery.Load(a.src, a.config.LoadOptions(a.src))
}
