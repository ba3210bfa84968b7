package metrics

import (
	"fmt"

	"media-gallery/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsProvider interface for collecting stats
type StatsProvider interface {
	GetStats() Stats
}

// Stats holds the shape of a built tree
type Stats struct {
	Directories   int
	Leaves        int
	MediaFiles    int
	MissingCovers int
}

// Collect copies the provider's stats into the tree gauges.
func Collect(provider StatsProvider) {
	if provider == nil {
		return
	}

	stats := provider.GetStats()

	TreeDirectories.Set(float64(stats.Directories))
	TreeLeaves.Set(float64(stats.Leaves))
	TreeMediaFiles.Set(float64(stats.MediaFiles))
	TreeMissingCovers.Set(float64(stats.MissingCovers))

	logging.Debug("Metrics collected: directories=%d, leaves=%d, media=%d, missing covers=%d",
		stats.Directories, stats.Leaves, stats.MediaFiles, stats.MissingCovers)
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for pickup by the node exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
