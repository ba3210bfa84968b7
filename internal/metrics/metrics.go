package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Build metrics
var (
	GalleryBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_builds_total",
			Help: "Total number of tree builds by source",
		},
		[]string{"source"}, // "live" or "snapshot"
	)

	GalleryBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_build_duration_seconds",
			Help:    "Tree build duration in seconds by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	GalleryDirectoriesVisited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_directories_visited_total",
			Help: "Total number of directories visited by live builds",
		},
	)

	GalleryCyclesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_cycles_skipped_total",
			Help: "Total number of directories skipped because they were already visited in the same build",
		},
	)
)

// Resolver metrics
var (
	CoverResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_cover_resolutions_total",
			Help: "Total number of cover resolutions by the tier that produced them",
		},
		[]string{"tier"},
	)

	OrderResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_order_resolutions_total",
			Help: "Total number of order resolutions by kind and source",
		},
		[]string{"kind", "source"}, // kind: "folders"/"media"; source: "override"/"fallback"/"natural"
	)

	AliasLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_alias_lines_total",
			Help: "Total number of alias lines processed by outcome",
		},
		[]string{"outcome"}, // "tile", "duplicate", "unresolved", "rejected"
	)
)

// Tree size metrics, set from the last build.
var (
	TreeDirectories = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_directories",
			Help: "Number of directories in the last built tree",
		},
	)

	TreeLeaves = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_leaves",
			Help: "Number of leaf directories in the last built tree",
		},
	)

	TreeMediaFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_media_files",
			Help: "Number of media entries exposed by leaves in the last built tree",
		},
	)

	TreeMissingCovers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_tree_missing_covers",
			Help: "Number of directories without a cover in the last built tree",
		},
	)
)

// Manifest metrics
var (
	ManifestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_manifest_runs_total",
			Help: "Total number of manifest runs by status",
		},
		[]string{"status"},
	)

	ManifestLastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_manifest_last_run_timestamp",
			Help: "Unix timestamp of the last manifest run",
		},
	)

	ManifestLastRunDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_manifest_last_run_duration_seconds",
			Help: "Duration of the last manifest run in seconds",
		},
	)

	ManifestWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_manifest_writes_total",
			Help: "Total number of manifest file writes by file and outcome",
		},
		[]string{"file", "outcome"}, // outcome: "created", "updated", "unchanged", "error"
	)
)

// Database metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_filesystem_operation_duration_seconds",
			Help:    "Filesystem operation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_operation_errors_total",
			Help: "Total number of failed filesystem operations",
		},
		[]string{"operation"},
	)

	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors",
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
