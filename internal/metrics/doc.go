// Package metrics provides Prometheus instrumentation for the media gallery indexer.
//
// All metrics are registered on the default registry through promauto and are
// prefixed with "media_gallery_". The indexer is a batch tool rather than a
// server, so metrics are exported by writing a textfile for the node exporter
// textfile collector (WriteTextfile) instead of being scraped.
//
// # Metric Categories
//
// ## Build Metrics
//
//   - GalleryBuildsTotal: Counter of tree builds by source (live/snapshot)
//   - GalleryBuildDuration: Histogram of build duration by source
//   - GalleryDirectoriesVisited: Counter of directories visited by live builds
//   - GalleryCyclesSkipped: Counter of directories refused by the cycle guard
//
// ## Resolver Metrics
//
//   - CoverResolutionsTotal: Counter by the tier that produced the cover
//   - OrderResolutionsTotal: Counter by kind (folders/media) and source
//   - AliasLinesTotal: Counter of alias lines by outcome
//
// ## Tree Metrics
//
// Gauges set by Collect from the last built tree: TreeDirectories, TreeLeaves,
// TreeMediaFiles, TreeMissingCovers.
//
// ## Manifest Metrics
//
//   - ManifestRunsTotal: Counter of runs by status
//   - ManifestLastRunTimestamp, ManifestLastRunDuration: Gauges for the last run
//   - ManifestWritesTotal: Counter of writes by file and outcome
//
// ## Database and Filesystem Metrics
//
//   - DBQueryTotal, DBQueryDuration: run history queries
//   - Filesystem*: operation latency, errors and NFS retry behaviour, recorded
//     through the filesystem.Observer returned by NewFilesystemObserver
//
// # Usage
//
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	metrics.InitializeMetrics()
//	...
//	if err := metrics.WriteTextfile("/var/lib/node_exporter/gallery.prom"); err != nil {
//	    logging.Warn("%v", err)
//	}
package metrics
