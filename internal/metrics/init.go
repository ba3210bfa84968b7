package metrics

// Cover tiers, in the order the resolver tries them.
const (
	TierOverrideFile      = "override_file"
	TierOverrideSearch    = "override_search"
	TierOverrideDirectory = "override_directory"
	TierSingleMedia       = "single_media"
	TierChild             = "child"
	TierNone              = "none"
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is present in the first export.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, source := range []string{"live", "snapshot"} {
		GalleryBuildsTotal.WithLabelValues(source)
		GalleryBuildDuration.WithLabelValues(source)
	}

	for _, tier := range []string{TierOverrideFile, TierOverrideSearch, TierOverrideDirectory,
		TierSingleMedia, TierChild, TierNone} {
		CoverResolutionsTotal.WithLabelValues(tier)
	}

	for _, kind := range []string{"folders", "media"} {
		for _, source := range []string{"override", "fallback", "natural"} {
			OrderResolutionsTotal.WithLabelValues(kind, source)
		}
	}

	for _, outcome := range []string{"tile", "duplicate", "unresolved", "rejected"} {
		AliasLinesTotal.WithLabelValues(outcome)
	}

	for _, status := range []string{"success", "error"} {
		ManifestRunsTotal.WithLabelValues(status)
	}
	for _, file := range []string{"folders", "images", "snapshot"} {
		for _, outcome := range []string{"created", "updated", "unchanged", "error"} {
			ManifestWritesTotal.WithLabelValues(file, outcome)
		}
	}

	for _, op := range []string{"initialize_schema", "record_run", "list_runs", "set_metadata", "get_metadata"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, op := range []string{"read", "write", "stat", "readdir"} {
		FilesystemOperationDuration.WithLabelValues(op)
		FilesystemOperationErrors.WithLabelValues(op)
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
	}
}
