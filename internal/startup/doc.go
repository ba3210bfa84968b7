// Package startup handles configuration loading and startup logging.
//
// # Configuration
//
// [LoadConfig] loads a .env file from the working directory when present,
// then reads GALLERY_* environment variables through viper. Command-line
// flags bound to the same viper instance take precedence.
//
//   - GALLERY_ROOT: Collection root directory (default: .)
//   - GALLERY_MARKER: First address segment (default: gallery)
//   - GALLERY_USE_SNAPSHOT: Serve the tree from the snapshot when it exists (default: false)
//   - GALLERY_SNAPSHOT: Snapshot path (default: <root>/.gallery.json)
//   - GALLERY_ENV: Deployment environment; "development" enables the top-level limit
//   - GALLERY_DEV_LIMIT: Top-level directory limit in development (default: root .limit file)
//   - GALLERY_DATABASE: SQLite database recording manifest runs (optional)
//   - GALLERY_METRICS_FILE: Prometheus textfile written after a manifest run (optional)
//   - GALLERY_MEMORY_LIMIT: Container memory limit, bytes or sizes like 512MB (optional)
//   - GALLERY_MEMORY_RATIO: Share of the memory limit given to the Go heap (default: 0.85)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
package startup
