package startup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"media-gallery/internal/controlfile"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/logging"
	"media-gallery/internal/memory"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// EnvPrefix is prepended to every configuration key when read from the
// environment, so "root" is read from GALLERY_ROOT.
const EnvPrefix = "GALLERY"

// EnvDevelopment is the GALLERY_ENV value that enables the top-level limit.
const EnvDevelopment = "development"

// DefaultSnapshotName is the snapshot file created in the collection root
// when GALLERY_SNAPSHOT is not set.
const DefaultSnapshotName = ".gallery.json"

// Config holds all application configuration
type Config struct {
	Root         string
	Marker       string
	UseSnapshot  bool
	SnapshotPath string
	Env          string
	// DevLimit caps the number of top-level directories; 0 defers to the
	// root .limit file.
	DevLimit int

	// Optional outputs; empty disables them.
	DatabasePath string
	MetricsFile  string

	// MemoryLimit is the container memory limit in bytes, 0 if unknown.
	MemoryLimit int64
	MemoryRatio float64
}

// NewViper returns a viper instance with every key defaulted and bound to
// its GALLERY_* environment variable. Callers may bind command-line flags
// on top before passing it to LoadConfig.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("root", ".")
	v.SetDefault("marker", gallery.DefaultMarker)
	v.SetDefault("use_snapshot", false)
	v.SetDefault("snapshot", "")
	v.SetDefault("env", "production")
	v.SetDefault("dev_limit", 0)
	v.SetDefault("database", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("memory_limit", "0")
	v.SetDefault("memory_ratio", memory.DefaultRatio)
	return v
}

// LoadConfig loads .env from the working directory when present, then reads
// and validates the configuration from v (NewViper when nil).
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn("Failed to load .env: %v", err)
	}
	if v == nil {
		v = NewViper()
	}

	root, err := filepath.Abs(v.GetString("root"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve collection root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("collection root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collection root %s is not a directory", root)
	}

	marker := strings.Trim(v.GetString("marker"), "/")
	if marker == "" || strings.Contains(marker, "/") {
		return nil, fmt.Errorf("invalid marker %q: must be a single non-empty segment", v.GetString("marker"))
	}

	config := &Config{
		Root:         root,
		Marker:       marker,
		UseSnapshot:  v.GetBool("use_snapshot"),
		SnapshotPath: v.GetString("snapshot"),
		Env:          strings.ToLower(strings.TrimSpace(v.GetString("env"))),
		DevLimit:     v.GetInt("dev_limit"),
		DatabasePath: v.GetString("database"),
		MetricsFile:  v.GetString("metrics_file"),
		MemoryLimit:  int64(v.GetSizeInBytes("memory_limit")),
		MemoryRatio:  v.GetFloat64("memory_ratio"),
	}

	if config.DevLimit < 0 {
		logging.Warn("Invalid %s_DEV_LIMIT %d, ignoring", EnvPrefix, config.DevLimit)
		config.DevLimit = 0
	}
	if config.SnapshotPath == "" {
		config.SnapshotPath = filepath.Join(root, DefaultSnapshotName)
	}
	for _, p := range []*string{&config.SnapshotPath, &config.DatabasePath, &config.MetricsFile} {
		if *p == "" {
			continue
		}
		if *p, err = filepath.Abs(*p); err != nil {
			return nil, fmt.Errorf("failed to resolve path: %w", err)
		}
	}

	logConfig(config)
	return config, nil
}

// IsDevelopment reports whether the development-only settings apply.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// TopLevelLimit returns the number of top-level directories to keep, 0 for
// all. The limit applies only in development: GALLERY_DEV_LIMIT wins over
// the first line of the root .limit file.
func (c *Config) TopLevelLimit(src filesystem.Source) int {
	if !c.IsDevelopment() {
		return 0
	}
	if c.DevLimit > 0 {
		return c.DevLimit
	}
	lines := controlfile.Read(src, "", controlfile.Limit)
	if len(lines) == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || n < 0 {
		logging.Warn("Ignoring invalid %s: %q", controlfile.Limit, lines[0])
		return 0
	}
	return n
}

// LoadOptions returns the tree loading options for src.
func (c *Config) LoadOptions(src filesystem.Source) gallery.LoadOptions {
	return gallery.LoadOptions{
		Options: gallery.Options{
			Marker:        c.Marker,
			TopLevelLimit: c.TopLevelLimit(src),
		},
		UseSnapshot:  c.UseSnapshot,
		SnapshotPath: c.SnapshotPath,
	}
}

func logConfig(c *Config) {
	logging.Debug("------------------------------------------------------------")
	logging.Debug("CONFIGURATION")
	logging.Debug("------------------------------------------------------------")
	logging.Debug("  %s_ROOT:          %s", EnvPrefix, c.Root)
	logging.Debug("  %s_MARKER:        %s", EnvPrefix, c.Marker)
	logging.Debug("  %s_USE_SNAPSHOT:  %v", EnvPrefix, c.UseSnapshot)
	logging.Debug("  %s_SNAPSHOT:      %s", EnvPrefix, c.SnapshotPath)
	logging.Debug("  %s_ENV:           %s", EnvPrefix, c.Env)
	logging.Debug("  %s_DEV_LIMIT:     %d", EnvPrefix, c.DevLimit)
	logging.Debug("  %s_DATABASE:      %s", EnvPrefix, orDisabled(c.DatabasePath))
	logging.Debug("  %s_METRICS_FILE:  %s", EnvPrefix, orDisabled(c.MetricsFile))
	logging.Debug("  %s_MEMORY_LIMIT:  %s", EnvPrefix, memory.FormatBytes(c.MemoryLimit))
	logging.Debug("  %s_MEMORY_RATIO:  %.2f", EnvPrefix, c.MemoryRatio)
	logging.Debug("  LOG_LEVEL:             %s", logging.GetLevel())
}

func orDisabled(s string) string {
	if s == "" {
		return "DISABLED"
	}
	return s
}

// LogBanner logs the application banner and system information. It is used
// by long-running commands; quick queries skip it.
func LogBanner() {
	banner := `
------------------------------------------------------------
   ____       _ _
  / ___| __ _| | | ___ _ __ _   _
 | |  _ / _' | | |/ _ \ '__| | | |
 | |_| | (_| | | |  __/ |  | |_| |
  \____|\__,_|_|_|\___|_|   \__, |
                            |___/
------------------------------------------------------------`
	for _, line := range strings.Split(banner, "\n") {
		logging.Info("%s", line)
	}
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
	logSystemInfo()
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}
	logging.Info("")
}

// LogDatabaseInit logs database initialization
func LogDatabaseInit(path string, duration time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("DATABASE INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  [OK] Database %s initialized in %v", path, duration)
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}
