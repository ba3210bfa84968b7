package startup

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/memory"
)

var galleryEnv = []string{
	"GALLERY_ROOT", "GALLERY_MARKER", "GALLERY_USE_SNAPSHOT", "GALLERY_SNAPSHOT",
	"GALLERY_ENV", "GALLERY_DEV_LIMIT", "GALLERY_DATABASE", "GALLERY_METRICS_FILE",
	"GALLERY_MEMORY_LIMIT", "GALLERY_MEMORY_RATIO",
}

// clearEnv blanks every GALLERY_* variable; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range galleryEnv {
		t.Setenv(key, "")
	}
}

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	t.Setenv("GALLERY_ROOT", root)

	config, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Root != root {
		t.Errorf("Root = %q, want %q", config.Root, root)
	}
	if config.Marker != "gallery" {
		t.Errorf("Marker = %q, want gallery", config.Marker)
	}
	if config.UseSnapshot {
		t.Error("UseSnapshot should default to false")
	}
	if want := filepath.Join(root, DefaultSnapshotName); config.SnapshotPath != want {
		t.Errorf("SnapshotPath = %q, want %q", config.SnapshotPath, want)
	}
	if config.IsDevelopment() {
		t.Error("IsDevelopment() should be false by default")
	}
	if config.MemoryLimit != 0 || config.MemoryRatio != memory.DefaultRatio {
		t.Errorf("MemoryLimit = %d, MemoryRatio = %v", config.MemoryLimit, config.MemoryRatio)
	}
	if config.DatabasePath != "" || config.MetricsFile != "" {
		t.Errorf("optional outputs should be disabled, got %q and %q", config.DatabasePath, config.MetricsFile)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	out := t.TempDir()
	t.Setenv("GALLERY_ROOT", root)
	t.Setenv("GALLERY_MARKER", "/photos/")
	t.Setenv("GALLERY_USE_SNAPSHOT", "true")
	t.Setenv("GALLERY_SNAPSHOT", filepath.Join(out, "tree.json"))
	t.Setenv("GALLERY_ENV", "Development")
	t.Setenv("GALLERY_DEV_LIMIT", "3")
	t.Setenv("GALLERY_DATABASE", filepath.Join(out, "gallery.db"))
	t.Setenv("GALLERY_METRICS_FILE", filepath.Join(out, "gallery.prom"))
	t.Setenv("GALLERY_MEMORY_LIMIT", "512MB")
	t.Setenv("GALLERY_MEMORY_RATIO", "0.5")

	config, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Marker != "photos" {
		t.Errorf("Marker = %q, want photos", config.Marker)
	}
	if !config.UseSnapshot {
		t.Error("UseSnapshot should be true")
	}
	if config.SnapshotPath != filepath.Join(out, "tree.json") {
		t.Errorf("SnapshotPath = %q", config.SnapshotPath)
	}
	if !config.IsDevelopment() || config.DevLimit != 3 {
		t.Errorf("Env = %q, DevLimit = %d, want development and 3", config.Env, config.DevLimit)
	}
	if config.DatabasePath != filepath.Join(out, "gallery.db") {
		t.Errorf("DatabasePath = %q", config.DatabasePath)
	}
	if config.MetricsFile != filepath.Join(out, "gallery.prom") {
		t.Errorf("MetricsFile = %q", config.MetricsFile)
	}
	if config.MemoryLimit != 512<<20 || config.MemoryRatio != 0.5 {
		t.Errorf("MemoryLimit = %d, MemoryRatio = %v", config.MemoryLimit, config.MemoryRatio)
	}
}

func TestLoadConfigFlagOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("GALLERY_ROOT", t.TempDir())
	override := t.TempDir()

	v := NewViper()
	v.Set("root", override)

	config, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.Root != override {
		t.Errorf("Root = %q, want %q", config.Root, override)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.jpg")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing root", map[string]string{"GALLERY_ROOT": filepath.Join(t.TempDir(), "missing")}},
		{"root is a file", map[string]string{"GALLERY_ROOT": file}},
		{"nested marker", map[string]string{"GALLERY_ROOT": t.TempDir(), "GALLERY_MARKER": "a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(nil); err == nil {
				t.Error("LoadConfig() should fail")
			}
		})
	}
}

func TestTopLevelLimit(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		devLimit int
		limit    string // root .limit content; "" for none
		want     int
	}{
		{"production ignores everything", "production", 3, "5", 0},
		{"development without limits", EnvDevelopment, 0, "", 0},
		{"env limit", EnvDevelopment, 3, "", 3},
		{"env limit wins over file", EnvDevelopment, 3, "5", 3},
		{"file limit", EnvDevelopment, 0, "5\n", 5},
		{"file limit after comment", EnvDevelopment, 0, "# keep it small\n2\n", 2},
		{"invalid file limit", EnvDevelopment, 0, "many", 0},
		{"negative file limit", EnvDevelopment, 0, "-1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.limit != "" {
				if err := os.WriteFile(filepath.Join(root, ".limit"), []byte(tt.limit), 0o644); err != nil {
					t.Fatalf("Failed to write .limit: %v", err)
				}
			}
			src, err := filesystem.Open(root)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}

			config := &Config{Env: tt.env, DevLimit: tt.devLimit}
			if got := config.TopLevelLimit(src); got != tt.want {
				t.Errorf("TopLevelLimit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadOptions(t *testing.T) {
	src, err := filesystem.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	config := &Config{
		Marker:       "photos",
		UseSnapshot:  true,
		SnapshotPath: "/tmp/tree.json",
		Env:          EnvDevelopment,
		DevLimit:     4,
	}

	opts := config.LoadOptions(src)
	if opts.Marker != "photos" || opts.TopLevelLimit != 4 {
		t.Errorf("Options = %+v", opts.Options)
	}
	if !opts.UseSnapshot || opts.SnapshotPath != "/tmp/tree.json" {
		t.Errorf("LoadOptions = %+v", opts)
	}
}
