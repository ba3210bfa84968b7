package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"GalleryBuildsTotal", GalleryBuildsTotal},
		{"GalleryBuildDuration", GalleryBuildDuration},
		{"GalleryDirectoriesVisited", GalleryDirectoriesVisited},
		{"GalleryCyclesSkipped", GalleryCyclesSkipped},
		{"CoverResolutionsTotal", CoverResolutionsTotal},
		{"OrderResolutionsTotal", OrderResolutionsTotal},
		{"AliasLinesTotal", AliasLinesTotal},
		{"TreeDirectories", TreeDirectories},
		{"ManifestRunsTotal", ManifestRunsTotal},
		{"ManifestWritesTotal", ManifestWritesTotal},
		{"DBQueryTotal", DBQueryTotal},
		{"FilesystemOperationDuration", FilesystemOperationDuration},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

type fixedStats Stats

func (f fixedStats) GetStats() Stats { return Stats(f) }

func TestCollectWithNilProvider(_ *testing.T) {
	// Should not panic
	Collect(nil)
}

func TestWriteTextfile(t *testing.T) {
	InitializeMetrics()
	SetAppInfo("test", "abc123", "go1.25")
	Collect(fixedStats{Directories: 3, Leaves: 2, MediaFiles: 7, MissingCovers: 1})

	obs := NewFilesystemObserver()
	obs.ObserveOperation("read", 0.01, errors.New("boom"))
	obs.ObserveRetryAttempt("read")
	obs.ObserveStaleError("read")

	path := filepath.Join(t.TempDir(), "gallery.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"media_gallery_tree_directories 3",
		"media_gallery_tree_media_files 7",
		`media_gallery_cover_resolutions_total{tier="override_search"}`,
		`media_gallery_filesystem_operation_errors_total{operation="read"}`,
		`media_gallery_app_info{commit="abc123",go_version="go1.25",version="test"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q", want)
		}
	}
}

func TestWriteTextfileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "gallery.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("WriteTextfile() expected error for missing directory")
	}
}
