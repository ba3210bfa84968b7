package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIfChanged(t *testing.T) {
	root := t.TempDir()
	fs := openSource(t, root).Filesystem()

	outcome, err := WriteIfChanged(fs, "album/.folders", []byte("a\nb\n"), 0o644)
	if err != nil {
		t.Fatalf("first write error = %v", err)
	}
	if outcome != Created {
		t.Errorf("first outcome = %s, want created", outcome)
	}

	outcome, err = WriteIfChanged(fs, "album/.folders", []byte("a\nb\n"), 0o644)
	if err != nil {
		t.Fatalf("second write error = %v", err)
	}
	if outcome != Unchanged {
		t.Errorf("second outcome = %s, want unchanged", outcome)
	}

	outcome, err = WriteIfChanged(fs, "album/.folders", []byte("b\na\n"), 0o644)
	if err != nil {
		t.Fatalf("third write error = %v", err)
	}
	if outcome != Updated {
		t.Errorf("third outcome = %s, want updated", outcome)
	}

	data, err := os.ReadFile(filepath.Join(root, "album", ".folders"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "b\na\n" {
		t.Errorf("content = %q, want %q", data, "b\na\n")
	}

	entries, err := os.ReadDir(filepath.Join(root, "album"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteOutcomeString(t *testing.T) {
	tests := map[WriteOutcome]string{
		Unchanged: "unchanged",
		Created:   "created",
		Updated:   "updated",
	}
	for outcome, want := range tests {
		if got := outcome.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", outcome, got, want)
		}
	}
}
