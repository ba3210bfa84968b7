package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create file %s: %v", rel, err)
		}
	}
}

func openSource(t *testing.T, root string) *BillySource {
	t.Helper()
	src, err := Open(root)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", root, err)
	}
	return src
}

func TestListDirectorySortedAndTyped(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.jpg":         "b",
		"a.png":         "a",
		"Zeta/x.jpg":    "x",
		"alpha/y.jpg":   "y",
		".order":        "alpha\n",
		"notes.txt":     "text",
		".hidden/z.jpg": "z",
	})

	entries := openSource(t, root).ListDirectory("")

	want := []Entry{
		{Name: ".hidden", IsDir: true},
		{Name: ".order"},
		{Name: "Zeta", IsDir: true},
		{Name: "a.png"},
		{Name: "alpha", IsDir: true},
		{Name: "b.jpg"},
		{Name: "notes.txt"},
	}
	if len(entries) != len(want) {
		t.Fatalf("ListDirectory() = %+v, want %+v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestListDirectoryNestedPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/b/c.jpg": "c"})

	entries := openSource(t, root).ListDirectory("a/b")
	if len(entries) != 1 || entries[0].Name != "c.jpg" || entries[0].IsDir {
		t.Errorf("ListDirectory(a/b) = %+v", entries)
	}
}

func TestListDirectoryMissingIsEmpty(t *testing.T) {
	src := openSource(t, t.TempDir())

	if entries := src.ListDirectory("does/not/exist"); entries != nil {
		t.Errorf("ListDirectory(missing) = %+v, want nil", entries)
	}
}

func TestListDirectoryUnreadableIsEmpty(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{"locked/a.jpg": "a"})
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	if entries := openSource(t, root).ListDirectory("locked"); entries != nil {
		t.Errorf("ListDirectory(locked) = %+v, want nil", entries)
	}
}

func TestListDirectoryFollowsSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{"real/a.jpg": "a"})
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	src := openSource(t, root)
	entries := src.ListDirectory("")

	var sawLink bool
	for _, e := range entries {
		if e.Name == "dangling" {
			t.Error("dangling symlink should be skipped")
		}
		if e.Name == "link" {
			sawLink = true
			if !e.IsDir {
				t.Error("symlink to directory should report IsDir")
			}
		}
	}
	if !sawLink {
		t.Errorf("ListDirectory() = %+v, missing link", entries)
	}

	if src.Identity("link") != src.Identity("real") {
		t.Errorf("Identity(link) = %q, Identity(real) = %q, want equal",
			src.Identity("link"), src.Identity("real"))
	}
}

func TestReadFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"album/.cover": "front.jpg\n"})
	src := openSource(t, root)

	data, err := src.ReadFile("album/.cover")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "front.jpg\n" {
		t.Errorf("ReadFile() = %q", data)
	}

	if _, err := src.ReadFile("album/.missing"); !os.IsNotExist(err) {
		t.Errorf("ReadFile(missing) error = %v, want not-exist", err)
	}
}

func TestOpenRejectsFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"file.jpg": "x"})

	if _, err := Open(filepath.Join(root, "file.jpg")); err == nil {
		t.Error("Open(file) should fail")
	}
	if _, err := Open(filepath.Join(root, "missing")); err == nil {
		t.Error("Open(missing) should fail")
	}
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"snap/gallery.json": "{}"})

	fs, name, err := Locate(filepath.Join(root, "snap", "gallery.json"))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if name != "gallery.json" {
		t.Errorf("Locate() name = %q, want %q", name, "gallery.json")
	}
	if fs.Root() != filepath.Join(root, "snap") {
		t.Errorf("Locate() root = %q, want %q", fs.Root(), filepath.Join(root, "snap"))
	}
}
