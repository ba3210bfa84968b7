package filesystem

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"media-gallery/internal/logging"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Entry is one directory entry as the resolvers see it. Symlinks are reported
// by what they point at.
type Entry struct {
	Name  string
	IsDir bool
}

// Source is the read capability shared by the live builder and the manifest
// generator. Paths are slash-separated and relative to the collection root;
// the root itself is "".
type Source interface {
	// ListDirectory returns the entries of dir sorted by name, or nil on any
	// failure. The returned slice must not be modified.
	ListDirectory(dir string) []Entry
	// ReadFile returns the contents of a file.
	ReadFile(name string) ([]byte, error)
	// Identity returns a canonical identity for dir, used to detect cycles.
	Identity(dir string) string
}

// BillySource implements Source on top of a billy.Filesystem rooted at the
// collection root.
type BillySource struct {
	fs    billy.Filesystem
	retry RetryConfig
}

// NewSource wraps an existing billy filesystem.
func NewSource(fs billy.Filesystem) *BillySource {
	return &BillySource{fs: fs, retry: DefaultRetryConfig()}
}

// Open returns a Source rooted at a directory on the local disk.
func Open(root string) (*BillySource, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve collection root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat collection root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("collection root %s is not a directory", abs)
	}
	return NewSource(osfs.New(abs)), nil
}

// Filesystem exposes the underlying billy filesystem for writers.
func (s *BillySource) Filesystem() billy.Filesystem {
	return s.fs
}

// ListDirectory never fails: an unreadable directory is logged and reported as empty.
func (s *BillySource) ListDirectory(dir string) []Entry {
	var infos []os.FileInfo
	err := withRetry("readdir", dir, s.retry, func() error {
		var readErr error
		infos, readErr = s.fs.ReadDir(fsPath(dir))
		return readErr
	})
	if err != nil {
		logging.Debug("Unreadable directory %q treated as empty: %v", dir, err)
		return nil
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entry := Entry{Name: info.Name(), IsDir: info.IsDir()}
		if info.Mode()&os.ModeSymlink != 0 {
			target, statErr := s.fs.Stat(path.Join(dir, info.Name()))
			if statErr != nil {
				logging.Debug("Dangling symlink %q skipped: %v", path.Join(dir, info.Name()), statErr)
				continue
			}
			entry.IsDir = target.IsDir()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// ReadFile reads a file relative to the root.
func (s *BillySource) ReadFile(name string) ([]byte, error) {
	var data []byte
	err := withRetry("read", name, s.retry, func() error {
		var readErr error
		data, readErr = util.ReadFile(s.fs, fsPath(name))
		return readErr
	})
	return data, err
}

// Identity returns device:inode where the platform exposes it, otherwise the
// symlink-resolved path.
func (s *BillySource) Identity(dir string) string {
	var info os.FileInfo
	err := withRetry("stat", dir, s.retry, func() error {
		var statErr error
		info, statErr = s.fs.Stat(fsPath(dir))
		return statErr
	})
	if err == nil {
		if id, ok := fileIdentity(info); ok {
			return id
		}
	}

	full := filepath.Join(s.fs.Root(), filepath.FromSlash(dir))
	if resolved, evalErr := filepath.EvalSymlinks(full); evalErr == nil {
		return "path:" + resolved
	}
	return "path:" + full
}

// fsPath maps the root ("") to the billy root.
func fsPath(p string) string {
	if p == "" {
		return "."
	}
	return p
}

// Locate splits a file path on the local disk into a billy filesystem rooted
// at its directory and the file's name inside it.
func Locate(file string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", file, err)
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs), nil
}
