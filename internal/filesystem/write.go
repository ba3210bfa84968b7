package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// WriteOutcome reports what WriteIfChanged did.
type WriteOutcome int

const (
	// Unchanged means the existing content was byte-identical and nothing was written.
	Unchanged WriteOutcome = iota
	// Created means the file did not exist before.
	Created
	// Updated means the file existed with different content.
	Updated
)

// String returns the metric label for the outcome.
func (o WriteOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// WriteIfChanged atomically replaces name with data unless the file already
// holds exactly data. The write goes through a temp file in the same
// directory followed by a rename.
func WriteIfChanged(fs billy.Filesystem, name string, data []byte, perm os.FileMode) (WriteOutcome, error) {
	existing, err := util.ReadFile(fs, name)
	outcome := Updated
	switch {
	case err == nil && bytes.Equal(existing, data):
		return Unchanged, nil
	case errors.Is(err, os.ErrNotExist):
		outcome = Created
	case err != nil:
		return Unchanged, fmt.Errorf("failed to read %s: %w", name, err)
	}

	err = withRetry("write", name, DefaultRetryConfig(), func() error {
		return writeAtomic(fs, name, data, perm)
	})
	if err != nil {
		return Unchanged, err
	}
	return outcome, nil
}

func writeAtomic(fs billy.Filesystem, name string, data []byte, perm os.FileMode) error {
	dir := path.Dir(name)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := fs.TempFile(dir, ".tmp-"+path.Base(name)+"-")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if ch, ok := fs.(billy.Change); ok {
		if err := ch.Chmod(tmpName, perm); err != nil {
			_ = fs.Remove(tmpName)
			return fmt.Errorf("failed to chmod %s: %w", name, err)
		}
	}

	if err := fs.Rename(tmpName, name); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to rename into %s: %w", name, err)
	}
	return nil
}
