package gallery

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"media-gallery/internal/address"
	"media-gallery/internal/cover"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"

	"golang.org/x/text/unicode/norm"
)

// DefaultMarker is the root marker used when none is configured.
const DefaultMarker = "gallery"

// Tree sources.
const (
	SourceLive     = "live"
	SourceSnapshot = "snapshot"
)

// Tree is a built or replayed collection.
type Tree struct {
	Root        *Node
	Marker      string
	Source      string
	GeneratedAt time.Time
}

// Lookup descends from the root one segment at a time. A segment matches a
// child by identifier or by name; any miss is ErrNotFound.
func (t *Tree) Lookup(segments []string) (*Node, error) {
	alts := make([][]string, len(segments))
	for i, seg := range segments {
		alts[i] = []string{seg}
	}
	return t.LookupAlternatives(alts)
}

// LookupAlternatives is Lookup where each segment may be spelled several
// ways, tried in order. Override lines use it to try a segment as written
// before its percent-decoded form.
func (t *Tree) LookupAlternatives(alts [][]string) (*Node, error) {
	node := t.Root
	for i, wants := range alts {
		next := matchChild(node.Children, wants)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, address.Public(t.Marker, first(alts[:i+1])...))
		}
		node = next
	}
	return node, nil
}

func first(alts [][]string) []string {
	segments := make([]string, len(alts))
	for i, wants := range alts {
		if len(wants) > 0 {
			segments[i] = wants[0]
		}
	}
	return segments
}

// Resolve looks up a public address.
func (t *Tree) Resolve(addr string) (*Node, error) {
	segments, err := address.SplitPublic(addr, t.Marker)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, addr)
	}
	return t.Lookup(segments)
}

func matchChild(children []*Node, wants []string) *Node {
	for _, seg := range wants {
		for _, child := range children {
			if child.ID == seg || child.Name == seg {
				return child
			}
		}
	}
	// Names typed on one platform and stored on another may differ only in
	// Unicode normalization.
	for _, seg := range wants {
		want := norm.NFC.String(seg)
		for _, child := range children {
			if norm.NFC.String(child.Name) == want {
				return child
			}
		}
	}
	return nil
}

// GetStats summarizes the tree for the metrics collector.
func (t *Tree) GetStats() metrics.Stats {
	var stats metrics.Stats
	t.Root.Walk(func(n *Node, _ int) {
		stats.Directories++
		if n.IsLeaf() {
			stats.Leaves++
			stats.MediaFiles += len(n.Media)
		}
		if n.Cover == "" {
			stats.MissingCovers++
		}
	})
	return stats
}

// LimitTopLevel returns a tree whose root keeps at most n children. The rest
// of the tree is shared, not copied.
func (t *Tree) LimitTopLevel(n int) *Tree {
	if n <= 0 || len(t.Root.Children) <= n {
		return t
	}
	root := *t.Root
	root.Children = t.Root.Children[:n:n]
	limited := *t
	limited.Root = &root
	return &limited
}

// limitSnapshot truncates a replayed tree the way a live build with the same
// limit would. A root cover taken from a dropped directory is resolved again
// against the kept children.
func limitSnapshot(src filesystem.Source, t *Tree, n int) *Tree {
	limited := t.LimitTopLevel(n)
	if limited == t || !coverInDropped(t.Root.Cover, t.Root.Children[n:]) {
		return limited
	}
	candidates := make([]cover.Child, 0, len(limited.Root.Children))
	for _, child := range limited.Root.Children {
		candidates = append(candidates, cover.Child{
			Segments: child.Segments(),
			Cover:    child.Cover,
			Media:    child.Media,
		})
	}
	limited.Root.Cover = cover.NewResolver(src, t.Marker).Resolve(cover.Directory{Children: candidates}).Address
	logging.Debug("Root cover re-resolved after truncation: %q", limited.Root.Cover)
	return limited
}

func coverInDropped(addr string, dropped []*Node) bool {
	if addr == "" {
		return false
	}
	for _, node := range dropped {
		if strings.HasPrefix(addr, node.Address+"/") {
			return true
		}
	}
	return false
}

// LoadOptions selects between a live build and a snapshot replay.
type LoadOptions struct {
	Options
	// UseSnapshot replays SnapshotPath when that file exists.
	UseSnapshot  bool
	SnapshotPath string
}

// Load returns the snapshot tree when UseSnapshot is set and the snapshot
// exists, otherwise a live build. A snapshot that exists but cannot be parsed
// is an error; it is never silently replaced by a live scan.
func Load(src filesystem.Source, opts LoadOptions) (*Tree, error) {
	if opts.UseSnapshot && opts.SnapshotPath != "" {
		start := time.Now()
		tree, err := ReadSnapshot(opts.SnapshotPath, opts.Marker)
		switch {
		case err == nil:
			metrics.GalleryBuildsTotal.WithLabelValues(SourceSnapshot).Inc()
			metrics.GalleryBuildDuration.WithLabelValues(SourceSnapshot).Observe(time.Since(start).Seconds())
			logging.Debug("Loaded snapshot %s generated at %s", opts.SnapshotPath, tree.GeneratedAt.Format(time.RFC3339))
			return limitSnapshot(src, tree, opts.TopLevelLimit), nil
		case errors.Is(err, os.ErrNotExist):
			logging.Info("Snapshot %s not found, scanning the collection", opts.SnapshotPath)
		default:
			return nil, err
		}
	}
	return Build(src, opts.Options), nil
}
