package gallery

import (
	"path"
	"strings"
	"time"

	"media-gallery/internal/address"
	"media-gallery/internal/controlfile"
	"media-gallery/internal/cover"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"
	"media-gallery/internal/ordering"
)

// maxDepth stops descent even when the cycle guard cannot identify a loop.
const maxDepth = 64

// Listing is a directory's resolved display order, reported to Options.Visit.
type Listing struct {
	Path     string
	Segments []string
	// Folders are the subdirectory names in display order.
	Folders []string
	// Media are the media filenames in display order, each listed once.
	Media []string
}

// Options configures a live build.
type Options struct {
	// Marker is the first segment of every public address.
	Marker string
	// TopLevelLimit truncates the root's children when positive. Nested
	// levels are never truncated.
	TopLevelLimit int
	// Visit, when set, is called once per directory after its children and
	// cover have been resolved.
	Visit func(Listing)
	// CacheSize bounds the per-build listing cache.
	CacheSize int
}

type builder struct {
	src     filesystem.Source
	opts    Options
	covers  *cover.Resolver
	visited map[string]bool
}

// Build scans the collection behind src and returns the resolved tree. It
// never fails: unreadable directories and broken overrides degrade to empty
// or absent values.
func Build(src filesystem.Source, opts Options) *Tree {
	start := time.Now()
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}

	cached := filesystem.NewCached(src, opts.CacheSize)
	b := &builder{
		src:     cached,
		opts:    opts,
		covers:  cover.NewResolver(cached, opts.Marker),
		visited: make(map[string]bool),
	}
	root, _ := b.build(nil)

	duration := time.Since(start)
	metrics.GalleryBuildsTotal.WithLabelValues(SourceLive).Inc()
	metrics.GalleryBuildDuration.WithLabelValues(SourceLive).Observe(duration.Seconds())
	logging.Debug("Live build finished in %v (%d directories visited, %d listings cached)",
		duration, len(b.visited), cached.Len())

	return &Tree{Root: root, Marker: opts.Marker, Source: SourceLive, GeneratedAt: start}
}

// build returns the node for segments along with the directory's own media
// files in display order, which the parent needs for its cover fallback.
func (b *builder) build(segments []string) (*Node, []string) {
	dir := path.Join(segments...)
	node := b.newNode(segments)
	metrics.GalleryDirectoriesVisited.Inc()

	id := b.src.Identity(dir)
	if b.visited[id] {
		logging.Warn("Directory %q was already visited in this build, treating it as empty", dir)
		metrics.GalleryCyclesSkipped.Inc()
		return node, nil
	}
	b.visited[id] = true

	if len(segments) > maxDepth {
		logging.Warn("Directory %q is nested deeper than %d levels, treating it as empty", dir, maxDepth)
		return node, nil
	}

	folders, media := b.split(dir)
	folders, _ = ordering.Resolve(b.src, dir, ordering.Folders, folders, false)
	if len(segments) == 0 && b.opts.TopLevelLimit > 0 && len(folders) > b.opts.TopLevelLimit {
		logging.Debug("Top level truncated to %d of %d directories", b.opts.TopLevelLimit, len(folders))
		folders = folders[:b.opts.TopLevelLimit]
	}

	// Only a leaf with several files may show one of them more than once.
	repeats := len(folders) == 0 && len(media) >= 2
	display, _ := ordering.Resolve(b.src, dir, ordering.Media, media, repeats)
	own := display
	if repeats {
		own = distinct(display)
	}

	children := make([]*Node, 0, len(folders))
	candidates := make([]cover.Child, 0, len(folders))
	for _, name := range folders {
		childSegments := append(append([]string(nil), segments...), name)
		child, childMedia := b.build(childSegments)
		children = append(children, child)
		candidates = append(candidates, cover.Child{
			Segments: childSegments,
			Cover:    child.Cover,
			Media:    childMedia,
		})
	}

	node.Cover = b.covers.Resolve(cover.Directory{
		Segments: segments,
		Media:    own,
		Children: candidates,
	}).Address

	if len(children) > 0 {
		node.Children = children
	} else if len(display) > 0 {
		node.Media = display
	}

	if b.opts.Visit != nil {
		b.opts.Visit(Listing{
			Path:     dir,
			Segments: segments,
			Folders:  folders,
			Media:    own,
		})
	}
	return node, own
}

// split separates a directory's entries into traversable subdirectories and
// media files, both in natural order. Dot-prefixed entries hold metadata and
// are never shown.
func (b *builder) split(dir string) (folders, media []string) {
	entries := b.src.ListDirectory(dir)
	var ignore ignoreList
	if controlfile.Has(entries, controlfile.Ignore) {
		ignore = controlfile.Read(b.src, dir, controlfile.Ignore)
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") || ignore.match(e.Name) {
			continue
		}
		switch mediatypes.Classify(e.Name, e.IsDir) {
		case mediatypes.FileTypeFolder:
			folders = append(folders, e.Name)
		case mediatypes.FileTypeImage:
			media = append(media, e.Name)
		}
	}
	return folders, media
}

func (b *builder) newNode(segments []string) *Node {
	name := ""
	if len(segments) > 0 {
		name = segments[len(segments)-1]
	}
	return &Node{
		Kind:    KindReal,
		Name:    name,
		ID:      address.Slugify(name),
		Path:    path.Join(segments...),
		Address: address.Public(b.opts.Marker, segments...),
	}
}

// ignoreList holds names or path.Match patterns from an ".ignore" file.
type ignoreList []string

func (l ignoreList) match(name string) bool {
	for _, pattern := range l {
		if pattern == name {
			return true
		}
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func distinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
