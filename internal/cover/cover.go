package cover

import (
	"path"
	"sort"
	"strings"

	"media-gallery/internal/address"
	"media-gallery/internal/controlfile"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"
)

// maxSearchDepth bounds the subtree search below the overriding directory.
const maxSearchDepth = 64

// Child is the part of an already-resolved child directory that the
// fallback tier needs.
type Child struct {
	Segments []string
	// Cover is the child's resolved cover address, "" when absent.
	Cover string
	// Media are the child's own media files in display order.
	Media []string
}

// Directory describes the directory whose cover is being resolved.
type Directory struct {
	Segments []string
	// Media are the media files directly inside the directory, in display
	// order, each listed once.
	Media []string
	// Children are the resolved subdirectories in display order.
	Children []Child
}

// Result is a resolved cover and the tier that produced it.
type Result struct {
	Address string
	Tier    string
}

// Resolver resolves covers against one collection.
type Resolver struct {
	src    filesystem.Source
	marker string
}

// NewResolver creates a resolver that reads through src and builds public
// addresses under marker.
func NewResolver(src filesystem.Source, marker string) *Resolver {
	return &Resolver{src: src, marker: marker}
}

// Resolve returns the cover for dir. The result address is "" when no tier
// produced a cover; that is never an error.
func (r *Resolver) Resolve(dir Directory) Result {
	res := r.resolve(dir)
	metrics.CoverResolutionsTotal.WithLabelValues(res.Tier).Inc()
	return res
}

func (r *Resolver) resolve(dir Directory) Result {
	if res, ok := r.fromOverride(dir.Segments); ok {
		return res
	}

	if len(dir.Media) == 1 {
		return Result{Address: r.public(dir.Segments, dir.Media[0]), Tier: metrics.TierSingleMedia}
	}

	for _, child := range dir.Children {
		if child.Cover != "" {
			return Result{Address: child.Cover, Tier: metrics.TierChild}
		}
		if len(child.Media) > 0 {
			return Result{Address: r.public(child.Segments, child.Media[0]), Tier: metrics.TierChild}
		}
	}

	return Result{Tier: metrics.TierNone}
}

// Override returns the first usable line of dir's cover override, or "".
func (r *Resolver) Override(segments []string) string {
	lines := controlfile.ReadAddresses(r.src, join(segments), controlfile.Cover)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func (r *Resolver) fromOverride(segments []string) (Result, bool) {
	line := r.Override(segments)
	if line == "" {
		return Result{}, false
	}

	target, err := address.Parse(line, r.marker, segments)
	if err != nil {
		logging.Debug("Cover override %q in %q rejected: %v", line, join(segments), err)
		return Result{}, false
	}

	if n := len(target.Segments); n > 0 && anyMedia(target.Candidates(n-1)) {
		if corrected, ok := r.correctFile(target); ok {
			return Result{Address: address.Public(r.marker, corrected...), Tier: metrics.TierOverrideFile}, true
		}
		if target.Form == address.Relative {
			if found, ok := r.search(segments, target.Candidates(n-1)); ok {
				return Result{Address: address.Public(r.marker, found...), Tier: metrics.TierOverrideSearch}, true
			}
		}
		logging.Debug("Cover override %q in %q does not resolve to a file", line, join(segments))
		return Result{}, false
	}

	corrected, ok := r.correctDir(target, len(target.Segments))
	if !ok {
		logging.Debug("Cover override %q in %q does not resolve to a directory", line, join(segments))
		return Result{}, false
	}
	for _, e := range r.src.ListDirectory(join(corrected)) {
		if !e.IsDir && mediatypes.IsMedia(e.Name) {
			return Result{Address: r.public(corrected, e.Name), Tier: metrics.TierOverrideDirectory}, true
		}
	}
	return Result{}, false
}

func anyMedia(names []string) bool {
	for _, name := range names {
		if mediatypes.IsMedia(name) {
			return true
		}
	}
	return false
}

// correctFile case-corrects target from the root, requiring every segment
// but the last to be a directory and the last to be a file.
func (r *Resolver) correctFile(target address.Resolved) ([]string, bool) {
	n := len(target.Segments)
	dirs, ok := r.correctDir(target, n-1)
	if !ok {
		return nil, false
	}
	name, ok := match(r.src.ListDirectory(join(dirs)), target.Candidates(n-1), false)
	if !ok {
		return nil, false
	}
	return append(dirs, name), true
}

// correctDir case-corrects the first n segments of target from the root.
func (r *Resolver) correctDir(target address.Resolved, n int) ([]string, bool) {
	corrected := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name, ok := match(r.src.ListDirectory(join(corrected)), target.Candidates(i), true)
		if !ok {
			return nil, false
		}
		corrected = append(corrected, name)
	}
	return corrected, true
}

// match finds one of wants among entries of the requested type. Exact
// matches win over case-insensitive ones; within each pass earlier wants
// win.
func match(entries []filesystem.Entry, wants []string, dir bool) (string, bool) {
	for _, fold := range []bool{false, true} {
		for _, want := range wants {
			for _, e := range entries {
				if e.IsDir != dir {
					continue
				}
				if e.Name == want || (fold && strings.EqualFold(e.Name, want)) {
					return e.Name, true
				}
			}
		}
	}
	return "", false
}

// search looks for a file called one of names anywhere below start,
// breadth first: every name exactly, then every name case-insensitively.
func (r *Resolver) search(start []string, names []string) ([]string, bool) {
	for _, fold := range []bool{false, true} {
		for _, name := range names {
			matches := func(n string) bool { return n == name }
			if fold {
				matches = func(n string) bool { return strings.EqualFold(n, name) }
			}
			if found, ok := r.bfs(start, matches); ok {
				return found, true
			}
		}
	}
	return nil, false
}

func (r *Resolver) bfs(start []string, matches func(string) bool) ([]string, bool) {
	queue := [][]string{append([]string(nil), start...)}
	visited := map[string]bool{}
	base := len(start)

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		id := r.src.Identity(join(dir))
		if visited[id] {
			continue
		}
		visited[id] = true

		var files, subdirs []string
		for _, e := range r.src.ListDirectory(join(dir)) {
			switch {
			case e.IsDir && !strings.HasPrefix(e.Name, "."):
				subdirs = append(subdirs, e.Name)
			case !e.IsDir:
				files = append(files, e.Name)
			}
		}
		sortFold(files)
		sortFold(subdirs)

		for _, f := range files {
			if matches(f) {
				return append(append([]string(nil), dir...), f), true
			}
		}
		if len(dir)-base >= maxSearchDepth {
			continue
		}
		for _, d := range subdirs {
			queue = append(queue, append(append([]string(nil), dir...), d))
		}
	}
	return nil, false
}

// sortFold sorts names case-insensitively, breaking ties byte-wise so the
// order is total.
func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
}

func (r *Resolver) public(segments []string, file string) string {
	return address.Public(r.marker, append(append([]string(nil), segments...), file)...)
}

func join(segments []string) string {
	return path.Join(segments...)
}
