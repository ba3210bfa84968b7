package ordering

import (
	"media-gallery/internal/controlfile"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/metrics"
)

// Kind selects which fallback list applies.
type Kind int

const (
	// Folders orders subdirectories.
	Folders Kind = iota
	// Media orders media files.
	Media
)

func (k Kind) String() string {
	if k == Media {
		return "media"
	}
	return "folders"
}

// Source names the tier that produced an order.
type Source string

const (
	FromOverride Source = "override"
	FromFallback Source = "fallback"
	FromNatural  Source = "natural"
)

// FallbackFile returns the control file holding the fallback list for kind.
func FallbackFile(kind Kind) string {
	if kind == Media {
		return controlfile.Images
	}
	return controlfile.Folders
}

// ReadOrderOverride returns the explicit order from dir's ".order" file, or
// nil when the file is missing, unreadable, malformed or only comments.
func ReadOrderOverride(src filesystem.Source, dir string) []string {
	return controlfile.Read(src, dir, controlfile.Order)
}

// ReadFallbackList returns the generated convenience list for kind. These
// files have no comment syntax.
func ReadFallbackList(src filesystem.Source, dir string, kind Kind) []string {
	return controlfile.ReadRaw(src, dir, FallbackFile(kind))
}

// Resolve orders items for dir following the override > fallback > natural
// precedence. When repeats is true an override may list a name more than once.
func Resolve(src filesystem.Source, dir string, kind Kind, items []string, repeats bool) ([]string, Source) {
	ordered, from := resolve(src, dir, kind, items, repeats)
	metrics.OrderResolutionsTotal.WithLabelValues(kind.String(), string(from)).Inc()
	return ordered, from
}

func resolve(src filesystem.Source, dir string, kind Kind, items []string, repeats bool) ([]string, Source) {
	desired, from := ReadOrderOverride(src, dir), FromOverride
	if len(desired) == 0 {
		desired, from = ReadFallbackList(src, dir, kind), FromFallback
	}
	if len(desired) == 0 {
		return append([]string(nil), items...), FromNatural
	}
	if repeats {
		return ApplyWithRepeats(items, desired), from
	}
	return Apply(items, desired), from
}

// Apply is a stable merge: items named in desired come first in desired's
// order, the rest follow in their original order. Nothing is dropped, unknown
// names in desired are ignored, and each item is emitted once.
func Apply(items, desired []string) []string {
	return apply(items, desired, false)
}

// ApplyWithRepeats is Apply for leaf media, where an override may repeat a
// filename on purpose. Every mention of an existing item is emitted, so the
// result can be longer than items.
func ApplyWithRepeats(items, desired []string) []string {
	return apply(items, desired, true)
}

func apply(items, desired []string, repeats bool) []string {
	if len(desired) == 0 {
		return append([]string(nil), items...)
	}

	available := make(map[string]int, len(items))
	for _, item := range items {
		available[item]++
	}

	out := make([]string, 0, len(items))
	used := make(map[string]int, len(desired))
	for _, name := range desired {
		n, ok := available[name]
		if !ok {
			continue
		}
		if repeats {
			out = append(out, name)
			used[name] = n
			continue
		}
		if used[name] < n {
			out = append(out, name)
			used[name]++
		}
	}

	for _, item := range items {
		if used[item] > 0 {
			used[item]--
			continue
		}
		out = append(out, item)
	}
	return out
}
