package alias

import (
	"media-gallery/internal/address"
	"media-gallery/internal/controlfile"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
	"media-gallery/internal/logging"
	"media-gallery/internal/metrics"
)

// View is a node as it should be listed: its real children followed by its
// alias tiles.
type View struct {
	Node *gallery.Node
	// Tiles are the real children in display order, then alias tiles in
	// alias-file order.
	Tiles []*gallery.Node
	// ChildCount is the number of real children plus alias tiles.
	ChildCount int
}

// Aliases returns only the alias tiles of a view.
func (v View) Aliases() []*gallery.Node {
	return v.Tiles[len(v.Node.Children):]
}

// Resolver reads alias files through src and resolves them against tree.
type Resolver struct {
	src  filesystem.Source
	tree *gallery.Tree
}

// NewResolver creates a resolver for tree.
func NewResolver(src filesystem.Source, tree *gallery.Tree) *Resolver {
	return &Resolver{src: src, tree: tree}
}

// Expand returns node's view. Lines that do not parse or do not name a node
// are skipped, as are targets that are already real children and repeats
// within the file.
func (r *Resolver) Expand(node *gallery.Node) View {
	view := View{Node: node}
	view.Tiles = append(view.Tiles, node.Children...)

	taken := make(map[string]bool, len(node.Children))
	for _, child := range node.Children {
		taken[child.Address] = true
	}

	for _, line := range controlfile.ReadAddresses(r.src, node.Path, controlfile.Aliases) {
		target, err := address.Parse(line, r.tree.Marker, node.Segments())
		if err != nil {
			logging.Debug("Alias %q in %q rejected: %v", line, node.Path, err)
			metrics.AliasLinesTotal.WithLabelValues("rejected").Inc()
			continue
		}

		dest, err := r.tree.LookupAlternatives(target.Alternatives())
		if err != nil {
			logging.Debug("Alias %q in %q does not resolve: %v", line, node.Path, err)
			metrics.AliasLinesTotal.WithLabelValues("unresolved").Inc()
			continue
		}

		if taken[dest.Address] {
			metrics.AliasLinesTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		taken[dest.Address] = true

		view.Tiles = append(view.Tiles, tile(dest, node))
		metrics.AliasLinesTotal.WithLabelValues("tile").Inc()
	}

	view.ChildCount = len(view.Tiles)
	return view
}

// tile copies the display fields of dest into an alias node listed under
// context. The tile has no children of its own; navigating it goes to Target.
func tile(dest, context *gallery.Node) *gallery.Node {
	var media []string
	if dest.IsLeaf() {
		media = dest.Media
	}
	return &gallery.Node{
		Kind:    gallery.KindAlias,
		Name:    dest.Name,
		ID:      dest.ID,
		Path:    dest.Path,
		Address: dest.Address,
		Cover:   dest.Cover,
		Media:   media,
		Target:  dest.Address,
		Context: context.Address,
	}
}
