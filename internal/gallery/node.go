package gallery

import (
	"errors"

	"media-gallery/internal/address"
)

var (
	// ErrNotFound is returned when an address does not name a node in the tree.
	ErrNotFound = errors.New("node not found")
	// ErrSnapshotCorrupt is returned when a snapshot exists but cannot be used.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// Kind tags a node as a real directory or a synthetic alias tile.
type Kind int

const (
	KindReal Kind = iota
	KindAlias
)

func (k Kind) String() string {
	if k == KindAlias {
		return "alias"
	}
	return "real"
}

// Node is one directory of the collection, or an alias tile pointing at one.
// Nodes are not modified after a build returns them.
type Node struct {
	Kind Kind
	// Name is the directory name; "" for the root.
	Name string
	// ID is the URL-safe form of Name.
	ID string
	// Path is the slash-separated location relative to the collection root.
	Path string
	// Address is the public address, "/" + marker + "/" + slugs.
	Address string
	// Cover is a public media address, "" when the directory has none.
	Cover string
	// Media lists filenames in display order and is only set on leaves.
	Media []string
	// Children are subdirectories in display order; nil on leaves.
	Children []*Node

	// Target and Context are set on alias tiles only: the address to navigate
	// to and the address of the node that lists the tile.
	Target  string
	Context string
}

// IsLeaf reports whether the node has no child directories.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Segments returns the raw names from the root down to n.
func (n *Node) Segments() []string {
	return address.Split(n.Path)
}

// Walk visits n and every descendant depth first, in display order.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, child := range n.Children {
		child.walk(fn, depth+1)
	}
}
