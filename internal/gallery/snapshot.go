package gallery

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"media-gallery/internal/address"
	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"

	"github.com/go-git/go-billy/v5/util"
)

// SnapshotVersion is the snapshot format written by Encode.
const SnapshotVersion = 1

// Snapshot is the persisted form of a tree.
type Snapshot struct {
	Version     int           `json:"version"`
	Marker      string        `json:"marker"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Root        *SnapshotNode `json:"root"`
}

// SnapshotNode mirrors Node. Leaf is written for readers of the file and is
// ignored when loading; leaf status always comes from Children.
type SnapshotNode struct {
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	Path      string          `json:"path"`
	Address   string          `json:"address"`
	Cover     string          `json:"cover,omitempty"`
	CoverFile string          `json:"coverFile,omitempty"`
	Media     []string        `json:"media,omitempty"`
	Leaf      bool            `json:"leaf"`
	Children  []*SnapshotNode `json:"children,omitempty"`
}

// NewSnapshot converts a tree into its persisted form.
func NewSnapshot(t *Tree) *Snapshot {
	return &Snapshot{
		Version:     SnapshotVersion,
		Marker:      t.Marker,
		GeneratedAt: t.GeneratedAt.UTC(),
		Root:        toSnapshot(t.Root),
	}
}

// Encode renders a tree as indented JSON.
func Encode(t *Tree) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(t), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a snapshot. marker is used when the snapshot does not record
// its own.
func Decode(data []byte, marker string) (*Tree, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if snap.Root == nil {
		return nil, fmt.Errorf("%w: no root", ErrSnapshotCorrupt)
	}
	if snap.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrSnapshotCorrupt, snap.Version)
	}

	if snap.Marker != "" {
		if marker != "" && snap.Marker != marker {
			logging.Warn("Snapshot uses root marker %q, configured marker %q is ignored", snap.Marker, marker)
		}
		marker = snap.Marker
	}
	if marker == "" {
		marker = DefaultMarker
	}

	return &Tree{
		Root:        NormalizeFromSnapshot(snap.Root, marker),
		Marker:      marker,
		Source:      SourceSnapshot,
		GeneratedAt: snap.GeneratedAt,
	}, nil
}

// ReadSnapshot loads and decodes the snapshot file at path. A missing file
// is reported with an error matching os.ErrNotExist.
func ReadSnapshot(path, marker string) (*Tree, error) {
	fs, name, err := filesystem.Locate(path)
	if err != nil {
		return nil, err
	}
	data, err := util.ReadFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	tree, err := Decode(data, marker)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return tree, nil
}

// NormalizeFromSnapshot rebuilds a node from its persisted form so that it
// satisfies the same invariants as a live node.
func NormalizeFromSnapshot(raw *SnapshotNode, marker string) *Node {
	node := &Node{
		Kind:    KindReal,
		Name:    raw.Name,
		ID:      raw.ID,
		Path:    raw.Path,
		Address: raw.Address,
		Cover:   raw.Cover,
	}
	if node.ID == "" && node.Name != "" {
		node.ID = address.Slugify(node.Name)
	}
	if node.Address == "" {
		node.Address = address.Public(marker, address.Split(node.Path)...)
	}

	for _, child := range raw.Children {
		if child != nil {
			node.Children = append(node.Children, NormalizeFromSnapshot(child, marker))
		}
	}
	if len(node.Children) > 0 {
		return node
	}

	switch {
	case len(raw.Media) > 0:
		node.Media = append([]string(nil), raw.Media...)
	case raw.CoverFile != "":
		node.Media = []string{raw.CoverFile}
	}
	return node
}

func toSnapshot(n *Node) *SnapshotNode {
	out := &SnapshotNode{
		Name:    n.Name,
		ID:      n.ID,
		Path:    n.Path,
		Address: n.Address,
		Cover:   n.Cover,
		Media:   n.Media,
		Leaf:    n.IsLeaf(),
	}
	if out.Leaf {
		out.CoverFile = coverFile(n)
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, toSnapshot(child))
	}
	return out
}

// coverFile returns the cover's filename when the cover is one of the node's
// own media files.
func coverFile(n *Node) string {
	dir := n.Address
	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	rest, ok := strings.CutPrefix(n.Cover, dir)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	name, err := address.Unslugify(rest)
	if err != nil {
		return ""
	}
	for _, m := range n.Media {
		if m == name {
			return name
		}
	}
	return ""
}
