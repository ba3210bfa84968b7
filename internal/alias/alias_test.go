package alias

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/gallery"
)

func newTree(t *testing.T, files map[string]string) (*gallery.Tree, *Resolver) {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to create file %s: %v", rel, err)
		}
	}
	src, err := filesystem.Open(root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tree := gallery.Build(src, gallery.Options{Marker: "gallery"})
	return tree, NewResolver(src, tree)
}

func lookup(t *testing.T, tree *gallery.Tree, segments ...string) *gallery.Node {
	t.Helper()
	node, err := tree.Lookup(segments)
	if err != nil {
		t.Fatalf("Lookup(%v) error = %v", segments, err)
	}
	return node
}

func TestExpandSkipsRealChildren(t *testing.T) {
	tree, r := newTree(t, map[string]string{
		"D/.aliases":        "C1\n../Elsewhere/E\n",
		"D/C1/x.jpg":        "",
		"D/C2/y.jpg":        "",
		"Elsewhere/E/z.jpg": "",
	})
	d := lookup(t, tree, "D")

	view := r.Expand(d)

	if view.ChildCount != len(d.Children)+1 {
		t.Errorf("ChildCount = %d, want %d", view.ChildCount, len(d.Children)+1)
	}
	if len(view.Tiles) != 3 {
		t.Fatalf("got %d tiles, want 3", len(view.Tiles))
	}
	for i, child := range d.Children {
		if view.Tiles[i] != child {
			t.Errorf("tile %d = %q, want real child %q", i, view.Tiles[i].Address, child.Address)
		}
	}

	alias := view.Tiles[2]
	if alias.Kind != gallery.KindAlias {
		t.Errorf("alias Kind = %v, want alias", alias.Kind)
	}
	if alias.Target != "/gallery/Elsewhere/E" || alias.Context != "/gallery/D" {
		t.Errorf("alias Target = %q, Context = %q", alias.Target, alias.Context)
	}
	if alias.Cover != "/gallery/Elsewhere/E/z.jpg" {
		t.Errorf("alias Cover = %q", alias.Cover)
	}
	if len(d.Children) != 2 {
		t.Errorf("real children changed to %d", len(d.Children))
	}
}

func TestExpandKeepsFileOrder(t *testing.T) {
	tree, r := newTree(t, map[string]string{
		"Index/.aliases": strings.Join([]string{
			"# favourites",
			"gallery/Zoo",
			"// rooted with a leading slash",
			"/gallery/Art/Modern",
			"gallery/Zoo",
			"gallery/Missing",
			"../../escape",
			"/etc/passwd",
			"Art",
			"",
		}, "\n"),
		"Index/x.jpg":      "",
		"Art/Modern/a.jpg": "",
		"Art/Old/b.jpg":    "",
		"Zoo/c.jpg":        "",
	})
	index := lookup(t, tree, "Index")

	view := r.Expand(index)
	aliases := view.Aliases()

	var got []string
	for _, a := range aliases {
		got = append(got, a.Target)
	}
	want := []string{"/gallery/Zoo", "/gallery/Art/Modern"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("alias targets = %v, want %v", got, want)
	}
	if view.ChildCount != 2 {
		t.Errorf("ChildCount = %d, want 2", view.ChildCount)
	}
	if zoo := aliases[0]; len(zoo.Media) != 1 || zoo.Media[0] != "c.jpg" {
		t.Errorf("leaf alias media = %v, want [c.jpg]", zoo.Media)
	}
}

func TestExpandWithoutAliasFile(t *testing.T) {
	tree, r := newTree(t, map[string]string{"A/x.jpg": "", "B/y.jpg": ""})

	view := r.Expand(tree.Root)
	if view.ChildCount != 2 || len(view.Aliases()) != 0 {
		t.Errorf("ChildCount = %d with %d aliases, want 2 and 0", view.ChildCount, len(view.Aliases()))
	}
}

func TestExpandAliasToParentHidesMedia(t *testing.T) {
	tree, r := newTree(t, map[string]string{
		".aliases":             "Trips/Rome\n",
		"Trips/Rome/Day/x.jpg": "",
		"Trips/Rome/y.jpg":     "",
		"Other/z.jpg":          "",
	})

	aliases := r.Expand(tree.Root).Aliases()
	if len(aliases) != 1 {
		t.Fatalf("got %d aliases, want 1", len(aliases))
	}
	if aliases[0].Media != nil || aliases[0].Children != nil {
		t.Errorf("alias tile = %+v, want no media and no children", aliases[0])
	}
	if aliases[0].Context != "/gallery/" {
		t.Errorf("Context = %q, want /gallery/", aliases[0].Context)
	}
}

func TestExpandPercentNames(t *testing.T) {
	tree, r := newTree(t, map[string]string{
		"Index/.aliases":    "../50%20off\n../Summer%20Sale\n",
		"Index/x.jpg":       "",
		"50%20off/a.jpg":    "",
		"Summer Sale/b.jpg": "",
		"Summer Sale/c.jpg": "",
	})

	var got []string
	for _, a := range r.Expand(lookup(t, tree, "Index")).Aliases() {
		got = append(got, a.Name+"="+a.Target)
	}
	want := []string{"50%20off=/gallery/50%2520off", "Summer Sale=/gallery/Summer%20Sale"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("aliases = %v, want %v", got, want)
	}
}
