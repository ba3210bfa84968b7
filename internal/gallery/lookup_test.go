package gallery

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	tree := build(t, map[string]string{
		"My Album/Day 1/a.jpg": "",
		"Cafe\u0301/x.jpg":     "",
	})

	tests := []struct {
		name     string
		segments []string
		want     string
	}{
		{"root", nil, "/gallery/"},
		{"by name", []string{"My Album", "Day 1"}, "/gallery/My%20Album/Day%201"},
		{"by identifier", []string{"My%20Album", "Day%201"}, "/gallery/My%20Album/Day%201"},
		{"composed name matches decomposed", []string{"Caf\u00e9"}, "/gallery/Cafe%CC%81"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tree.Lookup(tt.segments)
			if err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			if node.Address != tt.want {
				t.Errorf("Lookup() = %q, want %q", node.Address, tt.want)
			}
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	tree := build(t, map[string]string{"A/B/x.jpg": ""})

	for _, segments := range [][]string{
		{"missing"},
		{"A", "missing"},
		{"A", "B", "x.jpg"},
		{"a"},
	} {
		if _, err := tree.Lookup(segments); !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%v) error = %v, want ErrNotFound", segments, err)
		}
	}
}

func TestResolve(t *testing.T) {
	tree := build(t, map[string]string{"My Album/Day 1/a.jpg": ""})

	node, err := tree.Resolve("/gallery/My%20Album/Day%201")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if node.Name != "Day 1" {
		t.Errorf("Resolve() = %q, want Day 1", node.Name)
	}

	if node, err := tree.Resolve("/gallery/"); err != nil || node != tree.Root {
		t.Errorf("Resolve(root) = %v, %v", node, err)
	}

	for _, addr := range []string{"/photos/My%20Album", "/gallery/Nope", "/gallery/My%20Album/Nope"} {
		if _, err := tree.Resolve(addr); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) error = %v, want ErrNotFound", addr, err)
		}
	}
}

func TestLookupAlternatives(t *testing.T) {
	tree := build(t, map[string]string{
		"50%20off/a.jpg": "",
		"50 off/b.jpg":   "",
		"Sale/c.jpg":     "",
	})

	tests := []struct {
		name string
		alts [][]string
		want string
	}{
		{"written spelling first", [][]string{{"50%20off", "50 off"}}, "50%20off"},
		{"decoded spelling", [][]string{{"Sale%21", "Sale"}}, "Sale"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tree.LookupAlternatives(tt.alts)
			if err != nil {
				t.Fatalf("LookupAlternatives() error = %v", err)
			}
			if node.Name != tt.want {
				t.Errorf("LookupAlternatives() = %q, want %q", node.Name, tt.want)
			}
		})
	}

	if _, err := tree.LookupAlternatives([][]string{{"Missing", "Gone"}}); !errors.Is(err, ErrNotFound) {
		t.Errorf("LookupAlternatives(missing) error = %v, want ErrNotFound", err)
	}
}
