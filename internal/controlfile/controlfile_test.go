package controlfile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"media-gallery/internal/filesystem"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []string
	}{
		{
			name: "plain",
			data: []byte("b\na\n"),
			want: []string{"b", "a"},
		},
		{
			name: "crlf and blanks",
			data: []byte("b\r\n\r\n  a  \r\n"),
			want: []string{"b", "a"},
		},
		{
			name: "comments",
			data: []byte("# heading\nb\n// note\n  # indented\na"),
			want: []string{"b", "a"},
		},
		{
			name: "utf8 bom",
			data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("first\nsecond\n")...),
			want: []string{"first", "second"},
		},
		{
			name: "utf16le bom",
			data: []byte{0xFF, 0xFE, 'a', 0, '\n', 0, 'b', 0},
			want: []string{"a", "b"},
		},
		{
			name: "all comments",
			data: []byte("# one\n// two\n\n"),
			want: nil,
		},
		{
			name: "invalid utf8",
			data: []byte{'a', '\n', 0xFF, 0xFE, 0xFD},
			want: nil,
		},
		{
			name: "empty",
			data: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Lines(tt.data); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestRawLinesKeepsCommentMarkers(t *testing.T) {
	got := RawLines([]byte("\ufeff# not a comment\r\n\r\n b.jpg \n"))
	want := []string{"# not a comment", "b.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RawLines() = %#v, want %#v", got, want)
	}
}

func TestStripInvisible(t *testing.T) {
	got := StripInvisible("\ufeff\u200bcover\u200d.jpg\u2060 ")
	if got != "cover.jpg" {
		t.Errorf("StripInvisible() = %q, want %q", got, "cover.jpg")
	}
}

func TestReadAddresses(t *testing.T) {
	root := t.TempDir()
	content := "\ufeff# cover for this album\n\u200b\u200b\n  \u200bsub/x.jpg\u200d  \r\n// later\nother.jpg\n"
	if err := os.WriteFile(filepath.Join(root, Cover), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write cover file: %v", err)
	}
	src, err := filesystem.Open(root)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got := ReadAddresses(src, "", Cover)
	want := []string{"sub/x.jpg", "other.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReadAddresses() = %q, want %q", got, want)
	}

	if got := ReadAddresses(src, "", Aliases); got != nil {
		t.Errorf("ReadAddresses() for missing file = %q, want nil", got)
	}
}
