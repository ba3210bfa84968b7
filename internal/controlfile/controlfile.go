package controlfile

import (
	"strings"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Recognized control files, one set per directory.
const (
	Order   = ".order"
	Folders = ".folders"
	Images  = ".images"
	Cover   = ".cover"
	Aliases = ".aliases"
	Ignore  = ".ignore"
	// Limit lives at the collection root only.
	Limit = ".limit"
)

// zeroWidth are the invisible characters editors leave behind in hand-written
// override lines.
var zeroWidth = strings.NewReplacer(
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
)

// Decode strips a UTF-8 or UTF-16 byte-order mark and returns the text.
// ok is false when the content is not valid text.
func Decode(data []byte) (string, bool) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", false
	}
	text := string(out)
	if strings.ContainsRune(text, '\uFFFD') {
		return "", false
	}
	return text, true
}

// Lines returns trimmed, non-empty lines, skipping "#" and "//" comments.
func Lines(data []byte) []string {
	text, ok := Decode(data)
	if !ok {
		return nil
	}
	var lines []string
	for _, line := range splitLines(text) {
		if IsComment(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// IsComment reports whether a trimmed line is a "#" or "//" comment.
func IsComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// RawLines returns trimmed, non-empty lines with no comment handling.
func RawLines(data []byte) []string {
	text, ok := Decode(data)
	if !ok {
		return nil
	}
	return splitLines(text)
}

// StripInvisible removes zero-width characters from an address line.
func StripInvisible(line string) string {
	return strings.TrimSpace(zeroWidth.Replace(line))
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Read loads a control file from dir and parses it with Lines.
func Read(src filesystem.Source, dir, name string) []string {
	data, ok := read(src, dir, name)
	if !ok {
		return nil
	}
	return Lines(data)
}

// ReadRaw loads a control file from dir and parses it with RawLines.
func ReadRaw(src filesystem.Source, dir, name string) []string {
	data, ok := read(src, dir, name)
	if !ok {
		return nil
	}
	return RawLines(data)
}

// ReadAddresses loads an address list (".cover" or ".aliases"). Zero-width
// characters are stripped before comments and blank lines are skipped.
func ReadAddresses(src filesystem.Source, dir, name string) []string {
	var lines []string
	for _, line := range ReadRaw(src, dir, name) {
		line = StripInvisible(line)
		if line == "" || IsComment(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Has reports whether dir lists a control file called name.
func Has(entries []filesystem.Entry, name string) bool {
	for _, e := range entries {
		if !e.IsDir && e.Name == name {
			return true
		}
	}
	return false
}

func read(src filesystem.Source, dir, name string) ([]byte, bool) {
	path := name
	if dir != "" {
		path = dir + "/" + name
	}
	data, err := src.ReadFile(path)
	if err != nil {
		logging.Debug("Control file %s unavailable: %v", path, err)
		return nil, false
	}
	return data, true
}
