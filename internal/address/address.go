package address

import (
	"errors"
	"net/url"
	"strings"
)

// ErrRejected is returned for lines that cannot name anything inside the
// collection: absolute filesystem paths, drive letters, or ".." escapes.
var ErrRejected = errors.New("address rejected")

// Form records how an override line was written.
type Form int

const (
	// Relative lines resolve against the directory holding the control file.
	Relative Form = iota
	// Rooted lines start with the root marker.
	Rooted
)

// Resolved is an override line mapped onto the collection.
type Resolved struct {
	// Segments are names from the collection root, "."/".." already applied
	// and percent-encoding decoded.
	Segments []string
	// Raw holds each segment as written, before decoding. Segments inherited
	// from the current directory are real names and appear unchanged.
	Raw  []string
	Form Form
}

// Candidates returns the spellings to try for segment i: as written first,
// then decoded when that differs. A name on disk may itself contain a valid
// "%XX" sequence.
func (r Resolved) Candidates(i int) []string {
	if i >= len(r.Raw) || r.Raw[i] == r.Segments[i] {
		return []string{r.Segments[i]}
	}
	return []string{r.Raw[i], r.Segments[i]}
}

// Alternatives returns Candidates for every segment.
func (r Resolved) Alternatives() [][]string {
	alts := make([][]string, len(r.Segments))
	for i := range r.Segments {
		alts[i] = r.Candidates(i)
	}
	return alts
}

// Slugify encodes one path segment into a URL-safe token. Unslugify reverses it.
func Slugify(name string) string {
	return url.PathEscape(name)
}

// Unslugify decodes a token produced by Slugify.
func Unslugify(token string) (string, error) {
	return url.PathUnescape(token)
}

// decode unslugifies a segment, keeping it verbatim when it is not valid
// percent-encoding (override files are hand-written).
func decode(segment string) string {
	if name, err := Unslugify(segment); err == nil {
		return name
	}
	return segment
}

// Public builds "/" + marker + "/" + join(slugified segments, "/").
func Public(marker string, segments ...string) string {
	slugs := make([]string, len(segments))
	for i, s := range segments {
		slugs[i] = Slugify(s)
	}
	return "/" + marker + "/" + strings.Join(slugs, "/")
}

// Split turns a slash-separated relative path into segments; "" is the root.
func Split(rel string) []string {
	if rel == "" {
		return nil
	}
	return strings.Split(rel, "/")
}

// Parse resolves an override line against current, the segments of the
// directory that holds the control file.
func Parse(line, marker string, current []string) (Resolved, error) {
	line = strings.ReplaceAll(strings.TrimSpace(line), `\`, "/")
	if line == "" {
		return Resolved{}, ErrRejected
	}
	if hasDriveLetter(line) {
		return Resolved{}, ErrRejected
	}

	form := Relative
	rest := line
	if strings.HasPrefix(line, "/") {
		trimmed := strings.TrimLeft(line, "/")
		head, tail, _ := strings.Cut(trimmed, "/")
		if head != marker {
			return Resolved{}, ErrRejected
		}
		form, rest = Rooted, tail
	} else if head, tail, _ := strings.Cut(line, "/"); head == marker {
		form, rest = Rooted, tail
	}

	var segments, raw []string
	if form == Relative {
		segments = append(segments, current...)
		raw = append(raw, current...)
	}

	for _, seg := range strings.Split(rest, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(segments) == 0 {
				return Resolved{}, ErrRejected
			}
			segments = segments[:len(segments)-1]
			raw = raw[:len(raw)-1]
		default:
			segments = append(segments, decode(seg))
			raw = append(raw, seg)
		}
	}

	return Resolved{Segments: segments, Raw: raw, Form: form}, nil
}

// SplitPublic maps a public address back to raw segments.
func SplitPublic(addr, marker string) ([]string, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(addr), "/")
	head, tail, _ := strings.Cut(trimmed, "/")
	if head != marker {
		return nil, ErrRejected
	}
	var segments []string
	for _, seg := range strings.Split(tail, "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, decode(seg))
	}
	return segments, nil
}

func hasDriveLetter(line string) bool {
	if len(line) < 2 || line[1] != ':' {
		return false
	}
	c := line[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
