package mediatypes

import (
	"path"
	"strings"
)

// FileType represents the kind of a directory entry as the indexer sees it.
type FileType string

const (
	// FileTypeFolder represents a directory.
	FileTypeFolder FileType = "folder"
	// FileTypeImage represents a raster image that can appear in a gallery.
	FileTypeImage FileType = "image"
	// FileTypeOther represents anything the indexer does not display.
	FileTypeOther FileType = "other"
)

// ImageExtensions is the fixed allow-list of raster formats treated as media.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".avif": true,
	".heic": true,
	".heif": true,
}

// MimeTypes maps media extensions to their MIME types.
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".avif": "image/avif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// Ext returns the lowercase extension of a filename, including the dot.
func Ext(filename string) string {
	return strings.ToLower(path.Ext(filename))
}

// IsMedia reports whether filename carries an allow-listed raster extension.
// The check is case-insensitive; dot-prefixed control files never qualify.
func IsMedia(filename string) bool {
	if strings.HasPrefix(filename, ".") {
		return false
	}
	return ImageExtensions[Ext(filename)]
}

// GetFileType returns the FileType for a given file extension.
// The extension should be lowercase and include the leading dot (e.g., ".jpg").
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	return FileTypeOther
}

// Classify returns the FileType of a directory entry.
func Classify(name string, isDir bool) FileType {
	switch {
	case isDir:
		return FileTypeFolder
	case strings.HasPrefix(name, "."):
		return FileTypeOther
	default:
		return GetFileType(Ext(name))
	}
}

// GetMimeType returns the MIME type for a given file extension.
// Returns "application/octet-stream" if the extension is not recognized.
func GetMimeType(ext string) string {
	if mime, ok := MimeTypes[ext]; ok {
		return mime
	}
	return "application/octet-stream"
}
