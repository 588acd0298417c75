// Package classify decides how a local file is represented in a chat
// turn: uploaded as video, inlined as text, inlined as base64 image, or
// mentioned by name only.
package classify

import (
	"mime"
	"path/filepath"
	"strings"
)

// Category is the closed set of attachment kinds.
type Category int

const (
	// Opaque is a file gemchat cannot inline or upload; only its
	// existence is reported to the model.
	Opaque Category = iota
	// Video is uploaded through the Files API before being referenced.
	Video
	// TextLike is read as UTF-8 text and inlined verbatim.
	TextLike
	// Image is inlined as base64 data.
	Image
)

func (c Category) String() string {
	switch c {
	case Video:
		return "video"
	case TextLike:
		return "text"
	case Image:
		return "image"
	default:
		return "opaque"
	}
}

// videoMimeTypes maps the supported video extensions to the exact mime
// type declared during upload. mimetypes guessing is unreliable for
// containers like .mkv, so the mapping is fixed.
var videoMimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".flv":  "video/x-flv",
	".wmv":  "video/x-ms-wmv",
	".m4v":  "video/mp4",
}

// codeExtensions covers source, markup, and config files that lack a
// text/* mime registration but should still be inlined as text.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".html": true, ".css": true, ".java": true,
	".cpp": true, ".c": true, ".h": true, ".json": true, ".xml": true,
	".yaml": true, ".yml": true, ".md": true, ".txt": true, ".sh": true,
	".bat": true, ".ps1": true, ".sql": true, ".r": true, ".php": true,
	".go": true, ".rs": true, ".swift": true, ".kt": true, ".ts": true,
	".jsx": true, ".tsx": true, ".vue": true,
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true,
}

// Classify returns the Category for path. The decision order is
// load-bearing: a video extension always wins, even when mime guessing
// says otherwise (text/html servers have been seen for .mp4).
func Classify(path string) Category {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := videoMimeTypes[ext]; ok {
		return Video
	}
	if strings.HasPrefix(mime.TypeByExtension(ext), "text/") || codeExtensions[ext] {
		return TextLike
	}
	if imageExtensions[ext] {
		return Image
	}
	return Opaque
}

// IsVideo reports whether path carries a supported video extension.
func IsVideo(path string) bool {
	_, ok := videoMimeTypes[strings.ToLower(filepath.Ext(path))]
	return ok
}

// VideoMimeType returns the declared upload mime type for a supported
// video file, or "" when the extension is not in the video set.
func VideoMimeType(path string) string {
	return videoMimeTypes[strings.ToLower(filepath.Ext(path))]
}

// GuessMimeType returns a best-effort mime type for non-video files,
// falling back to an image/<ext> form for known image extensions and
// application/octet-stream otherwise.
func GuessMimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	if imageExtensions[ext] {
		return "image/" + strings.TrimPrefix(ext, ".")
	}
	return "application/octet-stream"
}
