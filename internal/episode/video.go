package episode

import (
	"path/filepath"
	"strings"
)

var videoExtensions = []string{
	".mkv", ".mp4", ".avi", ".wmv",
	".mov", ".m4v", ".webm", ".ts",
	".m2ts", ".vob", ".flv", ".divx",
	".mpg", ".mpeg",
}

// Extensions is a set of lowercase file extensions including the leading dot.
type Extensions map[string]struct{}

// VideoExtensions returns the recognized video extensions plus any extras.
// Extras may be given with or without the leading dot, in any case.
func VideoExtensions(extra ...string) Extensions {
	set := make(Extensions, len(videoExtensions)+len(extra))
	for _, ext := range videoExtensions {
		set[ext] = struct{}{}
	}
	for _, ext := range extra {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

// Match reports whether path ends in one of the extensions.
func (e Extensions) Match(path string) bool {
	_, ok := e[strings.ToLower(filepath.Ext(path))]
	return ok
}

var defaultVideoExtensions = VideoExtensions()

// IsVideoFile checks if the file is a video file based on extension.
func IsVideoFile(path string) bool {
	return defaultVideoExtensions.Match(path)
}
