package classify

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// Container formats the scanner accepts. Eligibility is decided by extension
// alone; file content is never sniffed.
var videoExtensions = map[string]bool{
	"mp4": true, "mkv": true, "avi": true, "mov": true,
	"m4v": true, "wmv": true, "flv": true, "webm": true,
	"ts": true, "m2ts": true, "mpg": true, "mpeg": true,
	"3gp": true, "ogv": true,
}

// IsVideoFile reports whether name carries an allow-listed video extension.
func IsVideoFile(name string) bool {
	return videoExtensions[Ext(name)]
}

// Ext returns the lowercase extension of the final path segment, without the
// leading dot. Empty when there is no extension.
func Ext(path string) string {
	ext := filepath.Ext(filepath.Base(path))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// AssetKey derives the on-disk filename stem for a path's derived assets: the
// md5 hex digest of the path string. Deterministic across runs; the path is
// treated as an opaque identity, so the same file reached via two spellings
// gets two keys.
func AssetKey(path string) string {
	sum := md5.Sum([]byte(path))
	return hex.EncodeToString(sum[:])
}
