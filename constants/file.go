package constants

import "strings"

// FileTypes holds the allowed file types for the format field on a job.
var FileTypes = []string{"PDF", "DOCX", "TXT"}

// AllowedExtensions holds the upload allow-list. Anything else is rejected
// before a job is created.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a filename extension (with or without the dot,
// any case) is on the upload allow-list.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
