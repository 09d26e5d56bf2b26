package static

import "path/filepath"

// DefaultContentType is used for extensions missing from the mapping.
const DefaultContentType = "application/octet-stream"

// ContentType looks up the extension of path, dot included, in mimeTypes.
// The lookup is case-sensitive.
func ContentType(path string, mimeTypes map[string]string) string {
	if ct, ok := mimeTypes[filepath.Ext(path)]; ok {
		return ct
	}
	return DefaultContentType
}
