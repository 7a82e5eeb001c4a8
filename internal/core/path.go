package core

import (
	"os"
	"path/filepath"
	"strings"
)

// WorkbookExt is the expected extension for source and destination files.
const WorkbookExt = ".xlsx"

// NormalizeSavePath resolves a user-supplied destination path:
//
//   - "~" and "~/..." are expanded to the user's home directory
//   - a path naming an existing directory gets defaultName appended
//   - a path without the workbook extension (case-insensitive) gets it appended
//
// An empty path stays empty; callers decide whether that is an error.
func NormalizeSavePath(path, defaultName string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, defaultName)
	}
	if !strings.HasSuffix(strings.ToLower(path), WorkbookExt) {
		path += WorkbookExt
	}
	return path
}
