package loader

import (
	"os"
	"path/filepath"

	"mime-registry/internal/logging"
)

// EnvMapPath names the environment variable holding the mime map location.
const EnvMapPath = "MIME_MAP_XML"

// DefaultMapFilename is the file looked up next to the executable when no
// path is configured.
const DefaultMapFilename = "MimeMap.xml"

// ResolvePath turns a configured mime map location into a file path.
//
// Absolute paths are returned unchanged. Relative paths are tried against
// the working directory first and then against the directory holding the
// running executable. An empty path resolves to DefaultMapFilename next to
// the executable. The returned path may not exist; ReadFile reports that.
func ResolvePath(path string) string {
	if path == "" {
		path = DefaultMapFilename
		if exeDir := executableDir(); exeDir != "" {
			return filepath.Join(exeDir, path)
		}
		return path
	}

	if filepath.IsAbs(path) {
		return path
	}

	if abs, err := filepath.Abs(path); err == nil {
		if _, err := os.Stat(abs); err == nil {
			return abs
		}
	}

	if exeDir := executableDir(); exeDir != "" {
		candidate := filepath.Join(exeDir, path)
		if _, err := os.Stat(candidate); err == nil {
			logging.Debug("Resolved mime map %s relative to executable: %s", path, candidate)
			return candidate
		}
	}

	return path
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
