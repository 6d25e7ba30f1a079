// Package paths centralizes filesystem locations used by sr: the project
// config file, XDG cache directories for cloned registries, and default
// file permissions.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// ConfigFileName is the project-level configuration file consumed by sr.
const ConfigFileName = ".rules.json"

// AppName is the application name used for cache and config directories.
const AppName = "sr"

// DefaultDirPerm is the permission for directories sr creates.
const DefaultDirPerm = 0o755

// ErrProjectRootNotFound indicates no .rules.json was found walking up
// from the working directory.
var ErrProjectRootNotFound = errors.New("no .rules.json found in this or any parent directory")

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// RegistryCacheDir returns the directory for cached registry clones.
// Returns: <CacheHome>/sr/registries/
func RegistryCacheDir() string {
	return filepath.Join(CacheHome(), AppName, "registries")
}

// ConfigPath returns the path to .rules.json under the given project root.
func ConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ConfigFileName)
}

// FindProjectRoot walks up from startDir looking for a directory containing
// .rules.json. Returns ErrProjectRootNotFound when the filesystem root is
// reached without a match.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, "resolving start directory")
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ConfigFileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrProjectRootNotFound
		}
		dir = parent
	}
}

// EnsureDir creates the directory and any necessary parents.
// It is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DefaultDirPerm)
}
