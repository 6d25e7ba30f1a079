package registry

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
)

// ManifestFileName is the optional descriptor at a registry's root.
const ManifestFileName = "registry.toml"

// Manifest describes a registry: its display name and per-category
// metadata. It is informational only; sync works without one.
//
//	name = "ruleshub community rules"
//
//	[categories.go]
//	description = "Go coding standards"
//
//	[categories.react]
//	description = "React and hooks conventions"
type Manifest struct {
	// Name is the registry's display name.
	Name string `toml:"name"`

	// Description summarizes the registry.
	Description string `toml:"description,omitempty"`

	// Categories maps category names to their metadata.
	Categories map[string]CategoryInfo `toml:"categories,omitempty"`
}

// CategoryInfo is per-category metadata from the manifest.
type CategoryInfo struct {
	Description string `toml:"description,omitempty"`
}

// LoadManifest reads registry.toml from the given registry root directory.
// Returns (nil, nil) when the file does not exist.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading registry manifest")
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return &m, nil
}
