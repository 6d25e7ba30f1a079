package sync

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/ruleshub/sr/internal/fsutil"
)

// manifestFileName tracks which files in an agent rules directory were
// written by sr. Prune only ever touches files listed here, so rules a
// user added by hand are never deleted.
const manifestFileName = ".sync-manifest.json"

type manifest struct {
	Files []string `json:"files"`
}

// readManifest returns the file names recorded for dir, or nil when no
// manifest exists.
func readManifest(dir string) ([]string, error) {
	path := filepath.Join(dir, manifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading sync manifest")
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return m.Files, nil
}

// writeManifest records the file names sr owns in dir.
func writeManifest(dir string, files []string) error {
	path := filepath.Join(dir, manifestFileName)
	if err := fsutil.AtomicWriteJSON(path, manifest{Files: files}); err != nil {
		return errors.Wrap(err, "writing sync manifest")
	}
	return nil
}
