package fsutil

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// MaxRuleFileSize is the maximum rule file size we'll read (1MB).
// Rules are short markdown documents; anything larger is rejected to
// avoid memory exhaustion from a misbehaving registry.
const MaxRuleFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxRuleFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxRuleFileSize)

// ReadFileWithLimit reads a file up to MaxRuleFileSize.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when the size is already known to be too large.
	if info, err := f.Stat(); err == nil && info.Size() > MaxRuleFileSize {
		return nil, ErrFileTooLarge
	}

	r := io.LimitReader(f, MaxRuleFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if len(data) > MaxRuleFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
