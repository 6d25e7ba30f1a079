// Package git wraps the git binary for cloning and updating registry caches.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Available reports whether the git binary is present on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsURL returns true if s looks like a git repository URL:
// anything with a scheme ("://"), a ".git" suffix, or an SSH-style
// "git@host:path" prefix.
func IsURL(s string) bool {
	if strings.Contains(s, "://") {
		return true
	}
	if strings.HasSuffix(s, ".git") {
		return true
	}
	if strings.HasPrefix(s, "git@") {
		return true
	}
	return false
}

// Clone clones url to dest with the specified depth and optional branch.
// Output is streamed to os.Stdout/os.Stderr and stdin is connected to
// os.Stdin to support interactive authentication.
func Clone(url, dest string, depth int, branch string) error {
	args := []string{"clone", fmt.Sprintf("--depth=%d", depth)}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, dest)

	cmd := exec.Command("git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git clone failed")
	}
	return nil
}

// Pull performs a fast-forward-only pull in the given repository directory.
func Pull(repoPath string) error {
	cmd := exec.Command("git", "-C", repoPath, "pull", "--ff-only")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git pull failed")
	}
	return nil
}

// IsRepo checks whether repoPath contains a .git directory.
func IsRepo(repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf("not a git repository: %s", repoPath)
		}
		return errors.Wrap(err, "checking git directory")
	}
	if !info.IsDir() {
		return errors.Newf(".git is not a directory: %s", gitDir)
	}
	return nil
}
