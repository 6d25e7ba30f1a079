package agent

import (
	"os"
	"path/filepath"
	"strings"
)

// Status indicates whether an agent is present in a project.
type Status string

const (
	// StatusPresent indicates the agent's tool directory exists in the project.
	StatusPresent Status = "present"

	// StatusAbsent indicates the agent's tool directory does not exist.
	StatusAbsent Status = "absent"
)

// Detection describes one agent's presence in a project.
type Detection struct {
	// Name is the agent identifier.
	Name string

	// RulesDir is the rules directory relative to the project root.
	RulesDir string

	// Status reports whether the agent's tool directory exists.
	Status Status
}

// Detect checks each supported agent's tool directory under projectRoot.
// Presence is judged on the directory that holds the rules dir (.cursor,
// .claude, ...), not the rules dir itself, so a project that uses an agent
// but has never synced still detects as present. Copilot is the exception:
// .github exists in most repositories for reasons unrelated to Copilot, so
// it only counts when a Copilot-specific marker is found.
func Detect(projectRoot string) []Detection {
	out := make([]Detection, 0, len(order))
	for _, a := range All() {
		status := StatusAbsent
		if detected(projectRoot, a) {
			status = StatusPresent
		}
		out = append(out, Detection{
			Name:     a.Name(),
			RulesDir: a.RulesDir(),
			Status:   status,
		})
	}
	return out
}

func detected(projectRoot string, a Agent) bool {
	if a.Name() == NameCopilot {
		if dirExists(filepath.Join(projectRoot, a.RulesDir())) {
			return true
		}
		_, err := os.Stat(filepath.Join(projectRoot, ".github", "copilot-instructions.md"))
		return err == nil
	}
	return dirExists(filepath.Join(projectRoot, toolRoot(a)))
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DetectedNames returns the names of agents present under projectRoot.
func DetectedNames(projectRoot string) []string {
	var names []string
	for _, d := range Detect(projectRoot) {
		if d.Status == StatusPresent {
			names = append(names, d.Name)
		}
	}
	return names
}

// toolRoot returns the first path element of the agent's rules dir,
// e.g. ".cursor" for ".cursor/rules".
func toolRoot(a Agent) string {
	dir := a.RulesDir()
	if i := strings.IndexByte(dir, '/'); i >= 0 {
		return dir[:i]
	}
	return dir
}
