// Package config loads, validates, and saves the project-level .rules.json
// that drives rule synchronization.
//
// # Configuration File
//
// The config lives at the project root as .rules.json:
//
//	{
//	  "registry": { "type": "github", "url": "ruleshub/rules", "branch": "main" },
//	  "agents": ["cursor", "claude"],
//	  "categories": {
//	    "go":    { "enabled": true, "exclude": ["naming"] },
//	    "react": { "enabled": true, "include": ["hooks"] }
//	  },
//	  "overrides": ["error-handling"]
//	}
//
// Registry types: "github" (owner/repo fetched via the GitHub API), "git"
// (any git URL, cloned into the XDG cache), "local" (a directory path), and
// "http" (a base URL serving index.json plus rule files).
//
// # Loading
//
// [LoadProject] walks up from the working directory to find the project
// root, then loads and validates the file:
//
//	cfg, root, err := config.LoadProject(".")
//	if errors.Is(err, srerrors.ErrConfigNotFound) {
//	    // suggest sr init
//	}
//
// [Validate] returns every structural problem found, for batch reporting
// by sr doctor.
package config
