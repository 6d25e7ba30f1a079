package config

import (
	"fmt"
	"strings"

	"github.com/ruleshub/sr/internal/agent"
)

// registryTypes enumerates valid registry.type values.
var registryTypes = map[string]struct{}{
	RegistryGitHub: {},
	RegistryGit:    {},
	RegistryLocal:  {},
	RegistryHTTP:   {},
}

// Validate checks a configuration for structural problems and returns
// all of them, not just the first.
func Validate(cfg *Config) []error {
	var errs []error

	if _, ok := registryTypes[cfg.Registry.Type]; !ok {
		errs = append(errs, fmt.Errorf("unknown registry type %q (valid: github, git, local, http)", cfg.Registry.Type))
	}

	if cfg.Registry.URL == "" {
		errs = append(errs, fmt.Errorf("registry.url is required"))
	}

	if cfg.Registry.Type == RegistryGitHub && cfg.Registry.URL != "" {
		if parts := strings.Split(cfg.Registry.URL, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			errs = append(errs, fmt.Errorf("github registry url must be owner/repo, got %q", cfg.Registry.URL))
		}
	}

	if len(cfg.Agents) == 0 {
		errs = append(errs, fmt.Errorf("at least one agent is required"))
	}
	for _, name := range cfg.Agents {
		if !agent.Valid(name) {
			errs = append(errs, fmt.Errorf("unknown agent %q (valid: %s)", name, strings.Join(agent.Names(), ", ")))
		}
	}

	for name, cat := range cfg.Categories {
		if name == "" {
			errs = append(errs, fmt.Errorf("category name must not be empty"))
		}
		for _, id := range cat.Include {
			if id == "" {
				errs = append(errs, fmt.Errorf("category %q: include entries must not be empty", name))
			}
		}
		for _, id := range cat.Exclude {
			if id == "" {
				errs = append(errs, fmt.Errorf("category %q: exclude entries must not be empty", name))
			}
		}
	}

	return errs
}
