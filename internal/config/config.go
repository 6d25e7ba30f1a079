package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/fsutil"
	"github.com/ruleshub/sr/internal/paths"
	"github.com/ruleshub/sr/internal/rule"
)

// Registry types accepted in .rules.json.
const (
	RegistryGitHub = "github"
	RegistryGit    = "git"
	RegistryLocal  = "local"
	RegistryHTTP   = "http"
)

// Config is the parsed form of a project's .rules.json.
type Config struct {
	Registry   Registry            `mapstructure:"registry" json:"registry"`
	Agents     []string            `mapstructure:"agents" json:"agents"`
	Categories map[string]Category `mapstructure:"categories" json:"categories"`
	Overrides  []string            `mapstructure:"overrides" json:"overrides,omitempty"`
}

// Registry describes where rules are fetched from.
type Registry struct {
	// Type is one of github, git, local, http.
	Type string `mapstructure:"type" json:"type"`

	// URL locates the registry: "owner/repo" for github, a git URL for
	// git, a directory path for local, a base URL for http.
	URL string `mapstructure:"url" json:"url"`

	// Branch applies to github/git registries. Defaults to main.
	Branch string `mapstructure:"branch" json:"branch,omitempty"`
}

// Category configures inclusion for one rule category.
type Category struct {
	Enabled bool     `mapstructure:"enabled" json:"enabled"`
	Include []string `mapstructure:"include" json:"include,omitempty"`
	Exclude []string `mapstructure:"exclude" json:"exclude,omitempty"`
}

// Default returns a configuration with sensible defaults for a project
// using the given agents.
func Default(agents []string) *Config {
	return &Config{
		Registry: Registry{
			Type:   RegistryGitHub,
			Branch: "main",
		},
		Agents:     agents,
		Categories: map[string]Category{},
	}
}

// Load reads and validates a .rules.json from the given path.
// Returns srerrors.ErrConfigNotFound when the file does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(srerrors.ErrConfigNotFound, "%s", path)
		}
		return nil, errors.Wrap(err, "checking config file")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault("registry.type", RegistryGitHub)
	v.SetDefault("registry.branch", "main")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrapf(srerrors.ErrInvalidConfig, "%s: %v", path, errs[0])
	}

	return &cfg, nil
}

// LoadProject locates the project root from startDir and loads its config.
// Returns the config and the project root directory.
func LoadProject(startDir string) (*Config, string, error) {
	root, err := paths.FindProjectRoot(startDir)
	if err != nil {
		return nil, "", errors.Wrap(srerrors.ErrConfigNotFound, err.Error())
	}
	cfg, err := Load(paths.ConfigPath(root))
	if err != nil {
		return nil, "", err
	}
	return cfg, root, nil
}

// Save writes the config as indented JSON to path atomically.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := paths.EnsureDir(dir); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fsutil.AtomicWriteJSON(path, cfg)
}

// Selection converts the config's category filters and overrides into the
// resolver's input form.
func (c *Config) Selection() rule.Selection {
	categories := make(map[string]rule.CategoryFilter, len(c.Categories))
	for name, cat := range c.Categories {
		categories[name] = rule.CategoryFilter{
			Enabled: cat.Enabled,
			Include: cat.Include,
			Exclude: cat.Exclude,
		}
	}
	return rule.Selection{
		Categories: categories,
		Overrides:  c.Overrides,
	}
}
