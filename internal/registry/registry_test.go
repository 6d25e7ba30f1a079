package registry

import (
	"errors"
	"testing"

	"github.com/ruleshub/sr/internal/config"
	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/logging"
)

func TestNew(t *testing.T) {
	tests := []struct {
		reg      config.Registry
		wantDesc string
	}{
		{config.Registry{Type: config.RegistryLocal, URL: "/tmp/rules"}, "local directory /tmp/rules"},
		{config.Registry{Type: config.RegistryGitHub, URL: "ruleshub/rules", Branch: "main"}, "github repository ruleshub/rules@main"},
		{config.Registry{Type: config.RegistryGit, URL: "git@example.com:r/rules.git"}, "git repository git@example.com:r/rules.git"},
		{config.Registry{Type: config.RegistryHTTP, URL: "https://rules.example.com/"}, "http endpoint https://rules.example.com"},
	}

	for _, tt := range tests {
		src, err := New(tt.reg, logging.ForTest(t))
		if err != nil {
			t.Errorf("New(%q) error: %v", tt.reg.Type, err)
			continue
		}
		if src.Describe() != tt.wantDesc {
			t.Errorf("Describe() = %q, want %q", src.Describe(), tt.wantDesc)
		}
	}
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(config.Registry{Type: "svn", URL: "x"}, logging.ForTest(t))
	if !errors.Is(err, srerrors.ErrUnknownRegistry) {
		t.Errorf("expected ErrUnknownRegistry, got %v", err)
	}
}

func TestCacheName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/ruleshub/rules.git", "github.com-ruleshub-rules"},
		{"git@github.com:ruleshub/rules.git", "ruleshub-rules"},
		{"https://example.com/Team/Rules", "example.com-team-rules"},
	}

	for _, tt := range tests {
		if got := cacheName(tt.url); got != tt.want {
			t.Errorf("cacheName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestManifestProvider_Interfaces(t *testing.T) {
	logger := logging.ForTest(t)

	var _ ManifestProvider = NewLocal("/tmp", logger)
	var _ ManifestProvider = NewGit("https://example.com/r.git", "main", logger)
}
