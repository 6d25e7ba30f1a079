package git

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://github.com/ruleshub/rules.git", true},
		{"https://github.com/ruleshub/rules", true},
		{"git@github.com:ruleshub/rules.git", true},
		{"git://example.com/rules", true},
		{"rules.git", true},
		{"./local/dir", false},
		{"/abs/path", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsRepo(t *testing.T) {
	dir := t.TempDir()

	// Not a repo
	if err := IsRepo(dir); err == nil {
		t.Error("expected error for directory without .git")
	}

	// .git as file, not directory
	fileRepo := t.TempDir()
	if err := os.WriteFile(filepath.Join(fileRepo, ".git"), []byte("gitdir: elsewhere"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := IsRepo(fileRepo); err == nil {
		t.Error("expected error for .git file")
	}

	// Proper .git directory
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := IsRepo(dir); err != nil {
		t.Errorf("IsRepo() error on valid repo layout: %v", err)
	}
}
