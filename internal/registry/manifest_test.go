package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `name = "community rules"
description = "Shared coding standards"

[categories.go]
description = "Go coding standards"

[categories.react]
description = "React conventions"
`
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() error: %v", err)
	}
	if m == nil {
		t.Fatal("LoadManifest() returned nil manifest")
	}
	if m.Name != "community rules" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Categories["go"].Description != "Go coding standards" {
		t.Errorf("go description = %q", m.Categories["go"].Description)
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("missing manifest should not error: %v", err)
	}
	if m != nil {
		t.Error("missing manifest should return nil")
	}
}

func TestLoadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("= not toml ="), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadManifest(dir); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
