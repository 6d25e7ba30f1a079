package doctor

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleshub/sr/internal/config"
	"github.com/ruleshub/sr/internal/logging"
	"github.com/ruleshub/sr/internal/paths"
)

func writeProject(t *testing.T, cfg *config.Config) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, config.Save(paths.ConfigPath(root), cfg))
	return root
}

func writeRegistry(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	catDir := filepath.Join(dir, "rules", "go")
	require.NoError(t, os.MkdirAll(catDir, 0o755))
	content := "---\nid: error-handling\n---\n\nWrap errors with context.\n"
	require.NoError(t, os.WriteFile(filepath.Join(catDir, "error-handling.md"), []byte(content), 0o644))
	return dir
}

func TestRun_NoConfig(t *testing.T) {
	d := New(t.TempDir(), logging.ForTest(t))
	results := d.Run(context.Background())

	require.Len(t, results, 1)
	assert.Equal(t, "config", results[0].Name)
	assert.Equal(t, StatusFail, results[0].Status)
	assert.Equal(t, "Run: sr init", results[0].Suggestion)
	assert.True(t, Failed(results))
}

func TestRun_HealthyProject(t *testing.T) {
	cfg := config.Default([]string{"claude", "cursor"})
	cfg.Registry = config.Registry{Type: config.RegistryLocal, URL: writeRegistry(t)}
	root := writeProject(t, cfg)

	d := New(root, logging.ForTest(t))
	results := d.Run(context.Background())

	assert.False(t, Failed(results))
	names := make([]string, 0, len(results))
	for _, res := range results {
		names = append(names, res.Name)
		assert.Equal(t, StatusOK, res.Status, "check %s: %s", res.Name, res.Detail)
	}
	assert.Equal(t, []string{"config", "git", "registry", "agent:claude", "agent:cursor"}, names)
}

func TestRun_UnreachableRegistry(t *testing.T) {
	cfg := config.Default([]string{"claude"})
	cfg.Registry = config.Registry{
		Type: config.RegistryLocal,
		URL:  filepath.Join(t.TempDir(), "does-not-exist"),
	}
	root := writeProject(t, cfg)

	d := New(root, logging.ForTest(t))
	results := d.Run(context.Background())

	require.True(t, Failed(results))
	var found bool
	for _, res := range results {
		if res.Name == "registry" {
			found = true
			assert.Equal(t, StatusFail, res.Status)
		}
	}
	assert.True(t, found)
}

func TestReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatText)
	require.NoError(t, r.Report([]Result{
		{Name: "config", Status: StatusOK, Detail: "valid config"},
		{Name: "registry", Status: StatusFail, Detail: "connection refused", Suggestion: "Check your network"},
	}))

	out := buf.String()
	assert.Contains(t, out, "config: valid config")
	assert.Contains(t, out, "registry: connection refused")
	assert.Contains(t, out, "Check your network")
	assert.Contains(t, out, "1 check(s) failed")
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, FormatJSON)
	require.NoError(t, r.Report([]Result{
		{Name: "config", Status: StatusOK, Detail: "valid config"},
	}))

	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "["))
	assert.Contains(t, buf.String(), `"name": "config"`)
	assert.Contains(t, buf.String(), `"status": "ok"`)
}
