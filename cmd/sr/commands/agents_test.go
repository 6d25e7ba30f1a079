package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAgents_Tabular(t *testing.T) {
	agentsJSON = false
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claude"), 0o755))
	t.Chdir(dir)

	var buf bytes.Buffer
	agentsCmd.SetOut(&buf)
	require.NoError(t, runAgents(agentsCmd, nil))

	out := buf.String()
	assert.Contains(t, out, "cursor")
	assert.Contains(t, out, ".cursor/rules")
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "yes")
}

func TestRunAgents_JSON(t *testing.T) {
	agentsJSON = true
	t.Cleanup(func() { agentsJSON = false })
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".cursor"), 0o755))
	t.Chdir(dir)

	var buf bytes.Buffer
	agentsCmd.SetOut(&buf)
	require.NoError(t, runAgents(agentsCmd, nil))

	var infos []agentInfoJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, "cursor", infos[0].Name)
	assert.Equal(t, ".cursor/rules", infos[0].RulesDir)
	assert.True(t, infos[0].Detected)
	assert.False(t, infos[1].Detected)
}
