package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	srerrors "github.com/ruleshub/sr/internal/errors"
	"github.com/ruleshub/sr/internal/paths"
)

func TestRunDoctor_MissingConfig(t *testing.T) {
	doctorJSON = false
	configFlag = ""
	t.Chdir(t.TempDir())

	var buf bytes.Buffer
	doctorCmd.SetOut(&buf)
	doctorCmd.SetContext(context.Background())
	err := runDoctor(doctorCmd, nil)

	require.Error(t, err)
	var exitErr *srerrors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, srerrors.ExitUser, exitErr.Code)
	assert.Contains(t, buf.String(), "sr init")
}

func TestRunDoctor_HealthyProject(t *testing.T) {
	doctorJSON = false
	projectDir, _ := setupSyncProject(t)
	configFlag = paths.ConfigPath(projectDir)
	t.Cleanup(func() { configFlag = "" })

	var buf bytes.Buffer
	doctorCmd.SetOut(&buf)
	doctorCmd.SetContext(context.Background())
	require.NoError(t, runDoctor(doctorCmd, nil))
	assert.Contains(t, buf.String(), "All checks passed")
}

func TestRunDoctor_JSON(t *testing.T) {
	doctorJSON = true
	t.Cleanup(func() { doctorJSON = false })
	projectDir, _ := setupSyncProject(t)
	configFlag = paths.ConfigPath(projectDir)
	t.Cleanup(func() { configFlag = "" })

	var buf bytes.Buffer
	doctorCmd.SetOut(&buf)
	doctorCmd.SetContext(context.Background())
	require.NoError(t, runDoctor(doctorCmd, nil))

	var results []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &results))
	assert.NotEmpty(t, results)
	assert.Equal(t, "config", results[0]["name"])
}
