package cli

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girgen/internal/compiler"
)

type checkResponse struct {
	Status string      `json:"status"`
	Data   CheckResult `json:"data"`
}

func TestCheckCommandLifecycle(t *testing.T) {
	p := newProject(t, gtkSnapshot, gtkConfig)

	// Nothing generated yet.
	stdout, _, err := p.run(t, "check")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "is out of date")
	assert.NoFileExists(t, p.enumsFile(), "check writes nothing to the target")

	_, _, err = p.run(t, "generate")
	require.NoError(t, err)

	stdout, _, err = p.run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "is up to date")

	// Hand edits are detected.
	require.NoError(t, os.WriteFile(p.enumsFile(), []byte("// edited\n"), 0o644))
	_, _, err = p.run(t, "check")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCheckCommandJSON(t *testing.T) {
	p := newProject(t, gtkSnapshot, gtkConfig)
	_, _, err := p.run(t, "generate")
	require.NoError(t, err)

	stdout, _, err := p.run(t, "--format", "json", "check")
	require.NoError(t, err)

	var resp checkResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, p.enumsFile(), resp.Data.File)
	assert.True(t, resp.Data.UpToDate)
	assert.Empty(t, resp.Data.Problems)
}

func TestCheckCommandReportsSnapshotProblems(t *testing.T) {
	snapshot := gtkSnapshot + `
namespace: GLib: enumeration: Broken: {
	c_type: "GBroken"
	members: [
		{name: "a", c_identifier: "G_BROKEN_A", value: 0},
		{name: "b", c_identifier: "G_BROKEN_A", value: 1},
	]
}
`
	p := newProject(t, snapshot, gtkConfig)
	_, _, err := p.run(t, "generate")
	require.NoError(t, err, "problems outside the selection do not block generation")

	stdout, _, err := p.run(t, "--format", "json", "check")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp checkResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.UpToDate)
	require.Len(t, resp.Data.Problems, 1)
	assert.Equal(t, compiler.ErrDuplicateCIdentifier, resp.Data.Problems[0].Code)
	assert.Equal(t, "GLib.Broken.members[1].c_identifier", resp.Data.Problems[0].Field)
}

func TestCheckCommandNothingSelected(t *testing.T) {
	p := newProject(t, gtkSnapshot, "library: Gtk\ngir_directory: gir-files\n")

	stdout, _, err := p.run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No enumerations selected")
}
