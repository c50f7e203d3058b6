package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const gtkSnapshot = `package gir

namespace: Gtk: {
	enumeration: Align: {
		c_type:        "GtkAlign"
		glib_get_type: "gtk_align_get_type"
		members: [
			{name: "fill", c_identifier: "GTK_ALIGN_FILL", value: 0},
			{name: "start", c_identifier: "GTK_ALIGN_START", value: 1},
			{name: "end", c_identifier: "GTK_ALIGN_END", value: 2},
		]
	}
	enumeration: Status: {
		c_type:       "GtkStatus"
		error_domain: "status_quark"
		members: [
			{name: "ok", c_identifier: "GTK_STATUS_OK", value: 0},
			{name: "fail", c_identifier: "GTK_STATUS_FAIL", value: 1},
			{name: "fail_alias", c_identifier: "GTK_STATUS_FAIL_ALIAS", value: 1},
		]
	}
	class: Button: c_type: "GtkButton"
}

namespace: GLib: enumeration: SeekType: {
	c_type: "GSeekType"
	members: [
		{name: "cur", c_identifier: "G_SEEK_CUR", value: 0},
	]
}
`

const gtkConfig = `library: Gtk
gir_directory: gir-files
target_path: src/auto
min_cfg_version: "3.0"
generate:
  - Gtk.Align
  - Gtk.Status
`

// project is a temporary girgen project directory.
type project struct {
	dir    string
	config string
}

func newProject(t *testing.T, snapshot, cfg string) *project {
	t.Helper()
	dir := t.TempDir()

	girDir := filepath.Join(dir, "gir-files")
	require.NoError(t, os.MkdirAll(girDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(girDir, "gtk.cue"), []byte(snapshot), 0o644))

	cfgPath := filepath.Join(dir, "girgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	return &project{dir: dir, config: cfgPath}
}

func (p *project) enumsFile() string {
	return filepath.Join(p.dir, "src", "auto", "enums.rs")
}

// run executes the root command with --config pointing at the project.
func (p *project) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return runCommand(t, append([]string{"--config", p.config}, args...)...)
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}
