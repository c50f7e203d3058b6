package config

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girgen/internal/library"
)

func vp(s string) *library.Version {
	v := library.MustParseVersion(s)
	return &v
}

func TestMembersOverrideFirstWins(t *testing.T) {
	members := Members{
		{Ident: Ident{Name: "other"}, Version: vp("9.0")},
		{Ident: Ident{Pattern: regexp.MustCompile(`^(?:dup.*)$`)}, Version: vp("3.10")},
		{Ident: Ident{Name: "dup_a"}, Alias: true, Version: vp("3.12"), DeprecatedVersion: vp("3.20")},
		{Ident: Ident{Name: "dup_a"}, DeprecatedVersion: vp("3.22")},
	}

	o := members.Override("dup_a")
	assert.True(t, o.Alias)
	assert.False(t, o.Ignore)
	assert.Equal(t, "3.10", o.Version.String(), "first rule supplying version wins")
	assert.Equal(t, "3.20", o.DeprecatedVersion.String(), "first rule supplying deprecated_version wins")

	assert.Len(t, members.Matched("dup_a"), 3)
	assert.Len(t, members.Matched("dup_b"), 1)
}

func TestMembersOverrideNoMatch(t *testing.T) {
	members := Members{{Ident: Ident{Name: "fill"}, Ignore: true}}

	o := members.Override("start")
	assert.Equal(t, MemberOverride{}, o)
	assert.True(t, members.Override("fill").Ignore)
}

func TestIdentMatchesExactly(t *testing.T) {
	assert.True(t, Ident{Name: "fill"}.Matches("fill"))
	assert.False(t, Ident{Name: "fill"}.Matches("fill_all"))
	assert.Equal(t, "fill", Ident{Name: "fill"}.String())
}

func TestResolveTypeIDs(t *testing.T) {
	lib := library.New("Gtk")
	alignID := lib.AddType(library.MainNamespace, &library.Enumeration{Name: "Align", CType: "GtkAlign"})

	cfg := &Config{Objects: []*Object{
		{Name: "Gtk.Align", Status: StatusGenerate},
		{Name: "Gtk.Missing", Status: StatusGenerate},
	}}

	unresolved := cfg.ResolveTypeIDs(lib)
	assert.Equal(t, []string{"Gtk.Missing"}, unresolved)
	require.NotNil(t, cfg.Objects[0].TypeID)
	assert.Equal(t, alignID, *cfg.Objects[0].TypeID)
	assert.Nil(t, cfg.Objects[1].TypeID)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{in: "generate", want: StatusGenerate},
		{in: "manual", want: StatusManual},
		{in: "ignore", want: StatusIgnore},
		{in: "Generate", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "must be one of generate, manual, ignore")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}
