package testutil

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/library"
)

// AlignEnum returns Gtk.Align: five distinct values and a type getter.
func AlignEnum() *library.Enumeration {
	return &library.Enumeration{
		Name:    "Align",
		CType:   "GtkAlign",
		GetType: "gtk_align_get_type",
		Members: []library.Member{
			{Name: "fill", CIdentifier: "GTK_ALIGN_FILL", Value: "0"},
			{Name: "start", CIdentifier: "GTK_ALIGN_START", Value: "1"},
			{Name: "end", CIdentifier: "GTK_ALIGN_END", Value: "2"},
			{Name: "center", CIdentifier: "GTK_ALIGN_CENTER", Value: "3"},
			{Name: "baseline", CIdentifier: "GTK_ALIGN_BASELINE", Value: "4"},
		},
	}
}

// CSSProviderErrorEnum returns Gtk.CssProviderError: an error domain with a
// variant named Failed and a type getter.
func CSSProviderErrorEnum() *library.Enumeration {
	return &library.Enumeration{
		Name:        "CssProviderError",
		CType:       "GtkCssProviderError",
		GetType:     "gtk_css_provider_error_get_type",
		ErrorDomain: "gtk-css-provider-error-quark",
		Members: []library.Member{
			{Name: "failed", CIdentifier: "GTK_CSS_PROVIDER_ERROR_FAILED", Value: "0"},
			{Name: "syntax", CIdentifier: "GTK_CSS_PROVIDER_ERROR_SYNTAX", Value: "1"},
			{Name: "import", CIdentifier: "GTK_CSS_PROVIDER_ERROR_IMPORT", Value: "2"},
			{Name: "name", CIdentifier: "GTK_CSS_PROVIDER_ERROR_NAME", Value: "3"},
			{Name: "deprecated", CIdentifier: "GTK_CSS_PROVIDER_ERROR_DEPRECATED", Value: "4"},
			{Name: "unknown_value", CIdentifier: "GTK_CSS_PROVIDER_ERROR_UNKNOWN_VALUE", Value: "5"},
		},
	}
}

// StatusEnum returns an error-domain enumeration with an aliased value and
// no variant named Failed.
func StatusEnum() *library.Enumeration {
	return &library.Enumeration{
		Name:        "Status",
		CType:       "GtkStatus",
		ErrorDomain: "status_quark",
		Members: []library.Member{
			{Name: "ok", CIdentifier: "GTK_STATUS_OK", Value: "0"},
			{Name: "fail", CIdentifier: "GTK_STATUS_FAIL", Value: "1"},
			{Name: "fail_alias", CIdentifier: "GTK_STATUS_FAIL_ALIAS", Value: "1"},
		},
	}
}

// Library returns a Gtk library holding the fixture enumerations, a class and
// a foreign GLib enumeration.
func Library() *library.Library {
	lib := library.New("Gtk")
	lib.AddType(library.MainNamespace, AlignEnum())
	lib.AddType(library.MainNamespace, CSSProviderErrorEnum())
	lib.AddType(library.MainNamespace, StatusEnum())
	lib.AddType(library.MainNamespace, &library.Opaque{Name: "Button", CType: "GtkButton", K: library.KindClass})

	glib := lib.AddNamespace("GLib")
	lib.AddType(glib, &library.Enumeration{
		Name:  "SeekType",
		CType: "GSeekType",
		Members: []library.Member{
			{Name: "cur", CIdentifier: "G_SEEK_CUR", Value: "0"},
		},
	})
	return lib
}

// Generate returns an object with status generate.
func Generate(name string, members ...config.MemberConfig) *config.Object {
	return &config.Object{Name: name, Status: config.StatusGenerate, Members: members}
}

// Config returns a Gtk configuration with min_cfg_version 3.0 over objects.
func Config(objects ...*config.Object) *config.Config {
	return &config.Config{
		Library:       "Gtk",
		MinCfgVersion: library.MustParseVersion("3.0"),
		Objects:       objects,
	}
}

// Env resolves cfg against lib and returns an Env logging to t.
func Env(t *testing.T, lib *library.Library, cfg *config.Config) *codegen.Env {
	t.Helper()
	cfg.ResolveTypeIDs(lib)
	return codegen.NewEnv(lib, cfg, zaptest.NewLogger(t))
}

// Version returns a pointer to the parsed version s.
func Version(s string) *library.Version {
	v := library.MustParseVersion(s)
	return &v
}
