package enums

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/library"
	"github.com/roach88/girgen/internal/testutil"
)

// emitOne selects the single configured object and emits it.
func emitOne(t *testing.T, env *codegen.Env) (string, Selected, []Variant) {
	t.Helper()

	sel, ok := Select(env)
	require.True(t, ok)
	require.Len(t, sel.Enums, 1)
	s := sel.Enums[0]

	variants, err := Resolve(s.Enum.Members, s.Object.Members)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, env, s, variants))
	return buf.String(), s, variants
}

// block returns the text from the line starting with header up to and
// including the closing brace at column zero.
func block(t *testing.T, out, header string) string {
	t.Helper()
	start := strings.Index(out, header)
	require.GreaterOrEqual(t, start, 0, "missing block %q", header)
	end := strings.Index(out[start:], "\n}\n")
	require.GreaterOrEqual(t, end, 0)
	return out[start : start+end+3]
}

// arms returns the first two captures of every line of text matching re.
func arms(text string, re *regexp.Regexp) [][2]string {
	var out [][2]string
	for _, line := range strings.Split(text, "\n") {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var a [2]string
		copy(a[:], m[1:])
		out = append(out, a)
	}
	return out
}

// lastArm returns the last non-closing line inside the first match of text.
func lastArm(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		l := strings.TrimSpace(lines[i])
		if l != "" && l != "}" && l != "})" {
			return l
		}
	}
	return ""
}

func TestEmitStatusGolden(t *testing.T) {
	cfg := testutil.Config(testutil.Generate("Gtk.Status",
		config.MemberConfig{Ident: config.Ident{Name: "fail_alias"}, Alias: true},
	))
	env := testutil.Env(t, testutil.Library(), cfg)

	out, _, _ := emitOne(t, env)
	testutil.AssertGolden(t, "status", []byte(out))
}

func TestEmitStatusScenario(t *testing.T) {
	cfg := testutil.Config(testutil.Generate("Gtk.Status",
		config.MemberConfig{Ident: config.Ident{Name: "fail_alias"}, Alias: true},
	))
	env := testutil.Env(t, testutil.Library(), cfg)

	out, _, variants := emitOne(t, env)
	assert.Equal(t, []string{"Ok", "Fail"}, names(variants))

	toGlib := block(t, out, "impl ToGlib for Status")
	assert.Contains(t, toGlib, "Status::Ok => sys::GTK_STATUS_OK,")
	assert.Contains(t, toGlib, "Status::Fail => sys::GTK_STATUS_FAIL,")

	fromGlib := block(t, out, "impl FromGlib<sys::GtkStatus> for Status")
	assert.NotContains(t, fromGlib, "2 =>", "2 is not a canonical value")
	assert.Equal(t, "value => Status::__Unknown(value),", lastArm(fromGlib))

	domain := block(t, out, "impl ErrorDomain for Status")
	assert.Equal(t, "value => Some(Status::__Unknown(value)),", lastArm(domain),
		"without a Failed variant unmatched codes reach the sentinel, not Fail")
	assert.Contains(t, domain, "sys::status_quark()")
}

var (
	definitionArm = regexp.MustCompile(`^    (\w+),$`)
	toGlibArm     = regexp.MustCompile(`^ {12}\w+::(\w+) => sys::(\w+),$`)
	fromGlibArm   = regexp.MustCompile(`^ {12}(-?\w+) => \w+::(\w+),$`)
)

// Every canonical variant has exactly one arm in each conversion and
// from_glib(to_glib(v)) == v.
func TestEmitConversionsTotalAndRoundTrip(t *testing.T) {
	fixtures := []*library.Enumeration{
		testutil.AlignEnum(),
		testutil.CSSProviderErrorEnum(),
		testutil.StatusEnum(),
		{
			Name:  "Dup",
			CType: "GtkDup",
			Members: []library.Member{
				{Name: "a", CIdentifier: "DUP_A", Value: "0"},
				{Name: "b", CIdentifier: "DUP_B", Value: "0x1"},
				{Name: "c", CIdentifier: "DUP_C", Value: "1"},
				{Name: "d", CIdentifier: "DUP_D", Value: "-1"},
			},
		},
	}

	for _, e := range fixtures {
		t.Run(e.Name, func(t *testing.T) {
			lib := library.New("Gtk")
			lib.AddType(library.MainNamespace, e)
			env := testutil.Env(t, lib, testutil.Config(testutil.Generate("Gtk."+e.Name)))

			out, _, variants := emitOne(t, env)

			literal := make(map[string]string)
			for _, m := range e.Members {
				literal[m.CIdentifier] = m.Value
			}

			def := block(t, out, "pub enum "+e.Name+" {")
			var declared []string
			for _, a := range arms(def, definitionArm) {
				declared = append(declared, a[0])
			}
			assert.Equal(t, names(variants), declared)
			assert.Contains(t, def, "    __Unknown(i32),\n}")

			toGlib := block(t, out, "impl ToGlib for "+e.Name)
			fromGlib := block(t, out, "impl FromGlib<sys::"+e.CType+"> for "+e.Name)

			toArms := arms(toGlib, toGlibArm)
			fromArms := arms(fromGlib, fromGlibArm)
			require.Len(t, toArms, len(variants))
			require.Len(t, fromArms, len(variants))

			back := make(map[string]string)
			for _, a := range fromArms {
				_, dup := back[a[0]]
				require.False(t, dup, "value %s matched twice", a[0])
				back[a[0]] = a[1]
			}
			for i, a := range toArms {
				assert.Equal(t, variants[i].Name, a[0], "arm order follows canonical order")
				assert.Equal(t, a[0], back[literal[a[1]]], "round trip of %s", a[0])
			}

			assert.Equal(t, e.Name+"::__Unknown(value) => value,", lastArm(toGlib))
			assert.Equal(t, "value => "+e.Name+"::__Unknown(value),", lastArm(fromGlib))
		})
	}
}

func TestEmitErrorDomainFailedFallback(t *testing.T) {
	env := testutil.Env(t, testutil.Library(), testutil.Config(testutil.Generate("Gtk.CssProviderError")))

	out, _, _ := emitOne(t, env)
	domain := block(t, out, "impl ErrorDomain for CssProviderError")
	assert.Equal(t, "_ => Some(CssProviderError::Failed),", lastArm(domain))
	assert.NotContains(t, domain, "__Unknown")
	assert.Contains(t, domain, "sys::gtk_css_provider_error_quark()")
}

func TestEmitGuardPropagation(t *testing.T) {
	e := testutil.AlignEnum()
	e.Version = testutil.Version("3.4")
	e.DeprecatedVersion = testutil.Version("3.2")
	lib := library.New("Gtk")
	lib.AddType(library.MainNamespace, e)

	cfg := testutil.Config(testutil.Generate("Gtk.Align",
		config.MemberConfig{Ident: config.Ident{Name: "center"}, DeprecatedVersion: testutil.Version("3.20")},
		config.MemberConfig{Ident: config.Ident{Name: "baseline"}, Version: testutil.Version("3.10")},
	))
	cfg.MinCfgVersion = library.MustParseVersion("3.2")
	env := testutil.Env(t, lib, cfg)

	out, _, _ := emitOne(t, env)

	enumGuard := "#[deprecated]\n#[cfg(any(feature = \"v3_4\", feature = \"dox\"))]\n"
	for _, header := range []string{
		"#[derive(Debug",
		"#[doc(hidden)]\nimpl ToGlib for Align",
		"#[doc(hidden)]\nimpl FromGlib<sys::GtkAlign> for Align",
		"impl StaticType for Align",
		"impl<'a> FromValueOptional<'a> for Align",
		"impl<'a> FromValue<'a> for Align",
		"impl SetValue for Align",
	} {
		assert.Contains(t, out, enumGuard+header)
	}

	def := block(t, out, "pub enum Align {")
	assert.Contains(t, def, "    End,\n    #[cfg_attr(feature = \"v3_20\", deprecated)]\n    Center,\n")
	assert.Contains(t, def, "    #[cfg(any(feature = \"v3_10\", feature = \"dox\"))]\n    Baseline,\n")
	assert.NotContains(t, def, "#[deprecated]", "the enum deprecation does not leak into member arms")

	fromGlib := block(t, out, "impl FromGlib<sys::GtkAlign> for Align")
	assert.Contains(t, fromGlib, "            #[cfg_attr(feature = \"v3_20\", deprecated)]\n            3 => Align::Center,\n")
}

func TestEmitFlagIndependence(t *testing.T) {
	emit := func(flags Flags) string {
		env := testutil.Env(t, testutil.Library(), testutil.Config(testutil.Generate("Gtk.CssProviderError")))
		sel, ok := Select(env)
		require.True(t, ok)
		s := sel.Enums[0]
		s.Flags = flags
		variants, err := Resolve(s.Enum.Members, s.Object.Members)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Emit(&buf, env, s, variants))
		return buf.String()
	}

	all := emit(Flags{Display: true, ErrorDomain: true, DynamicType: true})
	noDynamic := emit(Flags{Display: true, ErrorDomain: true})

	blocks := strings.SplitAfter(all, "}\n\n")
	var kept, dropped []string
	for _, b := range blocks {
		if strings.Contains(b, "impl StaticType") || strings.Contains(b, "FromValueOptional") ||
			strings.Contains(b, "impl<'a> FromValue<'a>") || strings.Contains(b, "impl SetValue") {
			dropped = append(dropped, b)
			continue
		}
		kept = append(kept, b)
	}
	assert.Len(t, dropped, 4)
	assert.Equal(t, strings.Join(kept, ""), noDynamic)

	noDisplay := emit(Flags{ErrorDomain: true, DynamicType: true})
	assert.NotContains(t, noDisplay, "fmt::Display")
	assert.Equal(t, removeBlock(all, "impl fmt::Display"), noDisplay)

	noDomain := emit(Flags{Display: true, DynamicType: true})
	assert.Equal(t, removeBlock(all, "impl ErrorDomain"), noDomain)
}

func removeBlock(out, header string) string {
	start := strings.Index(out, header)
	if start < 0 {
		return out
	}
	end := strings.Index(out[start:], "\n}\n\n")
	return out[:start] + out[start+end+4:]
}

func TestEmitBlockSeparation(t *testing.T) {
	align := testutil.Generate("Gtk.Align")
	align.GenerateDisplayTrait = true
	env := testutil.Env(t, testutil.Library(), testutil.Config(align))

	out, _, _ := emitOne(t, env)
	assert.True(t, strings.HasSuffix(out, "}\n\n"))
	assert.NotContains(t, out, "\n\n\n")
	assert.Equal(t, 8, strings.Count(out, "\n}\n\n"), "definition, display, two conversions and four dynamic-type impls")
}

func TestEmitMustUseAndDerives(t *testing.T) {
	obj := testutil.Generate("Gtk.Align")
	obj.MustUse = true
	obj.Derives = []string{"Debug", "PartialEq", "Eq"}
	env := testutil.Env(t, testutil.Library(), testutil.Config(obj))

	out, _, _ := emitOne(t, env)
	assert.True(t, strings.HasPrefix(out,
		"#[must_use]\n#[derive(Debug, PartialEq, Eq)]\n#[derive(Clone, Copy)]\npub enum Align {\n"))
}

func TestEmitSafetyAsserts(t *testing.T) {
	cfg := testutil.Config(testutil.Generate("Gtk.CssProviderError"))
	cfg.GenerateSafetyAsserts = true
	env := testutil.Env(t, testutil.Library(), cfg)

	out, _, _ := emitOne(t, env)
	assert.Equal(t, 3, strings.Count(out, "        skip_assert_initialized!();\n"),
		"from_glib, domain and from each assert once")
}

func TestEmitPropagatesWriteErrors(t *testing.T) {
	env := testutil.Env(t, testutil.Library(), testutil.Config(testutil.Generate("Gtk.CssProviderError")))
	sel, ok := Select(env)
	require.True(t, ok)
	s := sel.Enums[0]
	variants, err := Resolve(s.Enum.Members, s.Object.Members)
	require.NoError(t, err)

	var full bytes.Buffer
	require.NoError(t, Emit(&full, env, s, variants))

	for _, limit := range []int{0, 10, full.Len() / 2, full.Len() - 1} {
		w := &testutil.FailingWriter{Limit: limit}
		err := Emit(w, env, s, variants)
		assert.ErrorIs(t, err, testutil.ErrWrite, "limit %d", limit)
	}

	w := &testutil.FailingWriter{Limit: full.Len()}
	assert.NoError(t, Emit(w, env, s, variants))
}
