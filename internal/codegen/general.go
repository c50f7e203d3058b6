package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/girgen/internal/library"
)

// Indent is one indentation level of generated code.
const Indent = "    "

// Tabs returns indent levels of indentation.
func Tabs(indent int) string {
	return strings.Repeat(Indent, indent)
}

func commentPrefix(commented bool) string {
	if commented {
		return "//"
	}
	return ""
}

// VersionConditionString returns the cfg attribute gating v, or false when v
// needs no gate.
func VersionConditionString(env *Env, v *library.Version, commented bool, indent int) (string, bool) {
	if !env.NeedsGuard(v) {
		return "", false
	}
	return fmt.Sprintf("%s%s#[cfg(any(%s, feature = \"dox\"))]", Tabs(indent), commentPrefix(commented), v.ToCfg()), true
}

// VersionCondition writes the version gate for v, if any.
func VersionCondition(w io.Writer, env *Env, v *library.Version, commented bool, indent int) error {
	if s, ok := VersionConditionString(env, v, commented, indent); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return nil
}

// CfgDeprecatedString returns the deprecation attribute for deprecated, or
// false when the item is not deprecated.
func CfgDeprecatedString(env *Env, deprecated *library.Version, commented bool, indent int) (string, bool) {
	if deprecated == nil {
		return "", false
	}
	prefix := Tabs(indent) + commentPrefix(commented)
	if env.IsTooLowVersion(deprecated) {
		return prefix + "#[deprecated]", true
	}
	return fmt.Sprintf("%s#[cfg_attr(%s, deprecated)]", prefix, deprecated.ToCfg()), true
}

// CfgDeprecated writes the deprecation attribute for deprecated, if any.
func CfgDeprecated(w io.Writer, env *Env, deprecated *library.Version, commented bool, indent int) error {
	if s, ok := CfgDeprecatedString(env, deprecated, commented, indent); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return nil
}

// Guards writes the deprecation attribute then the version gate.
func Guards(w io.Writer, env *Env, version, deprecated *library.Version, indent int) error {
	if err := CfgDeprecated(w, env, deprecated, false, indent); err != nil {
		return err
	}
	return VersionCondition(w, env, version, false, indent)
}

// Derives writes a derive attribute for the given trait names.
func Derives(w io.Writer, derives []string, indent int) error {
	if len(derives) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s#[derive(%s)]\n", Tabs(indent), strings.Join(derives, ", "))
	return err
}

// StartComments writes the generated-file header.
func StartComments(w io.Writer, env *Env) error {
	_, err := fmt.Fprintf(w, "// This file was generated by girgen\n// from %s metadata\n// DO NOT EDIT\n\n", env.Config.Library)
	return err
}

// Uses writes one use declaration per import, sorted.
func Uses(w io.Writer, imports *Imports) error {
	for _, name := range imports.Names() {
		if _, err := fmt.Fprintf(w, "use %s;\n", name); err != nil {
			return err
		}
	}
	return nil
}
