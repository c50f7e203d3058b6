// Package nameutil converts native identifiers to target-language names.
package nameutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ToCamel converts snake_case or kebab-case to CamelCase: "top_left" -> "TopLeft".
// Characters after the first of each part are kept as-is.
func ToCamel(s string) string {
	parts := strings.FieldsFunc(norm.NFC.String(s), func(r rune) bool {
		return r == '_' || r == '-'
	})

	// A Caser keeps state between calls, so each conversion gets its own.
	title := cases.Title(language.Und, cases.NoLower)

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(title.String(part))
	}
	return sb.String()
}

// EnumMemberName returns the variant name for a native member name.
// Names that do not start with a letter ("2_d") get a leading underscore so
// they stay valid identifiers: "_2D".
func EnumMemberName(name string) string {
	camel := ToCamel(name)
	for _, r := range name {
		if unicode.IsLetter(r) {
			return camel
		}
		break
	}
	return "_" + camel
}

// QuarkFunction turns an error-domain quark source into a callable C
// identifier: "g-io-error-quark" -> "g_io_error_quark".
func QuarkFunction(source string) string {
	return strings.ReplaceAll(source, "-", "_")
}
