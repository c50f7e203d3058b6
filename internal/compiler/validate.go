package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/roach88/girgen/internal/library"
	"github.com/roach88/girgen/internal/nameutil"
)

// Validation error codes (E100-E199)
const (
	// Enumeration errors (E101-E119)
	ErrEmptyCType            = "E101" // c_type is required
	ErrNoMembers             = "E102" // enumeration has no members
	ErrMemberNoCIdentifier   = "E103" // member c_identifier is required
	ErrInvalidMemberValue    = "E104" // value is not an integer literal
	ErrDuplicateName         = "E105" // duplicate member name
	ErrDuplicateCIdentifier  = "E106" // duplicate member c_identifier
	ErrDeprecatedBeforeIntro = "E107" // deprecated_version older than version
	ErrVariantNameConflict   = "E108" // distinct values map to one variant name
	ErrInvalidCIdentifier    = "E109" // not a valid C identifier
	ErrInvalidErrorDomain    = "E110" // quark source is not a C identifier after normalisation
	ErrInvalidTypeGetter     = "E111" // glib_get_type is not a C identifier

	// Library errors (E120-E129)
	ErrMainNamespaceEmpty = "E120" // main namespace declares no enumeration
)

// ValidationError represents a structural problem in a library.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// cIdentPattern matches a C identifier.
var cIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks every enumeration of lib and returns all problems found
// (does not fail-fast). Namespaces are visited in library order.
func Validate(lib *library.Library) []ValidationError {
	var errs []ValidationError

	for i, ns := range lib.Namespaces {
		enums := 0
		for _, t := range ns.Types {
			e, ok := t.(*library.Enumeration)
			if !ok {
				continue
			}
			enums++
			errs = append(errs, validateEnumeration(ns.Name+"."+e.Name, e)...)
		}

		if library.NamespaceID(i) == library.MainNamespace && enums == 0 {
			errs = append(errs, ValidationError{
				Field:   ns.Name,
				Message: "main namespace declares no enumeration",
				Code:    ErrMainNamespaceEmpty,
			})
		}
	}

	return errs
}

func validateEnumeration(field string, e *library.Enumeration) []ValidationError {
	var errs []ValidationError

	// E101
	if strings.TrimSpace(e.CType) == "" {
		errs = append(errs, ValidationError{
			Field:   field + ".c_type",
			Message: "c_type is required and must be non-empty",
			Code:    ErrEmptyCType,
		})
	}

	// E102
	if len(e.Members) == 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".members",
			Message: "at least one member is required",
			Code:    ErrNoMembers,
		})
	}

	// E107
	if e.Version != nil && e.DeprecatedVersion != nil && e.DeprecatedVersion.Compare(*e.Version) < 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".deprecated_version",
			Message: fmt.Sprintf("deprecated in %s before being introduced in %s", e.DeprecatedVersion, e.Version),
			Code:    ErrDeprecatedBeforeIntro,
		})
	}

	// E110, E111
	if q := e.ErrorQuarkName(); q != "" && !cIdentPattern.MatchString(nameutil.QuarkFunction(q)) {
		errs = append(errs, ValidationError{
			Field:   field + ".error_domain",
			Message: fmt.Sprintf("quark source %q is not a function name", q),
			Code:    ErrInvalidErrorDomain,
		})
	}
	if e.GetType != "" && !cIdentPattern.MatchString(e.GetType) {
		errs = append(errs, ValidationError{
			Field:   field + ".glib_get_type",
			Message: fmt.Sprintf("type getter %q is not a function name", e.GetType),
			Code:    ErrInvalidTypeGetter,
		})
	}

	names := make(map[string]bool)
	cIdents := make(map[string]bool)
	// variant name -> value key of the first member producing it
	variants := make(map[string]string)

	for i, m := range e.Members {
		mField := fmt.Sprintf("%s.members[%d]", field, i)

		// E105
		if names[m.Name] {
			errs = append(errs, ValidationError{
				Field:   mField + ".name",
				Message: fmt.Sprintf("duplicate member name: %q", m.Name),
				Code:    ErrDuplicateName,
			})
		}
		names[m.Name] = true

		// E103, E109, E106
		switch {
		case strings.TrimSpace(m.CIdentifier) == "":
			errs = append(errs, ValidationError{
				Field:   mField + ".c_identifier",
				Message: fmt.Sprintf("member %q has no c_identifier", m.Name),
				Code:    ErrMemberNoCIdentifier,
			})
		case !cIdentPattern.MatchString(m.CIdentifier):
			errs = append(errs, ValidationError{
				Field:   mField + ".c_identifier",
				Message: fmt.Sprintf("%q is not a C identifier", m.CIdentifier),
				Code:    ErrInvalidCIdentifier,
			})
		case cIdents[m.CIdentifier]:
			errs = append(errs, ValidationError{
				Field:   mField + ".c_identifier",
				Message: fmt.Sprintf("duplicate c_identifier: %q", m.CIdentifier),
				Code:    ErrDuplicateCIdentifier,
			})
		}
		cIdents[m.CIdentifier] = true

		// E104
		n, err := strconv.ParseInt(strings.TrimSpace(m.Value), 0, 64)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   mField + ".value",
				Message: fmt.Sprintf("%q is not an integer literal", m.Value),
				Code:    ErrInvalidMemberValue,
			})
			continue
		}

		// E108
		key := strconv.FormatInt(n, 10)
		variant := nameutil.EnumMemberName(m.Name)
		if prev, ok := variants[variant]; ok && prev != key {
			errs = append(errs, ValidationError{
				Field:   mField + ".name",
				Message: fmt.Sprintf("member %q maps to variant %s already used by value %s", m.Name, variant, prev),
				Code:    ErrVariantNameConflict,
			})
		} else if !ok {
			variants[variant] = key
		}
	}

	return errs
}
