package enums

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/library"
	"github.com/roach88/girgen/internal/nameutil"
)

// Variant is one canonical enum variant.
type Variant struct {
	Name              string           `json:"name" yaml:"name"`
	CName             string           `json:"c_name" yaml:"c_name"`
	Value             string           `json:"value" yaml:"value"` // source literal
	Version           *library.Version `json:"version,omitempty" yaml:"version,omitempty"`
	DeprecatedVersion *library.Version `json:"deprecated_version,omitempty" yaml:"deprecated_version,omitempty"`
	Member            string           `json:"member" yaml:"member"` // native member name
}

// Overrides supplies the folded override for a native member name.
// config.Members implements it.
type Overrides interface {
	Override(name string) config.MemberOverride
}

// NameConflictError reports distinct canonical members that map to the same
// variant name.
type NameConflictError struct {
	Name    string
	Members []string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("variant name %s produced by members %s", e.Name, strings.Join(e.Members, ", "))
}

// Resolve returns the canonical variants of members in declaration order.
//
// Members overridden as alias or ignore are skipped without claiming their
// value. A member whose value was already claimed by an earlier member is
// dropped. Values compare numerically when the literal parses as an integer.
func Resolve(members []library.Member, overrides Overrides) ([]Variant, error) {
	seen := make(map[string]bool, len(members))
	names := make(map[string]string, len(members))
	variants := make([]Variant, 0, len(members))

	for _, m := range members {
		var o config.MemberOverride
		if overrides != nil {
			o = overrides.Override(m.Name)
		}
		if o.Alias || o.Ignore {
			continue
		}

		key := valueKey(m.Value)
		if seen[key] {
			continue
		}
		seen[key] = true

		v := Variant{
			Name:              nameutil.EnumMemberName(m.Name),
			CName:             m.CIdentifier,
			Value:             m.Value,
			Version:           o.Version,
			DeprecatedVersion: o.DeprecatedVersion,
			Member:            m.Name,
		}
		if prev, ok := names[v.Name]; ok {
			return nil, &NameConflictError{Name: v.Name, Members: []string{prev, m.Name}}
		}
		names[v.Name] = m.Name
		variants = append(variants, v)
	}
	return variants, nil
}

// valueKey normalises an integer literal so "0x1" and "1" collide.
func valueKey(literal string) string {
	s := strings.TrimSpace(literal)
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

// HasFailed reports whether a variant is literally named Failed.
func HasFailed(variants []Variant) bool {
	for _, v := range variants {
		if v.Name == "Failed" {
			return true
		}
	}
	return false
}
