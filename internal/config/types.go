// Package config holds the per-project generation settings for girgen.
//
// Configuration is layered with koanf (defaults, config file, GIRGEN_
// environment variables, explicitly set flags) and decoded into Config.
// Objects keep configuration order: that order is the emission order.
package config

import (
	"regexp"

	"github.com/roach88/girgen/internal/errors"
	"github.com/roach88/girgen/internal/library"
)

// Status is the generation status of a configured object.
type Status int

const (
	StatusIgnore Status = iota
	StatusManual
	StatusGenerate
)

// ParseStatus parses "generate", "manual" or "ignore".
func ParseStatus(s string) (Status, error) {
	switch s {
	case "generate":
		return StatusGenerate, nil
	case "manual":
		return StatusManual, nil
	case "ignore":
		return StatusIgnore, nil
	default:
		return StatusIgnore, errors.Newf("invalid status %q: must be one of generate, manual, ignore", s)
	}
}

func (s Status) String() string {
	switch s {
	case StatusGenerate:
		return "generate"
	case StatusManual:
		return "manual"
	default:
		return "ignore"
	}
}

// NeedGenerate reports whether code is generated for objects with this status.
func (s Status) NeedGenerate() bool {
	return s == StatusGenerate
}

// Ident matches member names either exactly or by an anchored pattern.
type Ident struct {
	Name    string
	Pattern *regexp.Regexp
}

// Matches reports whether name is selected by the ident.
func (i Ident) Matches(name string) bool {
	if i.Pattern != nil {
		return i.Pattern.MatchString(name)
	}
	return i.Name == name
}

func (i Ident) String() string {
	if i.Pattern != nil {
		return "/" + i.Pattern.String() + "/"
	}
	return i.Name
}

// MemberConfig is one override rule for enumeration members.
type MemberConfig struct {
	Ident             Ident
	Alias             bool
	Ignore            bool
	Version           *library.Version
	DeprecatedVersion *library.Version
}

// MemberOverride is the folded result of every rule matching one member.
type MemberOverride struct {
	Alias             bool
	Ignore            bool
	Version           *library.Version
	DeprecatedVersion *library.Version
}

// Members is the ordered rule list of one object.
type Members []MemberConfig

// Matched returns the rules matching name, in configuration order.
func (m Members) Matched(name string) []MemberConfig {
	var out []MemberConfig
	for _, rule := range m {
		if rule.Ident.Matches(name) {
			out = append(out, rule)
		}
	}
	return out
}

// Override folds the matching rules for name. Alias and Ignore are set if any
// rule sets them; each version field comes from the first rule supplying it.
func (m Members) Override(name string) MemberOverride {
	var o MemberOverride
	for _, rule := range m.Matched(name) {
		o.Alias = o.Alias || rule.Alias
		o.Ignore = o.Ignore || rule.Ignore
		if o.Version == nil {
			o.Version = rule.Version
		}
		if o.DeprecatedVersion == nil {
			o.DeprecatedVersion = rule.DeprecatedVersion
		}
	}
	return o
}

// Object is the configuration of one library type.
type Object struct {
	Name                 string
	Status               Status
	TypeID               *library.TypeID // set by Config.ResolveTypeIDs
	Members              Members
	GenerateDisplayTrait bool
	MustUse              bool
	Derives              []string
}

// Config is the resolved project configuration.
type Config struct {
	Library               string
	GirDirectory          string
	TargetPath            string
	MinCfgVersion         library.Version
	MakeBackup            bool
	GenerateSafetyAsserts bool
	Objects               []*Object

	// File is the config file that was loaded, empty when none was found.
	File string
}

// ResolveTypeIDs attaches library type ids to the configured objects and
// returns the names that matched no type.
func (c *Config) ResolveTypeIDs(lib *library.Library) []string {
	var unresolved []string
	for _, o := range c.Objects {
		id, ok := lib.FindType(o.Name)
		if !ok {
			o.TypeID = nil
			unresolved = append(unresolved, o.Name)
			continue
		}
		o.TypeID = &id
	}
	return unresolved
}
