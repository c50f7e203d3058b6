package enums

import (
	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/config"
	"github.com/roach88/girgen/internal/library"
)

// Flags says which optional impl groups an enumeration gets.
type Flags struct {
	Display     bool `json:"display" yaml:"display"`
	ErrorDomain bool `json:"error_domain" yaml:"error_domain"`
	DynamicType bool `json:"dynamic_type" yaml:"dynamic_type"`
}

// Union returns the field-wise or of f and o.
func (f Flags) Union(o Flags) Flags {
	return Flags{
		Display:     f.Display || o.Display,
		ErrorDomain: f.ErrorDomain || o.ErrorDomain,
		DynamicType: f.DynamicType || o.DynamicType,
	}
}

// FlagsFor computes the flags of one enumeration.
func FlagsFor(e *library.Enumeration, obj *config.Object) Flags {
	return Flags{
		Display:     obj.GenerateDisplayTrait,
		ErrorDomain: e.ErrorQuarkName() != "",
		DynamicType: e.GetType != "",
	}
}

// Selected is one enumeration chosen for generation.
type Selected struct {
	Enum   *library.Enumeration
	Object *config.Object
	Flags  Flags
}

// Selection is the ordered set of enumerations for one output file plus the
// union of their flags.
type Selection struct {
	Enums []Selected
	Flags Flags
}

// Select returns the enumerations to generate in configuration order. The
// boolean is false when nothing qualifies; callers then produce no file.
//
// An object qualifies when its status is generate, its name resolved to a
// type of the main namespace, and that type is an enumeration.
func Select(env *codegen.Env) (Selection, bool) {
	var sel Selection
	for _, obj := range env.Config.Objects {
		if !obj.Status.NeedGenerate() || obj.TypeID == nil {
			continue
		}
		if obj.TypeID.NS != library.MainNamespace {
			continue
		}
		e := env.Library.Enumeration(*obj.TypeID)
		if e == nil {
			continue
		}

		f := FlagsFor(e, obj)
		sel.Enums = append(sel.Enums, Selected{Enum: e, Object: obj, Flags: f})
		sel.Flags = sel.Flags.Union(f)
	}
	return sel, len(sel.Enums) > 0
}

// Imports returns the use list the output file needs for the selection.
func (s Selection) Imports() *codegen.Imports {
	imports := codegen.NewImports()
	imports.Add("sys")
	imports.Add("glib::translate::*")

	if s.Flags.ErrorDomain {
		imports.Add("glib::Quark")
		imports.Add("glib::error::ErrorDomain")
	}
	if s.Flags.DynamicType {
		imports.Add("glib::Type")
		imports.Add("glib::StaticType")
		imports.Add("glib::value::Value")
		imports.Add("glib::value::SetValue")
		imports.Add("glib::value::FromValue")
		imports.Add("glib::value::FromValueOptional")
		imports.Add("gobject_sys")
	}
	if s.Flags.Display {
		imports.Add("std::fmt")
	}
	return imports
}
