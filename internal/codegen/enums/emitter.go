package enums

import (
	"fmt"
	"io"

	"github.com/roach88/girgen/internal/codegen"
	"github.com/roach88/girgen/internal/library"
	"github.com/roach88/girgen/internal/nameutil"
)

// unknownVariant is the catch-all variant carrying unrecognised native values.
const unknownVariant = "__Unknown"

var defaultDerives = []string{"Debug", "Eq", "PartialEq", "Ord", "PartialOrd", "Hash"}

// emitter writes one enumeration. The first write error sticks: later writes
// are skipped and Emit returns it.
type emitter struct {
	w        io.Writer
	env      *codegen.Env
	sel      Selected
	variants []Variant
	err      error
}

// Emit writes the enum definition and its impls for one selected enumeration.
// Blocks are written in a fixed order, each followed by one blank line:
// definition, Display, ToGlib, FromGlib, ErrorDomain, then the StaticType and
// Value group. Optional blocks are skipped according to sel.Flags.
func Emit(w io.Writer, env *codegen.Env, sel Selected, variants []Variant) error {
	e := &emitter{w: w, env: env, sel: sel, variants: variants}

	e.definition()
	if sel.Flags.Display {
		e.display()
	}
	e.toGlib()
	e.fromGlib()
	if sel.Flags.ErrorDomain {
		e.errorDomain()
	}
	if sel.Flags.DynamicType {
		e.staticType()
		e.valueRead()
		e.valueWrite()
	}
	return e.err
}

func (e *emitter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *emitter) guards(version, deprecated *library.Version, indent int) {
	if e.err != nil {
		return
	}
	e.err = codegen.Guards(e.w, e.env, version, deprecated, indent)
}

// enumGuards gates a top-level block by the enumeration's own version.
func (e *emitter) enumGuards() {
	e.guards(e.sel.Enum.Version, e.sel.Enum.DeprecatedVersion, 0)
}

// variantGuards gates one arm by the member's own version, independent of the
// enclosing enum.
func (e *emitter) variantGuards(v Variant, indent int) {
	e.guards(v.Version, v.DeprecatedVersion, indent)
}

func (e *emitter) name() string {
	return e.sel.Enum.Name
}

func (e *emitter) cType() string {
	return e.sel.Enum.CType
}

// assert is the initialisation assert emitted before native calls.
func (e *emitter) assert(indent int) {
	if e.env.Config.GenerateSafetyAsserts {
		e.printf("%sskip_assert_initialized!();\n", codegen.Tabs(indent))
	}
}

func (e *emitter) definition() {
	e.enumGuards()
	if e.sel.Object.MustUse {
		e.printf("#[must_use]\n")
	}
	derives := e.sel.Object.Derives
	if len(derives) == 0 {
		derives = defaultDerives
	}
	if e.err == nil {
		e.err = codegen.Derives(e.w, derives, 0)
	}
	e.printf("#[derive(Clone, Copy)]\n")
	e.printf("pub enum %s {\n", e.name())
	for _, v := range e.variants {
		e.variantGuards(v, 1)
		e.printf("    %s,\n", v.Name)
	}
	e.printf("    #[doc(hidden)]\n")
	e.printf("    %s(i32),\n", unknownVariant)
	e.printf("}\n\n")
}

func (e *emitter) display() {
	e.enumGuards()
	e.printf("impl fmt::Display for %s {\n", e.name())
	e.printf("    fn fmt(&self, f: &mut fmt::Formatter) -> fmt::Result {\n")
	e.printf("        write!(f, \"%s::{}\", match *self {\n", e.name())
	for _, v := range e.variants {
		e.variantGuards(v, 3)
		e.printf("            %s::%s => \"%s\",\n", e.name(), v.Name, v.Name)
	}
	e.printf("            _ => \"Unknown\",\n")
	e.printf("        })\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}

func (e *emitter) toGlib() {
	e.enumGuards()
	e.printf("#[doc(hidden)]\n")
	e.printf("impl ToGlib for %s {\n", e.name())
	e.printf("    type GlibType = sys::%s;\n\n", e.cType())
	e.printf("    fn to_glib(&self) -> sys::%s {\n", e.cType())
	e.printf("        match *self {\n")
	for _, v := range e.variants {
		e.variantGuards(v, 3)
		e.printf("            %s::%s => sys::%s,\n", e.name(), v.Name, v.CName)
	}
	e.printf("            %s::%s(value) => value,\n", e.name(), unknownVariant)
	e.printf("        }\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}

func (e *emitter) fromGlib() {
	e.enumGuards()
	e.printf("#[doc(hidden)]\n")
	e.printf("impl FromGlib<sys::%s> for %s {\n", e.cType(), e.name())
	e.printf("    fn from_glib(value: sys::%s) -> Self {\n", e.cType())
	e.assert(2)
	e.printf("        match value {\n")
	for _, v := range e.variants {
		e.variantGuards(v, 3)
		e.printf("            %s => %s::%s,\n", v.Value, e.name(), v.Name)
	}
	e.printf("            value => %s::%s(value),\n", e.name(), unknownVariant)
	e.printf("        }\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}

// errorDomain maps unmatched codes to Failed when the enum has such a
// variant, otherwise to __Unknown. The reconstruction never returns None.
func (e *emitter) errorDomain() {
	quark := nameutil.QuarkFunction(e.sel.Enum.ErrorQuarkName())

	e.enumGuards()
	e.printf("impl ErrorDomain for %s {\n", e.name())
	e.printf("    fn domain() -> Quark {\n")
	e.assert(2)
	e.printf("        unsafe { from_glib(sys::%s()) }\n", quark)
	e.printf("    }\n\n")
	e.printf("    fn code(self) -> i32 {\n")
	e.printf("        self.to_glib()\n")
	e.printf("    }\n\n")
	e.printf("    fn from(code: i32) -> Option<Self> {\n")
	e.assert(2)
	e.printf("        match code {\n")
	for _, v := range e.variants {
		e.variantGuards(v, 3)
		e.printf("            %s => Some(%s::%s),\n", v.Value, e.name(), v.Name)
	}
	if HasFailed(e.variants) {
		e.printf("            _ => Some(%s::Failed),\n", e.name())
	} else {
		e.printf("            value => Some(%s::%s(value)),\n", e.name(), unknownVariant)
	}
	e.printf("        }\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}

func (e *emitter) staticType() {
	e.enumGuards()
	e.printf("impl StaticType for %s {\n", e.name())
	e.printf("    fn static_type() -> Type {\n")
	e.printf("        unsafe { from_glib(sys::%s()) }\n", e.sel.Enum.GetType)
	e.printf("    }\n")
	e.printf("}\n\n")
}

func (e *emitter) valueRead() {
	e.enumGuards()
	e.printf("impl<'a> FromValueOptional<'a> for %s {\n", e.name())
	e.printf("    unsafe fn from_value_optional(value: &Value) -> Option<Self> {\n")
	e.printf("        Some(FromValue::from_value(value))\n")
	e.printf("    }\n")
	e.printf("}\n\n")

	e.enumGuards()
	e.printf("impl<'a> FromValue<'a> for %s {\n", e.name())
	e.printf("    unsafe fn from_value(value: &Value) -> Self {\n")
	e.printf("        from_glib(gobject_sys::g_value_get_enum(value.to_glib_none().0))\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}

func (e *emitter) valueWrite() {
	e.enumGuards()
	e.printf("impl SetValue for %s {\n", e.name())
	e.printf("    unsafe fn set_value(value: &mut Value, this: &Self) {\n")
	e.printf("        gobject_sys::g_value_set_enum(value.to_glib_none_mut().0, this.to_glib())\n")
	e.printf("    }\n")
	e.printf("}\n\n")
}
