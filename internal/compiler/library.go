// Package compiler turns CUE introspection snapshots into a library model.
//
// A snapshot lists namespaces, each holding types grouped by kind:
//
//	namespace: Gtk: {
//		enumeration: Align: {
//			c_type:        "GtkAlign"
//			glib_get_type: "gtk_align_get_type"
//			members: [
//				{name: "fill", c_identifier: "GTK_ALIGN_FILL", value: 0},
//			]
//		}
//		class: Button: c_type: "GtkButton"
//	}
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/token"

	"github.com/roach88/girgen/internal/library"
)

// opaqueKinds are the sections compiled to library.Opaque, in emission order.
var opaqueKinds = []library.Kind{
	library.KindBitfield,
	library.KindRecord,
	library.KindClass,
	library.KindInterface,
	library.KindAlias,
}

// CompileLibrary parses a snapshot into a Library whose main namespace is
// mainNamespace. Other namespaces follow in snapshot order.
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(src)
//	lib, err := CompileLibrary(v, "Gtk")
func CompileLibrary(v cue.Value, mainNamespace string) (*library.Library, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	nsVal := v.LookupPath(cue.ParsePath("namespace"))
	if !nsVal.Exists() {
		return nil, &CompileError{
			Field:   "namespace",
			Message: "namespace is required",
			Pos:     v.Pos(),
		}
	}

	mainVal := nsVal.LookupPath(cue.MakePath(cue.Str(mainNamespace)))
	if !mainVal.Exists() {
		return nil, &CompileError{
			Field:   "namespace." + mainNamespace,
			Message: "main namespace not found in snapshot",
			Pos:     nsVal.Pos(),
		}
	}

	lib := library.New(mainNamespace)
	if err := compileNamespace(lib, library.MainNamespace, mainNamespace, mainVal); err != nil {
		return nil, err
	}

	iter, err := nsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		if name == mainNamespace {
			continue
		}
		id := lib.AddNamespace(name)
		if err := compileNamespace(lib, id, name, iter.Value()); err != nil {
			return nil, err
		}
	}

	return lib, nil
}

func compileNamespace(lib *library.Library, id library.NamespaceID, nsName string, v cue.Value) error {
	if v.IncompleteKind() != cue.StructKind {
		return &CompileError{
			Field:   "namespace." + nsName,
			Message: "namespace must be a struct",
			Pos:     v.Pos(),
		}
	}

	enumVal := v.LookupPath(cue.ParsePath(library.KindEnumeration.String()))
	if enumVal.Exists() {
		iter, err := enumVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			field := fmt.Sprintf("%s.enumeration.%s", nsName, iter.Label())
			e, err := compileEnumeration(iter.Label(), field, iter.Value())
			if err != nil {
				return err
			}
			lib.AddType(id, e)
		}
	}

	for _, kind := range opaqueKinds {
		kindVal := v.LookupPath(cue.ParsePath(kind.String()))
		if !kindVal.Exists() {
			continue
		}
		iter, err := kindVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			field := fmt.Sprintf("%s.%s.%s", nsName, kind, iter.Label())
			cType, err := requiredString(iter.Value(), "c_type", field)
			if err != nil {
				return err
			}
			lib.AddType(id, &library.Opaque{Name: iter.Label(), CType: cType, K: kind})
		}
	}

	return nil
}

func compileEnumeration(name, field string, v cue.Value) (*library.Enumeration, error) {
	e := &library.Enumeration{Name: name}

	var err error
	if e.CType, err = requiredString(v, "c_type", field); err != nil {
		return nil, err
	}
	if e.GetType, err = optionalString(v, "glib_get_type"); err != nil {
		return nil, err
	}
	if e.ErrorDomain, err = optionalString(v, "error_domain"); err != nil {
		return nil, err
	}
	if e.Doc, err = optionalString(v, "doc"); err != nil {
		return nil, err
	}
	if e.Version, err = optionalVersion(v, "version", field); err != nil {
		return nil, err
	}
	if e.DeprecatedVersion, err = optionalVersion(v, "deprecated_version", field); err != nil {
		return nil, err
	}

	if fnVal := v.LookupPath(cue.ParsePath("functions")); fnVal.Exists() {
		iter, err := fnVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for i := 0; iter.Next(); i++ {
			fnField := fmt.Sprintf("%s.functions[%d]", field, i)
			fnName, err := requiredString(iter.Value(), "name", fnField)
			if err != nil {
				return nil, err
			}
			cIdent, err := requiredString(iter.Value(), "c_identifier", fnField)
			if err != nil {
				return nil, err
			}
			e.Functions = append(e.Functions, library.Function{Name: fnName, CIdentifier: cIdent})
		}
	}

	membersVal := v.LookupPath(cue.ParsePath("members"))
	if !membersVal.Exists() {
		return e, nil
	}
	iter, err := membersVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for i := 0; iter.Next(); i++ {
		m, err := compileMember(fmt.Sprintf("%s.members[%d]", field, i), iter.Value())
		if err != nil {
			return nil, err
		}
		e.Members = append(e.Members, m)
	}

	return e, nil
}

func compileMember(field string, v cue.Value) (library.Member, error) {
	var m library.Member
	var err error

	if m.Name, err = requiredString(v, "name", field); err != nil {
		return m, err
	}
	if m.CIdentifier, err = requiredString(v, "c_identifier", field); err != nil {
		return m, err
	}
	if m.Doc, err = optionalString(v, "doc"); err != nil {
		return m, err
	}

	valueVal := v.LookupPath(cue.ParsePath("value"))
	if !valueVal.Exists() {
		return m, &CompileError{
			Field:   field + ".value",
			Message: "value is required",
			Pos:     v.Pos(),
		}
	}
	m.Value, err = memberValue(field+".value", valueVal)
	return m, err
}

// memberValue returns the literal text of an integer member value. Integers
// keep their source spelling ("0x10"); strings must hold an integer literal.
// Floats are rejected.
func memberValue(field string, v cue.Value) (string, error) {
	switch v.Kind() {
	case cue.IntKind:
		if lit, ok := v.Source().(*ast.BasicLit); ok && lit.Kind == token.INT {
			return lit.Value, nil
		}
		n, err := v.Int64()
		if err != nil {
			return "", formatCUEError(err)
		}
		return strconv.FormatInt(n, 10), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return "", formatCUEError(err)
		}
		s = strings.TrimSpace(s)
		if _, err := strconv.ParseInt(s, 0, 64); err != nil {
			return "", &CompileError{
				Field:   field,
				Message: fmt.Sprintf("%q is not an integer literal", s),
				Pos:     v.Pos(),
			}
		}
		return s, nil
	default:
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("value must be an integer, got %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

func requiredString(v cue.Value, name, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field + "." + name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	if strings.TrimSpace(s) == "" {
		return "", &CompileError{
			Field:   field + "." + name,
			Message: name + " must be non-empty",
			Pos:     fv.Pos(),
		}
	}
	return s, nil
}

func optionalString(v cue.Value, name string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalVersion(v cue.Value, name, field string) (*library.Version, error) {
	s, err := optionalString(v, name)
	if err != nil {
		return nil, err
	}
	ver, err := library.ParseOptionalVersion(s)
	if err != nil {
		return nil, &CompileError{
			Field:   field + "." + name,
			Message: err.Error(),
			Pos:     v.LookupPath(cue.ParsePath(name)).Pos(),
		}
	}
	return ver, nil
}
