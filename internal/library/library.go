package library

import (
	"strings"
)

// NamespaceID indexes Library.Namespaces.
type NamespaceID uint16

const (
	// InternalNamespace holds fundamental types shared by every library.
	InternalNamespace NamespaceID = 0
	// MainNamespace is the library being bound.
	MainNamespace NamespaceID = 1
)

// TypeID addresses one type of one namespace.
type TypeID struct {
	NS NamespaceID `json:"ns"`
	ID uint32      `json:"id"`
}

// Namespace is an ordered set of named types.
type Namespace struct {
	Name  string
	Types []Type
	index map[string]uint32
}

// Library is the set of namespaces loaded for one run.
type Library struct {
	Namespaces []*Namespace
}

// New creates a library with the internal namespace and the main namespace.
func New(mainName string) *Library {
	lib := &Library{}
	lib.AddNamespace("*")
	lib.AddNamespace(mainName)
	return lib
}

// AddNamespace returns the id of the namespace with the given name, adding it
// if it does not exist yet.
func (l *Library) AddNamespace(name string) NamespaceID {
	for i, ns := range l.Namespaces {
		if ns.Name == name {
			return NamespaceID(i)
		}
	}
	l.Namespaces = append(l.Namespaces, &Namespace{Name: name, index: make(map[string]uint32)})
	return NamespaceID(len(l.Namespaces) - 1)
}

// Namespace returns the namespace for id, or nil.
func (l *Library) Namespace(id NamespaceID) *Namespace {
	if int(id) >= len(l.Namespaces) {
		return nil
	}
	return l.Namespaces[id]
}

// AddType appends t to namespace ns. A type with the same name is replaced in place.
func (l *Library) AddType(ns NamespaceID, t Type) TypeID {
	n := l.Namespaces[ns]
	if id, ok := n.index[t.TypeName()]; ok {
		n.Types[id] = t
		return TypeID{NS: ns, ID: id}
	}
	id := uint32(len(n.Types))
	n.Types = append(n.Types, t)
	n.index[t.TypeName()] = id
	return TypeID{NS: ns, ID: id}
}

// Type returns the type addressed by id, or nil.
func (l *Library) Type(id TypeID) Type {
	n := l.Namespace(id.NS)
	if n == nil || int(id.ID) >= len(n.Types) {
		return nil
	}
	return n.Types[id.ID]
}

// FindType resolves "Namespace.Name". An unqualified name is looked up in the
// main namespace.
func (l *Library) FindType(name string) (TypeID, bool) {
	nsName, typeName, qualified := strings.Cut(name, ".")
	if !qualified {
		nsName, typeName = "", name
	}

	for i, n := range l.Namespaces {
		if qualified && n.Name != nsName {
			continue
		}
		if !qualified && NamespaceID(i) != MainNamespace {
			continue
		}
		if id, ok := n.index[typeName]; ok {
			return TypeID{NS: NamespaceID(i), ID: id}, true
		}
	}
	return TypeID{}, false
}

// Enumeration returns the enumeration addressed by id, or nil when id does not
// address an enumeration.
func (l *Library) Enumeration(id TypeID) *Enumeration {
	e, _ := l.Type(id).(*Enumeration)
	return e
}
