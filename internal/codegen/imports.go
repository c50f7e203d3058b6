package codegen

import "sort"

// Imports is the set of paths a generated file uses.
type Imports struct {
	names map[string]struct{}
}

// NewImports returns an empty set.
func NewImports() *Imports {
	return &Imports{names: make(map[string]struct{})}
}

// Add records name. Adding twice is a no-op.
func (i *Imports) Add(name string) {
	i.names[name] = struct{}{}
}

// Names returns the recorded paths sorted bytewise.
func (i *Imports) Names() []string {
	out := make([]string, 0, len(i.names))
	for n := range i.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
