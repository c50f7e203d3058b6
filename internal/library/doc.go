// Package library holds the introspection model that girgen generates bindings from.
//
// This package contains type definitions only. Every other internal package
// imports library; library imports nothing internal except errors. The model is
// built once per run by the compiler package and is never mutated afterwards.
//
// Key constraints:
//   - Namespace 0 is reserved for internal types, namespace 1 is the library being bound
//   - Member values keep their source literal text ("1", "-1", "0x10")
//   - Optional versions are nil pointers, never zero values
package library
