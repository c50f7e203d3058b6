// Package errors provides error handling for girgen.
//
// It re-exports github.com/cockroachdb/errors so that wrapped errors carry
// stack traces and hints while errors.Is / errors.As keep working across
// package boundaries.
//
//	if err := save(path); err != nil {
//	    return errors.Wrapf(err, "writing %s", path)
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New    = crdb.New
	Newf   = crdb.Newf
	Wrap   = crdb.Wrap
	Wrapf  = crdb.Wrapf
	Errorf = crdb.Errorf
)

// User-facing hints
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	FlattenHints = crdb.FlattenHints
)

// Inspection
var (
	Is        = crdb.Is
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)
