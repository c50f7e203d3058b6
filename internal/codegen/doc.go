// Package codegen holds the shared primitives used by the Rust emitters:
// the generation environment, version and deprecation guards, derive lines,
// the generated-file header and the import list.
//
// Guards render as cargo feature predicates. A version newer than the
// configured min_cfg_version is gated behind its feature:
//
//	#[cfg(any(feature = "v3_10", feature = "dox"))]
//
// A deprecation at or below min_cfg_version is unconditional, a newer one is
// gated the same way:
//
//	#[deprecated]
//	#[cfg_attr(feature = "v3_20", deprecated)]
package codegen
