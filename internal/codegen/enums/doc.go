// Package enums generates Rust bindings for native integer enumerations.
//
// Generation is a single synchronous pass with three stages:
//
//  1. Select picks the configured enumerations of the main namespace, in
//     configuration order, and unions their emission flags.
//  2. Resolve reduces each enumeration's members to canonical variants:
//     aliases and ignored members are skipped, later members repeating an
//     already emitted value are dropped.
//  3. Emit writes the enum and its conversion impls.
//
// Every generated enum carries a trailing __Unknown(i32) variant so that the
// native-to-Rust conversions stay total when the native library grows new
// values.
//
// The package never touches the filesystem: Generate hands a fill function to
// a Sink, which owns commit and rollback of the output file.
package enums
