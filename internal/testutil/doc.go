// Package testutil provides shared fixtures for girgen tests: a small Gtk
// library snapshot, an in-memory output sink, a writer that fails on demand
// and a golden-file helper.
package testutil
