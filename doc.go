// Package tfcache is a time-indexed cache of coordinate-frame transforms
// with on-demand backfill from an external document store and
// bidirectional best-first search across the transform graph.
//
// Every operation takes its frame.Registry explicitly (spec §9's
// "process-wide singleton → context object" resolution): frame,
// pathsearch, backfill, and tfcore are usable standalone, each wired
// through a *tfcore.Core built by pkg/di. This package is only the thin
// convenience wrapper spec §9 asks for at the binding boundary — most
// callers that already hold a *tfcore.Core should call it directly
// instead.
package tfcache
