// Package repositorycache holds small, dependency-free helpers shared by
// the cache decorators in this module. ToSnake derives a stable,
// key-safe namespace segment from a Go type or method name.
//
// designatorcache is the decorator that actually wraps a store with
// caching; this package only supplies the bits it (and any future
// decorator) would otherwise duplicate.
package repositorycache
