// Package store defines the persistence boundary of the practice core:
// interfaces for review cards, weakness profiles and the verb reference
// set, plus the sentinel errors implementations report through.
//
// The core performs no storage I/O itself; implementations live in
// subpackages (memory, verbdata) and in internal/platform/postgres, and
// are injected into the services that need them.
package store
