// Package postgres provides PostgreSQL implementations of the store
// interfaces. All stores accept a store.DBTX so they work with either a
// database connection or a transaction managed by the caller.
package postgres
