// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is imported by cmd/restopos and pkg/testkit so that all
// migrations are registered before a Runner is built.
package migrations
