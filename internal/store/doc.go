// Package store provides abstractions for data persistence: the entity
// store interfaces, shared sentinel errors, pagination types, and the
// transaction helper. Concrete implementations live in
// internal/platform/postgres.
package store
