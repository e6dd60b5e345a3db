// Package domain contains the core entities of the task API:
// tasks and their append-only status log entries. Entities carry their
// own validation; persistence concerns live in the store packages.
package domain
