// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the service layer, so handlers and services never depend on a specific
// database technology.
package store
