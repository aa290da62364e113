// Package mocks provides hand-rolled test doubles for the store and
// service interfaces. Each mock exposes Fn-override fields for custom
// behavior, default return values, and call counters for verification.
package mocks
