// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection and
// apply transactional boundaries where an operation spans more than one
// statement (duplicate pre-check plus insert, token-guarded update).
// Write operations run inside store.RunInTransaction; reads go straight
// to the store.
package service
